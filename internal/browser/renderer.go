package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/playwright-community/playwright-go"
	log "github.com/sirupsen/logrus"
)

// ErrRenderFailed marks any failure to obtain a fully rendered page. It is
// the only fatal error in the extraction pipeline.
var ErrRenderFailed = errors.New("page render failed")

const headingSelector = "h1"

// Chromium renders JavaScript-heavy pages with a headless browser. One
// instance owns one browser and must not be shared between concurrent
// extractions: each worker creates its own.
type Chromium struct {
	pw            *playwright.Playwright
	browser       playwright.Browser
	timeout       time.Duration
	debugArtifact string
}

func NewChromium(timeout time.Duration, debugArtifact string) (*Chromium, error) {

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-gpu",
			"--no-sandbox",
			"--window-size=1920,1080",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	return &Chromium{
		pw:            pw,
		browser:       browser,
		timeout:       timeout,
		debugArtifact: debugArtifact,
	}, nil
}

// Render navigates to url and waits for a heading element to appear before
// capturing the page source. The page is closed on every exit path.
func (c *Chromium) Render(ctx context.Context, url string) (string, error) {

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, ctx.Err())
	default:
	}

	page, err := c.browser.NewPage()
	if err != nil {
		return "", fmt.Errorf("%w: cannot open page: %v", ErrRenderFailed, err)
	}
	defer func() {
		_ = page.Close()
	}()

	timeoutMs := playwright.Float(float64(c.timeout.Milliseconds()))

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   timeoutMs,
	}); err != nil {
		return "", fmt.Errorf("%w: navigation to %s: %v", ErrRenderFailed, url, err)
	}

	if err := page.Locator(headingSelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: timeoutMs,
	}); err != nil {
		return "", fmt.Errorf("%w: no heading appeared within %v: %v", ErrRenderFailed, c.timeout, err)
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("%w: cannot capture page source: %v", ErrRenderFailed, err)
	}

	c.writeDebugArtifact(html)
	return html, nil
}

// writeDebugArtifact keeps a snapshot of the last rendered page for post-hoc
// inspection. Failures only warn.
func (c *Chromium) writeDebugArtifact(html string) {
	if c.debugArtifact == "" {
		return
	}
	if err := os.WriteFile(c.debugArtifact, []byte(html), 0644); err != nil {
		log.Warnf("failed to write debug artifact %s: %v", c.debugArtifact, err)
	}
}

func (c *Chromium) Close() {
	if c.browser != nil {
		_ = c.browser.Close()
	}
	if c.pw != nil {
		_ = c.pw.Stop()
	}
}
