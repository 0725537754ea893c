package tests

import (
	"context"
	"sync"

	"github.com/jobmapa/scraper/internal/browser"
	"github.com/jobmapa/scraper/internal/clients/nominatim"
	"github.com/jobmapa/scraper/internal/services"
)

// fakeRenderSession serves canned HTML per url instead of driving a browser.
type fakeRenderSession struct {
	mu    sync.Mutex
	pages map[string]string
}

func (f *fakeRenderSession) Render(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page, ok := f.pages[url]
	if !ok {
		return "", browser.ErrRenderFailed
	}
	return page, nil
}

func (f *fakeRenderSession) Close() {}

func (f *fakeRenderSession) setPage(url, html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[url] = html
}

func (f *fakeRenderSession) factory() services.RenderSessionFactory {
	return func() (services.RenderSession, error) {
		return f, nil
	}
}

type fakeGeocodingClient struct {
	location nominatim.Location
	err      error
}

func (f *fakeGeocodingClient) Search(_ context.Context, _ string) (nominatim.Location, error) {
	return f.location, f.err
}
