package notifier

import (
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jobmapa/scraper/internal/events"
	"github.com/jobmapa/scraper/internal/logger"
	log "github.com/sirupsen/logrus"
)

// Telegram announces newly stored postings to a chat. Updates of existing
// records are not announced.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64, bus EventBus.Bus) (*Telegram, error) {

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	n := &Telegram{bot: bot, chatID: chatID}

	if err := bus.Subscribe(events.PostingStoredTopic, n.onPostingStored); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Telegram) onPostingStored(event events.PostingStored) {

	if !event.Created {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, formatPosting(event))
	msg.ParseMode = "HTML"

	if _, err := n.bot.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("failed to send notification: %v", err)
	}
}

func formatPosting(event events.PostingStored) string {

	job := event.Job

	lines := []string{fmt.Sprintf("<b>%s</b>", job.Title)}
	if job.Company != "" {
		lines = append(lines, job.Company)
	}
	if job.Location != "" {
		lines = append(lines, job.Location)
	}
	if job.SalaryText != "" {
		lines = append(lines, job.SalaryText)
	}
	lines = append(lines, fmt.Sprintf(`<a href="%s">%s</a>`, job.SourceURL, job.SourceName))

	return strings.Join(lines, "\n")
}
