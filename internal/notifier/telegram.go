package notifier

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram pushes notifications to a fixed chat, so reminders still reach the
// nurse's phone when the charting device is out of sight.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Printf("[info] notifier authorized on account %s", api.Self.UserName)
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Notify(_ context.Context, title, body string) error {
	msg := tgbotapi.NewMessage(t.chatID, title+"\n"+body)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
