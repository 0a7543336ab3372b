package notifier

import (
	"context"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"forexalert/internal/models"
)

// TelegramNotifier delivers warning messages to a single chat. Failures are
// returned to the caller (the scheduler logs and drops them); the notifier
// itself never retries.
type TelegramNotifier struct {
	bot    *telego.Bot
	chatID int64
	lead   time.Duration
	loc    *time.Location
}

func NewTelegramNotifier(token string, chatID int64, lead time.Duration, loc *time.Location) (*TelegramNotifier, error) {
	bot, err := telego.NewBot(token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		lead:   lead,
		loc:    loc,
	}, nil
}

func (n *TelegramNotifier) Deliver(ctx context.Context, ev models.Event) error {
	msg := tu.Message(tu.ID(n.chatID), FormatMessage(ev, n.lead, n.loc)).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})
	_, err := n.bot.SendMessage(ctx, msg)
	return err
}
