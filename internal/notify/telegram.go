package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
)

// telegramTextLimit is the maximum length of a Telegram message text.
const telegramTextLimit = 4096

// TelegramNotifier implements Notifier by posting messages to a Telegram
// chat through a bot.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
}

// TelegramOption configures the underlying bot.
type TelegramOption = bot.Option

// WithTelegramServerURL points the bot at a different Bot API server.
func WithTelegramServerURL(u string) TelegramOption {
	return bot.WithServerURL(u)
}

// NewTelegramNotifier creates a notifier sending to chatID. The bot is not
// started; it is only used for outgoing calls.
func NewTelegramNotifier(token string, chatID int64, opts ...TelegramOption) (*TelegramNotifier, error) {
	if token == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram: chat id is required")
	}

	botOpts := append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	b, err := bot.New(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: b, chatID: chatID}, nil
}

// Send posts the subject and body as a single text message.
func (t *TelegramNotifier) Send(ctx context.Context, msg Message) error {
	text := truncateRunes(msg.Subject+"\n\n"+msg.Body, telegramTextLimit)

	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
