package notify

import (
	"context"
	"fmt"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// TelegramNotifier delivers rendered listings as photo messages with an
// html caption. Transport errors are returned to the caller, which isolates
// them per subscriber.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to bot api: %w", err)
	}

	return &TelegramNotifier{bot: bot}, nil
}

func (n *TelegramNotifier) Deliver(ctx context.Context, chatId int64, caption string, imageUrl string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	photo := tgbotapi.NewPhoto(chatId, tgbotapi.FileURL(imageUrl))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML

	_, err := n.bot.Send(photo)
	return err
}

// LogNotifier stands in for the real transport on dry runs.
type LogNotifier struct{}

func (LogNotifier) Deliver(_ context.Context, chatId int64, caption string, imageUrl string) error {
	log.GetLogger().WithFields(logrus.Fields{
		"ChatId":   chatId,
		"ImageUrl": imageUrl,
		"Caption":  caption,
	}).Info("dry run, delivery suppressed")

	return nil
}
