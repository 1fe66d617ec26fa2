package cmd

import (
	"context"
	"flag"
	"github.com/flatwatch/olx-estate-notifier/internal"
	"github.com/flatwatch/olx-estate-notifier/internal/db"
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"github.com/flatwatch/olx-estate-notifier/internal/notify"
	"github.com/flatwatch/olx-estate-notifier/internal/scraper"
	"github.com/flatwatch/olx-estate-notifier/internal/util"
	"github.com/uptrace/bun"
)

func Run(ctx context.Context, connection bun.IDB, config *util.Config) error {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry", false, "dry run")
	flag.Parse()

	logger := log.GetLogger()

	if dryRun {
		logger = log.AddGlobalField("DryRun", dryRun)
	}

	scr, err := scraper.New(config)
	if err != nil {
		return err
	}

	var notifier internal.Notifier
	if dryRun {
		notifier = notify.LogNotifier{}
	} else {
		notifier, err = notify.NewTelegramNotifier(config.BotToken.Value)
		if err != nil {
			return err
		}
	}

	dedup := internal.NewDedupFilter(db.NewSentAdLog(connection))
	subscribers := db.NewSubscribers(connection)

	cycle := internal.NewCycle(scr, subscribers, dedup, notifier, config.ScanInterval())

	logger.WithField("Interval", config.ScanInterval().String()).Info("starting scan loop")
	cycle.Run(ctx)

	return nil
}
