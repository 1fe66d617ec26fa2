package db

import (
	"context"
	"database/sql"
	"github.com/flatwatch/olx-estate-notifier/internal"
	"github.com/flatwatch/olx-estate-notifier/internal/util"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"time"
)

func GetConnection(config *util.Config) (*bun.DB, error) {
	sqlDb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.DbConnectionString.Value)))
	db := bun.NewDB(sqlDb, pgdialect.New())

	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),

		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG")))

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// Subscribers serves the read-only subscriber projections the scan cycle needs.
type Subscribers struct {
	conn bun.IDB
}

func NewSubscribers(conn bun.IDB) *Subscribers {
	return &Subscribers{conn: conn}
}

func (s *Subscribers) GetActiveSubscribersWithCity(ctx context.Context) ([]internal.Subscriber, error) {
	var models []*SubscriberModel
	err := s.conn.NewSelect().
		Model(&models).
		Where("sub.city IS NOT NULL").
		Where("sub.is_active").
		Where("NOT sub.is_bot").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	subscribers := make([]internal.Subscriber, 0, len(models))
	for _, m := range models {
		subscribers = append(subscribers, internal.Subscriber{
			UserId:               m.UserId,
			ChatId:               m.ChatId,
			City:                 m.City,
			BuildingTypeFilter:   m.BuildingTypeFilter,
			AdTypeFilter:         m.AdTypeFilter,
			MinPriceFilter:       m.MinPriceFilter,
			MaxPriceFilter:       m.MaxPriceFilter,
			MinSurfaceAreaFilter: m.MinSurfaceAreaFilter,
		})
	}

	return subscribers, nil
}

func (s *Subscribers) GetDistinctCities(ctx context.Context) (cities []string, err error) {
	err = s.conn.NewSelect().
		Model((*SubscriberModel)(nil)).
		Column("city").
		Distinct().
		Where("city IS NOT NULL").
		Where("is_active").
		Scan(ctx, &cities)

	return cities, err
}

// SentAdLog is the append-only record of listings already delivered per user.
type SentAdLog struct {
	conn bun.IDB
}

func NewSentAdLog(conn bun.IDB) *SentAdLog {
	return &SentAdLog{conn: conn}
}

func (l *SentAdLog) WasSent(ctx context.Context, userId int64, link string) (bool, error) {
	return l.conn.NewSelect().
		Model((*SentAdModel)(nil)).
		Where("user_id = ?", userId).
		Where("olx_link = ?", link).
		Exists(ctx)
}

func (l *SentAdLog) RecordSent(ctx context.Context, userId int64, link string) error {
	_, err := l.conn.NewInsert().
		Model(&SentAdModel{UserId: userId, OlxLink: link, Timestamp: time.Now().UTC()}).
		Exec(ctx)

	return err
}

func (l *SentAdLog) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := l.conn.NewDelete().
		Model((*SentAdModel)(nil)).
		Where("timestamp < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	c, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(c), nil
}
