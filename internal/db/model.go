package db

import (
	"github.com/uptrace/bun"
	"time"
)

type SubscriberModel struct {
	bun.BaseModel        `bun:"table:subscribers,alias:sub"`
	UserId               int64  `bun:"user_id,pk"`
	ChatId               int64  `bun:"chat_id,notnull"`
	FullName             string `bun:"full_name"`
	Username             string `bun:"username"`
	IsBot                bool   `bun:"is_bot"`
	City                 string `bun:"city,nullzero"`
	IsActive             bool   `bun:"is_active,notnull,default:true"`
	BuildingTypeFilter   string `bun:"building_type_filter,nullzero,default:'mieszkania'"`
	AdTypeFilter         string `bun:"ad_type_filter,nullzero,default:'wynajem'"`
	MinPriceFilter       *int   `bun:"min_price_filter"`
	MaxPriceFilter       *int   `bun:"max_price_filter"`
	MinSurfaceAreaFilter *int   `bun:"min_surface_area_filter"`
}

type SentAdModel struct {
	bun.BaseModel `bun:"table:sent_ads,alias:sa"`
	Id            int64     `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp,notnull,default:current_timestamp"`
	UserId        int64     `bun:"user_id,notnull"`
	OlxLink       string    `bun:"olx_link,notnull"`
}
