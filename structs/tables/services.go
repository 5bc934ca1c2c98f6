package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Service struct {
	bun.BaseModel `bun:"table:services,alias:s"`
	ID            int64         `bun:"id,pk,autoincrement" json:"id"`
	Name          string        `bun:"name,notnull" json:"name"`
	Slug          string        `bun:"slug,notnull,unique" json:"slug"` // recomputed whenever name changes
	Description   string        `bun:"description,notnull" json:"description"`
	Price         float64       `bun:"price,notnull,default:0" json:"price"`
	Duration      int           `bun:"duration,notnull,default:30" json:"duration"` // minutes
	IsActive      bool          `bun:"is_active,notnull" json:"is_active"`
	Image         *string       `bun:"image" json:"image"`
	CreatedAt     time.Time     `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt     time.Time     `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Items         []ServiceItem `bun:"rel:has-many,join:id=service_id" json:"items,omitempty"`
}

type ServiceItem struct {
	bun.BaseModel `bun:"table:service_items,alias:si"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	ServiceID     int64  `bun:"service_id,notnull" json:"service_id"`
	Title         string `bun:"title,notnull" json:"title"`
}
