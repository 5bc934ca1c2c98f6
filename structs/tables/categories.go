package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull,unique" json:"name"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}
