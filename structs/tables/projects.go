package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Project struct {
	bun.BaseModel   `bun:"table:projects,alias:pr"`
	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	UUID            string    `bun:"uuid,notnull,unique,type:uuid" json:"uuid"` // assigned once at creation
	Title           string    `bun:"title,notnull" json:"title"`
	Description     *string   `bun:"description" json:"description,omitempty"`
	Image           *string   `bun:"image" json:"image"`
	SecondaryImages []string  `bun:"secondary_images,type:jsonb" json:"secondary_images"`
	CategoryID      int64     `bun:"category_id,notnull" json:"category_id"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Category        *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}
