package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel   `bun:"table:products,alias:p"`
	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Name            string    `bun:"name,notnull" json:"name"`
	Price           float64   `bun:"price,notnull" json:"price"`
	Description     *string   `bun:"description" json:"description,omitempty"`
	PrimaryImage    *string   `bun:"image_principale" json:"image_principale"` // relative storage path
	SecondaryImages []string  `bun:"images_secondaires,type:jsonb" json:"images_secondaires"`
	InStock         bool      `bun:"en_stock,notnull" json:"en_stock"`
	Active          bool      `bun:"active,notnull" json:"active"`
	CreatedByID     int64     `bun:"created_by,notnull" json:"created_by_id"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	CreatedBy       *User     `bun:"rel:belongs-to,join:created_by=id" json:"created_by,omitempty"`
}
