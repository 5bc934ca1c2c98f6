package tables

import "github.com/uptrace/bun"

// User carries the creator reference attached to products. Account management
// lives in a separate system; this table is read-only here.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Name          string `bun:"name,notnull" json:"name"`
	Email         string `bun:"email,notnull,unique" json:"email"`
}
