package middleware

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type dbDirectory struct {
	db *sqlx.DB
}

// NewUserDirectory resolves subjects against the users table.
func NewUserDirectory(db *sqlx.DB) UserDirectory {
	return &dbDirectory{db: db}
}

func (d *dbDirectory) UserIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := d.db.GetContext(ctx, &id, `SELECT id FROM users WHERE email=$1`, email)
	return id, err
}
