package sqlite

import (
	"context"
	"fmt"
)

type seedUser struct {
	Phone string
	Name  string
}

var demoUsers = []seedUser{
	{Phone: "79001234567", Name: "Пользователь 1"},
	{Phone: "79009876543", Name: "Пользователь 2"},
}

// Seed inserts the demo users when the users table is empty.
func (db *DB) Seed(ctx context.Context) error {
	var count int

	countSQL, _, err := db.QueryBuilder.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return err
	}

	if err := db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if count > 0 {
		return nil
	}

	insert := db.QueryBuilder.Insert("users").Columns("phone", "name")

	for _, user := range demoUsers {
		insert = insert.Values(user.Phone, user.Name)
	}

	stmt, args, err := insert.ToSql()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	db.logger.Info().Int("users", len(demoUsers)).Msg("demo users seeded")

	return nil
}
