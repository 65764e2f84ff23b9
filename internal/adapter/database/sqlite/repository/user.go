package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
)

var userColumns = []string{"phone", "name", "created_at"}

type UserRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	return &UserRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: probeOrNoOp(telemetry),
	}
}

func (ur *UserRepository) GetAll(ctx context.Context) (users []domain.User, err error) {
	op := startOperation(ctx, ur.telemetry, "GetAll", "user", map[string]interface{}{
		"db.table":     "users",
		"db.operation": "SELECT",
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).From("users").ToSql()
	if err != nil {
		return nil, err
	}

	op.query(stmt, args)

	rows, err := ur.db.QueryContext(op.ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users = []domain.User{}

	if err := ur.scanner.ScanRowsToSlice(rows, &users); err != nil {
		return nil, err
	}

	op.span.SetAttributes(map[string]interface{}{"db.rows_returned": len(users)})

	return users, nil
}

func (ur *UserRepository) GetByPhone(ctx context.Context, phone string) (user domain.User, err error) {
	op := startOperation(ctx, ur.telemetry, "GetByPhone", "user", map[string]interface{}{
		"db.table":     "users",
		"db.operation": "SELECT",
		"user.phone":   phone,
	})
	defer func() { err = op.end(err) }()

	return ur.getByPhone(op, phone)
}

func (ur *UserRepository) getByPhone(op *operation, phone string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"phone": phone}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	op.query(stmt, args)

	rows, err := ur.db.QueryContext(op.ctx, stmt, args...)
	if err != nil {
		return domain.User{}, err
	}
	defer rows.Close()

	var user domain.User

	if err := ur.scanner.ScanRowToStruct(rows, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// Create registers phone with no name. A concurrent registration of the
// same phone is not an error: the stored row is returned either way.
func (ur *UserRepository) Create(ctx context.Context, phone string) (user domain.User, err error) {
	op := startOperation(ctx, ur.telemetry, "Create", "user", map[string]interface{}{
		"db.table":     "users",
		"db.operation": "INSERT",
		"user.phone":   phone,
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("phone").
		Values(phone).
		Suffix("ON CONFLICT(phone) DO NOTHING").
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	op.query(stmt, args)

	if _, err := ur.db.ExecContext(op.ctx, stmt, args...); err != nil {
		return domain.User{}, err
	}

	return ur.getByPhone(op, phone)
}

func (ur *UserRepository) Count(ctx context.Context) (count int, err error) {
	op := startOperation(ctx, ur.telemetry, "Count", "user", map[string]interface{}{
		"db.table":     "users",
		"db.operation": "SELECT",
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := ur.db.QueryBuilder.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, err
	}

	op.query(stmt, args)

	if err := ur.db.QueryRowContext(op.ctx, stmt, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
