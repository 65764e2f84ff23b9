package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
)

var dealColumns = []string{
	"id", "name", "amount", "currency", "stage_index",
	"buyer_phone", "supplier_phone", "created_by", "transfer", "created_at",
}

type DealRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewDealRepository(db *sqlite.DB, telemetry port.Telemetry) port.DealRepository {
	return &DealRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: probeOrNoOp(telemetry),
	}
}

// GetAll returns every deal, newest first.
func (dr *DealRepository) GetAll(ctx context.Context) (deals []domain.Deal, err error) {
	op := startOperation(ctx, dr.telemetry, "GetAll", "deal", map[string]interface{}{
		"db.table":     "deals",
		"db.operation": "SELECT",
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := dr.db.QueryBuilder.Select(dealColumns...).
		From("deals").
		OrderBy("id DESC").
		ToSql()

	if err != nil {
		return nil, err
	}

	op.query(stmt, args)

	rows, err := dr.db.QueryContext(op.ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals = []domain.Deal{}

	if err := dr.scanner.ScanRowsToSlice(rows, &deals); err != nil {
		return nil, err
	}

	op.span.SetAttributes(map[string]interface{}{"db.rows_returned": len(deals)})

	return deals, nil
}

func (dr *DealRepository) GetByID(ctx context.Context, id int64) (deal domain.Deal, err error) {
	op := startOperation(ctx, dr.telemetry, "GetByID", "deal", map[string]interface{}{
		"db.table":     "deals",
		"db.operation": "SELECT",
		"deal.id":      id,
	})
	defer func() { err = op.end(err) }()

	return dr.getByID(op, id)
}

func (dr *DealRepository) getByID(op *operation, id int64) (domain.Deal, error) {
	stmt, args, err := dr.db.QueryBuilder.Select(dealColumns...).
		From("deals").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Deal{}, err
	}

	op.query(stmt, args)

	rows, err := dr.db.QueryContext(op.ctx, stmt, args...)
	if err != nil {
		return domain.Deal{}, err
	}
	defer rows.Close()

	var deal domain.Deal

	if err := dr.scanner.ScanRowToStruct(rows, &deal); err != nil {
		return domain.Deal{}, err
	}

	return deal, nil
}

// Create inserts a deal at stage 0 and returns the stored row.
func (dr *DealRepository) Create(ctx context.Context, deal domain.NewDeal) (saved domain.Deal, err error) {
	op := startOperation(ctx, dr.telemetry, "Create", "deal", map[string]interface{}{
		"db.table":        "deals",
		"db.operation":    "INSERT",
		"deal.created_by": deal.CreatedBy,
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := dr.db.QueryBuilder.Insert("deals").
		Columns("name", "amount", "currency", "stage_index", "created_by").
		Values(deal.Name, deal.Amount, deal.CurrencyOrDefault(), 0, deal.CreatedBy).
		ToSql()

	if err != nil {
		return domain.Deal{}, err
	}

	op.query(stmt, args)

	result, err := dr.db.ExecContext(op.ctx, stmt, args...)
	if err != nil {
		return domain.Deal{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Deal{}, err
	}

	op.span.SetAttributes(map[string]interface{}{"deal.id": id})

	return dr.getByID(op, id)
}

// Update writes the supplied patch fields and returns the refreshed row.
func (dr *DealRepository) Update(ctx context.Context, id int64, patch domain.DealPatch) (saved domain.Deal, err error) {
	op := startOperation(ctx, dr.telemetry, "Update", "deal", map[string]interface{}{
		"db.table":     "deals",
		"db.operation": "UPDATE",
		"deal.id":      id,
		"deal.fields":  patch.Fields(),
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := dr.db.QueryBuilder.Update("deals").
		SetMap(patch.Changes()).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return domain.Deal{}, err
	}

	op.query(stmt, args)

	result, err := dr.db.ExecContext(op.ctx, stmt, args...)
	if err != nil {
		return domain.Deal{}, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Deal{}, err
	}

	if rowsAffected == 0 {
		return domain.Deal{}, domain.ErrNotFound
	}

	return dr.getByID(op, id)
}

// Delete removes the deal and its messages in one transaction.
func (dr *DealRepository) Delete(ctx context.Context, id int64) (err error) {
	op := startOperation(ctx, dr.telemetry, "Delete", "deal", map[string]interface{}{
		"db.table":     "deals",
		"db.operation": "DELETE",
		"deal.id":      id,
	})
	defer func() { err = op.end(err) }()

	tx, err := dr.db.BeginTx(op.ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, args, err := dr.db.QueryBuilder.Delete("messages").Where(sq.Eq{"deal_id": id}).ToSql()
	if err != nil {
		return err
	}

	op.query(stmt, args)

	if _, err := tx.ExecContext(op.ctx, stmt, args...); err != nil {
		return err
	}

	stmt, args, err = dr.db.QueryBuilder.Delete("deals").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	op.query(stmt, args)

	result, err := tx.ExecContext(op.ctx, stmt, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}
