package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
)

var messageColumns = []string{"id", "deal_id", "sender", "text", "timestamp", "is_read"}

type MessageRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewMessageRepository(db *sqlite.DB, telemetry port.Telemetry) port.MessageRepository {
	return &MessageRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: probeOrNoOp(telemetry),
	}
}

// GetByDealID returns the conversation of a deal, oldest first. Ties on
// timestamp fall back to insertion order.
func (mr *MessageRepository) GetByDealID(ctx context.Context, dealID int64) (messages []domain.Message, err error) {
	op := startOperation(ctx, mr.telemetry, "GetByDealID", "message", map[string]interface{}{
		"db.table":     "messages",
		"db.operation": "SELECT",
		"deal.id":      dealID,
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := mr.db.QueryBuilder.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"deal_id": dealID}).
		OrderBy("timestamp ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	op.query(stmt, args)

	rows, err := mr.db.QueryContext(op.ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages = []domain.Message{}

	if err := mr.scanner.ScanRowsToSlice(rows, &messages); err != nil {
		return nil, err
	}

	op.span.SetAttributes(map[string]interface{}{"db.rows_returned": len(messages)})

	return messages, nil
}

func (mr *MessageRepository) GetByID(ctx context.Context, id int64) (message domain.Message, err error) {
	op := startOperation(ctx, mr.telemetry, "GetByID", "message", map[string]interface{}{
		"db.table":     "messages",
		"db.operation": "SELECT",
		"message.id":   id,
	})
	defer func() { err = op.end(err) }()

	return mr.getByID(op, id)
}

func (mr *MessageRepository) getByID(op *operation, id int64) (domain.Message, error) {
	stmt, args, err := mr.db.QueryBuilder.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Message{}, err
	}

	op.query(stmt, args)

	rows, err := mr.db.QueryContext(op.ctx, stmt, args...)
	if err != nil {
		return domain.Message{}, err
	}
	defer rows.Close()

	var message domain.Message

	if err := mr.scanner.ScanRowToStruct(rows, &message); err != nil {
		return domain.Message{}, err
	}

	return message, nil
}

// Create stores an unread message stamped with the store's clock.
func (mr *MessageRepository) Create(ctx context.Context, message domain.NewMessage) (saved domain.Message, err error) {
	op := startOperation(ctx, mr.telemetry, "Create", "message", map[string]interface{}{
		"db.table":       "messages",
		"db.operation":   "INSERT",
		"deal.id":        message.DealID,
		"message.sender": message.Sender,
	})
	defer func() { err = op.end(err) }()

	stmt, args, err := mr.db.QueryBuilder.Insert("messages").
		Columns("deal_id", "sender", "text", "timestamp", "is_read").
		Values(message.DealID, message.Sender, message.Text, sq.Expr("datetime('now')"), 0).
		ToSql()

	if err != nil {
		return domain.Message{}, err
	}

	op.query(stmt, args)

	result, err := mr.db.ExecContext(op.ctx, stmt, args...)
	if err != nil {
		return domain.Message{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Message{}, err
	}

	return mr.getByID(op, id)
}
