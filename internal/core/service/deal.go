package service

import (
	"context"
	"strconv"

	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
)

type DealService struct {
	repo      port.DealRepository
	telemetry port.Telemetry
}

func NewDealService(repo port.DealRepository, telemetry port.Telemetry) *DealService {
	return &DealService{repo: repo, telemetry: probeOrNoOp(telemetry)}
}

func (ds *DealService) List(ctx context.Context) (deals []domain.Deal, err error) {
	ctx, done := startSpan(ctx, ds.telemetry, "deal", "List", nil)
	defer done(&err)

	return ds.repo.GetAll(ctx)
}

// Create opens a deal at stage 0. An empty currency falls back to
// domain.DefaultCurrency.
func (ds *DealService) Create(ctx context.Context, deal domain.NewDeal) (saved domain.Deal, err error) {
	ctx, done := startSpan(ctx, ds.telemetry, "deal", "Create", map[string]interface{}{
		"deal.created_by": deal.CreatedBy,
	})
	defer done(&err)

	switch {
	case deal.Name == "":
		return domain.Deal{}, domain.NewValidationError("name", "name is required")
	case deal.Amount == 0:
		return domain.Deal{}, domain.NewValidationError("amount", "amount is required")
	case deal.CreatedBy == "":
		return domain.Deal{}, domain.NewValidationError("created_by", "created_by is required")
	}

	saved, err = ds.repo.Create(ctx, deal)
	if err != nil {
		return domain.Deal{}, err
	}

	ds.telemetry.RecordBusinessEvent(ctx, "deal.created", "deal", strconv.FormatInt(saved.ID, 10), map[string]interface{}{
		"amount":     saved.Amount,
		"created_by": saved.CreatedBy,
	})

	return saved, nil
}

// Update applies the supplied patch fields. A patch with no fields is a
// validation error, an unknown id is domain.ErrNotFound.
func (ds *DealService) Update(ctx context.Context, id int64, patch domain.DealPatch) (saved domain.Deal, err error) {
	ctx, done := startSpan(ctx, ds.telemetry, "deal", "Update", map[string]interface{}{
		"deal.id":     id,
		"deal.fields": patch.Fields(),
	})
	defer done(&err)

	if err = patch.Validate(); err != nil {
		return domain.Deal{}, err
	}

	saved, err = ds.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Deal{}, err
	}

	ds.telemetry.RecordBusinessEvent(ctx, "deal.updated", "deal", strconv.FormatInt(id, 10), map[string]interface{}{
		"fields": patch.Fields(),
	})

	return saved, nil
}

// Delete removes the deal together with its messages.
func (ds *DealService) Delete(ctx context.Context, id int64) (err error) {
	ctx, done := startSpan(ctx, ds.telemetry, "deal", "Delete", map[string]interface{}{"deal.id": id})
	defer done(&err)

	if err = ds.repo.Delete(ctx, id); err != nil {
		return err
	}

	ds.telemetry.RecordBusinessEvent(ctx, "deal.deleted", "deal", strconv.FormatInt(id, 10), nil)

	return nil
}
