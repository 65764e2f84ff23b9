package domain

import (
	"maps"
	"slices"
	"time"
)

const DefaultCurrency = "$"

type Deal struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Amount        float64   `db:"amount" json:"amount"`
	Currency      *string   `db:"currency" json:"currency"`
	StageIndex    *float64  `db:"stage_index" json:"stage_index"`
	BuyerPhone    *string   `db:"buyer_phone" json:"buyer_phone"`
	SupplierPhone *string   `db:"supplier_phone" json:"supplier_phone"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	Transfer      int       `db:"transfer" json:"transfer"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// NewDeal carries the fields a caller may choose when opening a deal.
type NewDeal struct {
	Name      string
	Amount    float64
	Currency  string
	CreatedBy string
}

func (d NewDeal) CurrencyOrDefault() string {
	if d.Currency == "" {
		return DefaultCurrency
	}

	return d.Currency
}

func (d *Deal) Stage() int {
	if d.StageIndex == nil {
		return 0
	}

	return int(*d.StageIndex)
}

// DealPatch lists the columns a partial update may touch. Only fields whose
// Optional is Set end up in the UPDATE statement.
type DealPatch struct {
	Name          Optional[string]  `json:"name"`
	Amount        Optional[Number]  `json:"amount"`
	Currency      Optional[string]  `json:"currency"`
	StageIndex    Optional[Number]  `json:"stage_index"`
	BuyerPhone    Optional[string]  `json:"buyer_phone"`
	SupplierPhone Optional[string]  `json:"supplier_phone"`
}

func (p DealPatch) IsEmpty() bool {
	return len(p.Changes()) == 0
}

func (p DealPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}

	return nil
}

// Changes maps column names to bound values. A field sent as JSON null maps
// to a nil value, which stores NULL.
func (p DealPatch) Changes() map[string]any {
	changes := make(map[string]any)

	p.Name.collect(changes, "name")
	p.Amount.collect(changes, "amount")
	p.Currency.collect(changes, "currency")
	p.StageIndex.collect(changes, "stage_index")
	p.BuyerPhone.collect(changes, "buyer_phone")
	p.SupplierPhone.collect(changes, "supplier_phone")

	return changes
}

func (p DealPatch) Fields() []string {
	return slices.Sorted(maps.Keys(p.Changes()))
}
