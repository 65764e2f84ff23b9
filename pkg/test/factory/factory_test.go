package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeal_AppliesEveryOverride(t *testing.T) {
	deal := NewDeal(map[string]any{"Name": "Поставка", "CreatedBy": "70000000000"}, map[string]any{"Currency": "₽"})

	assert.Equal(t, "Поставка", deal.Name)
	assert.Equal(t, "70000000000", deal.CreatedBy)
	assert.Equal(t, "₽", deal.Currency)
}

func TestNewDeal_KeepsDefaultCreator(t *testing.T) {
	assert.Equal(t, "79001234567", NewDeal(map[string]any{"Name": "x"}).CreatedBy)
}

func TestNewMessage_AppliesOverrides(t *testing.T) {
	message := NewMessage(7, map[string]any{"Sender": "70000000000", "Text": "hi"})

	assert.Equal(t, int64(7), message.DealID)
	assert.Equal(t, "70000000000", message.Sender)
	assert.Equal(t, "hi", message.Text)
}
