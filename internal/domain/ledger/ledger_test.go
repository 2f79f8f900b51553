package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/ledger"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newItem(u unit.Unit) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           "inv-1",
		RestaurantID: "rest-1",
		ItemName:     "basmati rice",
		Unit:         u,
	}
}

func batch(supplier, qty, price string, at time.Time) entity.SupplierBatch {
	return entity.SupplierBatch{
		SupplierID:   supplier,
		SupplierName: supplier,
		Quantity:     dec(qty),
		UnitPrice:    dec(price),
		PurchasedAt:  at,
	}
}

func TestRestock_AccumulatesAdditively(t *testing.T) {
	item := newItem(unit.Kilogram)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	ledger.Restock(item, batch("sup-a", "10", "40", t0))
	ledger.Restock(item, batch("sup-b", "5.5", "42", t0.Add(time.Hour)))

	assert.True(t, item.Stock.TotalQuantity.Equal(dec("15.5")))
	assert.True(t, item.Stock.Quantity.Equal(dec("15.5")))
	// amount accumulates additively, not as an average
	assert.True(t, item.Stock.Amount.Equal(dec("82")))
	// batch totals: 10*40 + 5.5*42
	assert.True(t, item.Stock.Total.Equal(dec("631")))
	require.Len(t, item.Suppliers, 2)
	assert.True(t, item.Suppliers[1].Total.Equal(dec("231")))
}

func TestDeduct_ConvertsAndChecksStock(t *testing.T) {
	item := newItem(unit.Kilogram)
	ledger.Restock(item, batch("sup-a", "1", "40", time.Now()))

	// 1500 gm = 1.5 kg > 1 kg available
	_, err := ledger.Deduct(item, dec("1500"), unit.Gram)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, item.Stock.TotalQuantity.Equal(dec("1")), "failed deduct must not mutate")

	remaining, err := ledger.Deduct(item, dec("250"), unit.Gram)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("0.75")))
	assert.True(t, item.Stock.Quantity.Equal(dec("0.75")))
}

func TestDeduct_CrossFamilyAndInvalidQuantity(t *testing.T) {
	item := newItem(unit.Litre)
	ledger.Restock(item, batch("sup-a", "2", "10", time.Now()))

	_, err := ledger.Deduct(item, dec("1"), unit.Gram)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)

	_, err = ledger.Deduct(item, dec("0"), unit.Litre)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ledger.Deduct(item, dec("-3"), unit.Millilitre)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestDeduct_ConsumesBatchesFIFO(t *testing.T) {
	item := newItem(unit.Kilogram)
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	// appended newest-first on purpose: consumption must follow purchase time
	ledger.Restock(item, batch("newer", "10", "45", t0.AddDate(0, 0, 7)))
	ledger.Restock(item, batch("older", "4", "40", t0))

	_, err := ledger.Deduct(item, dec("6"), unit.Kilogram)
	require.NoError(t, err)

	byName := map[string]decimal.Decimal{}
	for _, b := range item.Suppliers {
		byName[b.SupplierName] = b.Quantity
	}
	// oldest batch exhausted first, remainder taken from the newer one
	assert.True(t, byName["older"].Equal(dec("0")), "older batch should be exhausted, got %s", byName["older"])
	assert.True(t, byName["newer"].Equal(dec("8")), "newer batch should cover the rest, got %s", byName["newer"])
}

func TestConservation(t *testing.T) {
	// totalQuantity after any restock/deduct sequence equals
	// sum(restocked) - sum(deducted converted to the item unit)
	item := newItem(unit.Gram)
	now := time.Now()

	ledger.Restock(item, batch("a", "500", "0.05", now))
	ledger.Restock(item, batch("b", "250.25", "0.06", now.Add(time.Minute)))

	deductions := []struct {
		qty string
		u   unit.Unit
	}{
		{"0.2", unit.Kilogram}, // 200 gm
		{"50.5", unit.Gram},
		{"10000", unit.Milligram}, // 10 gm
	}
	total := dec("750.25")
	for _, d := range deductions {
		conv, err := unit.Convert(dec(d.qty), d.u, unit.Gram)
		require.NoError(t, err)
		total = unit.Sub(total, conv)
		remaining, err := ledger.Deduct(item, dec(d.qty), d.u)
		require.NoError(t, err)
		assert.True(t, remaining.Equal(total), "after %s %s: got %s, want %s", d.qty, d.u, remaining, total)
	}
	assert.True(t, item.Stock.TotalQuantity.Equal(dec("489.75")))
}

func TestWriteOffAndRestore(t *testing.T) {
	item := newItem(unit.Kilogram)
	ledger.Restock(item, batch("sup-a", "8", "40", time.Now()))

	err := ledger.WriteOff(item, dec("3"), unit.Kilogram)
	require.NoError(t, err)
	assert.True(t, item.Stock.TotalQuantity.Equal(dec("5")))
	// waste is aggregate-only: the batch trail is untouched
	assert.True(t, item.Suppliers[0].Quantity.Equal(dec("8")))

	err = ledger.WriteOff(item, dec("6"), unit.Kilogram)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	err = ledger.Restore(item, dec("3"), unit.Kilogram)
	require.NoError(t, err)
	assert.True(t, item.Stock.TotalQuantity.Equal(dec("8")))
}

func TestWriteOff_UnitConverted(t *testing.T) {
	item := newItem(unit.Litre)
	ledger.Restock(item, batch("sup-a", "2", "30", time.Now()))

	err := ledger.WriteOff(item, dec("500"), unit.Millilitre)
	require.NoError(t, err)
	assert.True(t, item.Stock.TotalQuantity.Equal(dec("1.5")))
}
