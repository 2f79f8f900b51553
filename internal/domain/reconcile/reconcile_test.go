package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/reconcile"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(itemID, subcatID, sizeID, qty, price string) entity.OrderLine {
	q, p := dec(qty), dec(price)
	return entity.OrderLine{
		ItemID:        itemID,
		ItemName:      itemID,
		SubcategoryID: subcatID,
		SizeID:        sizeID,
		Quantity:      q,
		Price:         p,
		Subtotal:      p.Mul(q),
	}
}

func TestKeyOf_NormalizesEmptyIdentifiers(t *testing.T) {
	a := reconcile.KeyOf(line("X", "", "", "1", "10"))
	b := reconcile.KeyOf(entity.OrderLine{ItemID: "X", SubcategoryID: "null", SizeID: "null"})
	assert.Equal(t, a, b)

	withSize := reconcile.KeyOf(line("X", "", "size-l", "1", "10"))
	assert.NotEqual(t, a, withSize, "size is part of line identity")
}

func TestDedup_SumsDuplicateLines(t *testing.T) {
	got := reconcile.Dedup([]entity.OrderLine{
		line("X", "", "", "2", "50"),
		line("Y", "", "", "1", "80"),
		line("X", "", "", "3", "50"),
	})
	require.Len(t, got, 2)
	assert.True(t, got[0].Quantity.Equal(dec("5")))
	assert.True(t, got[0].Subtotal.Equal(dec("250")))
	assert.True(t, got[1].Quantity.Equal(dec("1")))
}

func TestMerge_UnchangedLineSkippedNewLineAppended(t *testing.T) {
	existing := []entity.OrderLine{line("X", "", "", "2", "50")}
	cart := []entity.OrderLine{
		line("X", "", "", "2", "50"),
		line("Y", "", "", "1", "80"),
	}

	res := reconcile.Merge(existing, cart)

	require.Len(t, res.Lines, 2)
	assert.True(t, res.Lines[0].Quantity.Equal(dec("2")), "line X unchanged")
	require.Len(t, res.Deductions, 1, "only Y's ingredients should be deducted")
	assert.Equal(t, "Y", res.Deductions[0].Line.ItemID)
	assert.True(t, res.Deductions[0].Quantity.Equal(dec("1")))
	assert.Empty(t, res.Restores)
	assert.Empty(t, res.Warnings)
}

func TestMerge_IdempotentResubmission(t *testing.T) {
	existing := []entity.OrderLine{line("X", "", "", "2", "50")}
	cart := []entity.OrderLine{
		line("X", "", "", "2", "50"),
		line("Y", "", "", "1", "80"),
	}

	first := reconcile.Merge(existing, cart)
	second := reconcile.Merge(first.Lines, cart)

	assert.Empty(t, second.Deductions, "resubmitting an unchanged cart must not double-deduct")
	assert.Equal(t, first.Lines, second.Lines)
}

func TestMerge_QuantityIncreaseQueuesOnlyDelta(t *testing.T) {
	existing := []entity.OrderLine{line("X", "", "", "2", "50")}
	cart := []entity.OrderLine{line("X", "", "", "5", "50")}

	res := reconcile.Merge(existing, cart)

	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].Quantity.Equal(dec("5")))
	assert.True(t, res.Lines[0].Subtotal.Equal(dec("250")))
	require.Len(t, res.Deductions, 1)
	assert.True(t, res.Deductions[0].Quantity.Equal(dec("3")))
}

func TestMerge_QuantityDecreaseQueuesRestoreNotDeduction(t *testing.T) {
	existing := []entity.OrderLine{line("X", "", "", "5", "50")}
	cart := []entity.OrderLine{line("X", "", "", "2", "50")}

	res := reconcile.Merge(existing, cart)

	assert.True(t, res.Lines[0].Quantity.Equal(dec("2")), "line is updated")
	assert.Empty(t, res.Deductions)
	require.Len(t, res.Restores, 1)
	assert.True(t, res.Restores[0].Quantity.Equal(dec("3")))
}

func TestMerge_SameItemDifferentSizeIsANewLine(t *testing.T) {
	existing := []entity.OrderLine{line("X", "", "size-s", "1", "40")}
	cart := []entity.OrderLine{line("X", "", "size-l", "1", "60")}

	res := reconcile.Merge(existing, cart)

	require.Len(t, res.Lines, 2)
	require.Len(t, res.Deductions, 1)
	assert.Equal(t, "size-l", res.Deductions[0].Line.SizeID)
}

func TestMerge_NonPositiveQuantityIsNotARemoveSignal(t *testing.T) {
	existing := []entity.OrderLine{line("X", "", "", "2", "50")}
	cart := []entity.OrderLine{line("X", "", "", "0", "50")}

	res := reconcile.Merge(existing, cart)

	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].Quantity.Equal(dec("2")), "existing line untouched")
	assert.Empty(t, res.Deductions)
	require.Len(t, res.Warnings, 1)
}

func TestMerge_DefensiveDedupOfExistingLines(t *testing.T) {
	// prior merges should guarantee unique existing lines, but must not be assumed
	existing := []entity.OrderLine{
		line("X", "", "", "1", "50"),
		line("X", "", "", "1", "50"),
	}
	res := reconcile.Merge(existing, []entity.OrderLine{line("X", "", "", "2", "50")})

	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].Quantity.Equal(dec("2")))
	assert.Empty(t, res.Deductions, "deduplicated existing qty already equals the cart qty")
}

func TestTotals(t *testing.T) {
	lines := []entity.OrderLine{
		{Subtotal: dec("200"), TaxAmount: dec("10")},
		{Subtotal: dec("100"), TaxAmount: dec("5")},
	}
	subtotal, tax, total := reconcile.Totals(lines, dec("10"), dec("0.5"))
	assert.True(t, subtotal.Equal(dec("300")))
	assert.True(t, tax.Equal(dec("15")))
	// 300 + 15 - 30 + 0.5
	assert.True(t, total.Equal(dec("285.5")))
}
