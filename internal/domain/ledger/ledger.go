// Package ledger holds the pure stock accounting rules for inventory items:
// additive restock, unit-converted FIFO deduction, and reversible waste
// write-offs. Functions here transform an InventoryItem in memory and report
// typed failures; persisting the result (and locking around it) is the
// application layer's job. There are no hidden recomputation hooks: the
// aggregate and the batch trail are updated together, explicitly.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

// Restock appends a purchase batch and adds its quantity and monetary value
// to the aggregate. Amount accumulates additively, never by recomputing an
// average. The batch quantity and price are assumed pre-validated (> 0).
func Restock(item *entity.InventoryItem, batch entity.SupplierBatch) {
	batch.Quantity = unit.Round(batch.Quantity)
	batch.UnitPrice = unit.Round(batch.UnitPrice)
	batch.Total = unit.Mul(batch.Quantity, batch.UnitPrice)
	if batch.PurchasedAt.IsZero() {
		batch.PurchasedAt = time.Now()
	}
	item.Suppliers = append(item.Suppliers, batch)

	item.Stock.Quantity = unit.Add(item.Stock.Quantity, batch.Quantity)
	item.Stock.TotalQuantity = unit.Add(item.Stock.TotalQuantity, batch.Quantity)
	item.Stock.Amount = unit.Add(item.Stock.Amount, batch.UnitPrice)
	item.Stock.Total = unit.Add(item.Stock.Total, batch.Total)
	item.Stock.PurchasedAt = batch.PurchasedAt
}

// Deduct removes qty (expressed in u) from the item's stock, consuming
// supplier batches oldest-first. Returns the remaining total quantity.
// Fails with ErrIncompatibleUnit across unit families, ErrInsufficientStock
// when the converted quantity exceeds what is available, ErrInvalidQuantity
// for zero/negative input. On failure the item is unchanged.
func Deduct(item *entity.InventoryItem, qty decimal.Decimal, u unit.Unit) (decimal.Decimal, error) {
	needed, err := toItemUnit(item, qty, u)
	if err != nil {
		return decimal.Zero, err
	}
	if needed.GreaterThan(item.Stock.TotalQuantity) {
		return decimal.Zero, domain.ErrInsufficientStock
	}

	item.Stock.Quantity = unit.Sub(item.Stock.Quantity, needed)
	item.Stock.TotalQuantity = unit.Sub(item.Stock.TotalQuantity, needed)
	consumeFIFO(item, needed)
	return item.Stock.TotalQuantity, nil
}

// WriteOff removes qty as waste. Same validation as Deduct, but the batch
// trail is left untouched: waste is an aggregate-only adjustment recorded in
// a separate audit category, and reversible via Restore.
func WriteOff(item *entity.InventoryItem, qty decimal.Decimal, u unit.Unit) error {
	needed, err := toItemUnit(item, qty, u)
	if err != nil {
		return err
	}
	if needed.GreaterThan(item.Stock.TotalQuantity) {
		return domain.ErrInsufficientStock
	}
	item.Stock.Quantity = unit.Sub(item.Stock.Quantity, needed)
	item.Stock.TotalQuantity = unit.Sub(item.Stock.TotalQuantity, needed)
	return nil
}

// Restore adds a previously written-off quantity back to the aggregate.
// Used when a waste record is edited or deleted.
func Restore(item *entity.InventoryItem, qty decimal.Decimal, u unit.Unit) error {
	restored, err := toItemUnit(item, qty, u)
	if err != nil {
		return err
	}
	item.Stock.Quantity = unit.Add(item.Stock.Quantity, restored)
	item.Stock.TotalQuantity = unit.Add(item.Stock.TotalQuantity, restored)
	return nil
}

func toItemUnit(item *entity.InventoryItem, qty decimal.Decimal, u unit.Unit) (decimal.Decimal, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	return unit.Convert(qty, u, item.Unit)
}

// consumeFIFO reduces batch quantities oldest purchase first. Batches are
// never removed, only exhausted to zero.
func consumeFIFO(item *entity.InventoryItem, needed decimal.Decimal) {
	batches := make([]*entity.SupplierBatch, 0, len(item.Suppliers))
	for i := range item.Suppliers {
		if item.Suppliers[i].Quantity.GreaterThan(decimal.Zero) {
			batches = append(batches, &item.Suppliers[i])
		}
	}
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].PurchasedAt.Before(batches[j].PurchasedAt)
	})
	for _, b := range batches {
		if !needed.GreaterThan(decimal.Zero) {
			return
		}
		if b.Quantity.GreaterThanOrEqual(needed) {
			b.Quantity = unit.Sub(b.Quantity, needed)
			return
		}
		needed = unit.Sub(needed, b.Quantity)
		b.Quantity = decimal.Zero
	}
}
