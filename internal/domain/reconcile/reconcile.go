// Package reconcile merges a newly submitted cart into an already-open order
// for the same table and computes the minimal set of incremental quantity
// deltas. The merge is idempotent: resubmitting an unchanged cart yields zero
// deltas and an unchanged line list. The caller persists the merged order and
// feeds the deltas to the stock ledger.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

// nullID is the sentinel for an absent subcategory or size, so lines with no
// subcategory compare equal only when they also share a size (or lack one).
const nullID = "null"

// Key identifies a line. Size is part of identity.
type Key struct {
	ItemID        string
	SubcategoryID string
	SizeID        string
}

// KeyOf normalizes empty identifiers to the sentinel.
func KeyOf(l entity.OrderLine) Key {
	k := Key{ItemID: l.ItemID, SubcategoryID: l.SubcategoryID, SizeID: l.SizeID}
	if k.SubcategoryID == "" {
		k.SubcategoryID = nullID
	}
	if k.SizeID == "" {
		k.SizeID = nullID
	}
	return k
}

// Delta is an incremental quantity that must be deducted from (or, when the
// caller opts in to decrease-restore, returned to) inventory.
type Delta struct {
	Line     entity.OrderLine
	Quantity decimal.Decimal
}

// Result of a merge.
type Result struct {
	Lines      []entity.OrderLine
	Deductions []Delta
	Restores   []Delta
	Warnings   []string
}

// Dedup collapses duplicate lines within one submission, summing quantities
// and refreshing subtotals. Order of first appearance is preserved.
func Dedup(lines []entity.OrderLine) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(lines))
	index := make(map[Key]int, len(lines))
	for _, l := range lines {
		k := KeyOf(l)
		if i, ok := index[k]; ok {
			out[i].Quantity = unit.Add(out[i].Quantity, l.Quantity)
			out[i].Subtotal = unit.Mul(out[i].Price, out[i].Quantity)
			continue
		}
		l.Subtotal = unit.Mul(l.Price, l.Quantity)
		index[k] = len(out)
		out = append(out, l)
	}
	return out
}

// Merge applies the cart to the existing order's lines:
//
//   - no match for a cart line          → append; full quantity queued for deduction
//   - match with equal quantity         → skip entirely (no update, no deduction)
//   - match with a different quantity   → update line; only a positive delta is
//     queued for deduction; a decrease queues a restore delta, which the caller
//     honors only when decrease-restore is enabled
//
// Both sides are deduplicated first; prior merges should already guarantee
// unique existing lines but this must not be assumed. A zero or negative cart
// quantity is not a remove signal; the line is dropped with a warning.
func Merge(existing, cart []entity.OrderLine) Result {
	res := Result{Lines: Dedup(existing)}
	index := make(map[Key]int, len(res.Lines))
	for i, l := range res.Lines {
		index[KeyOf(l)] = i
	}

	for _, incoming := range Dedup(cart) {
		if !incoming.Quantity.GreaterThan(decimal.Zero) {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("line %q: quantity %s is not positive; line ignored (removal is a separate operation)",
					incoming.ItemName, incoming.Quantity))
			continue
		}
		k := KeyOf(incoming)
		i, ok := index[k]
		if !ok {
			incoming.Subtotal = unit.Mul(incoming.Price, incoming.Quantity)
			index[k] = len(res.Lines)
			res.Lines = append(res.Lines, incoming)
			res.Deductions = append(res.Deductions, Delta{Line: incoming, Quantity: incoming.Quantity})
			continue
		}

		current := &res.Lines[i]
		if current.Quantity.Equal(incoming.Quantity) {
			// Idempotence: unchanged line, already deducted on a prior merge.
			continue
		}

		diff := unit.Sub(incoming.Quantity, current.Quantity)
		current.Quantity = incoming.Quantity
		current.Price = incoming.Price
		current.Subtotal = unit.Mul(incoming.Price, incoming.Quantity)
		current.TaxPercentage = incoming.TaxPercentage
		current.TaxAmount = incoming.TaxAmount
		if incoming.Size != "" {
			current.Size = incoming.Size
		}
		if diff.GreaterThan(decimal.Zero) {
			res.Deductions = append(res.Deductions, Delta{Line: *current, Quantity: diff})
		} else {
			res.Restores = append(res.Restores, Delta{Line: *current, Quantity: diff.Neg()})
		}
	}
	return res
}

// Totals recomputes order-level amounts from the line list. Client-supplied
// order totals are never trusted: billing must agree with what was merged.
//
//	total = subtotal + tax - subtotal*discount/100 + roundOff
func Totals(lines []entity.OrderLine, discountPercent, roundOff decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	for _, l := range lines {
		subtotal = unit.Add(subtotal, l.Subtotal)
		tax = unit.Add(tax, l.TaxAmount)
	}
	discount := unit.Round(subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100)))
	total = unit.Add(unit.Sub(unit.Add(subtotal, tax), discount), roundOff)
	return subtotal, tax, total
}
