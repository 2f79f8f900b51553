// Package pdf renders settled transactions as printable receipts.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  HEADER: receipt number + date  │  table + payment type │
//	│  ─────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Item | Price | Tax | Subtotal             │
//	│  ─────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Tax / Discount / Round off / TOTAL  │
//	└─────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/billing"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implements billing.ReceiptGenerator using Maroto v2.
type ReceiptGenerator struct{}

func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// Receipt renders the PDF and returns its bytes.
func (g *ReceiptGenerator) Receipt(txn *entity.Transaction) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Receipt "+txn.TransactionID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(txn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range lineRows(txn.Items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(txn))
	m.AddRows(footerRow(txn))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(txn *entity.Transaction) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RECEIPT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(txn.TransactionID, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Table "+txn.TableNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Paid by "+txn.Type, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(txn.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 5, align.Left),
		h("Price", 2, align.Right),
		h("Tax", 1, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func lineRows(items []entity.OrderLine) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, l := range items {
		name := l.ItemName
		if l.Size != "" {
			name += " (" + l.Size + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TaxAmount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				l.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(txn *entity.Transaction) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, isLabel bool) core.Component {
		right := 1.0
		if isLabel {
			right = 2.0
		}
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right,
		})
	}

	return row.New(34).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			label("Tax:"),
			label(fmt.Sprintf("Discount (%s%%):", txn.Discount.StringFixed(0))),
			label("Round off:"),
			grand("TOTAL:", true),
		),
		col.New(4).Add(
			value(txn.Subtotal.StringFixed(2)),
			value(txn.TaxAmount.StringFixed(2)),
			value("-"+txn.DiscountAmount.StringFixed(2)),
			value(txn.RoundOff.StringFixed(2)),
			grand(txn.Total.StringFixed(2), false),
		),
	)
}

func footerRow(txn *entity.Transaction) core.Row {
	note := "Thank you for your visit."
	if txn.Notes != "" {
		note = txn.Notes
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(note, props.Text{Size: 7.5, Color: colorGray, Top: 4, Align: align.Center}),
	))
}
