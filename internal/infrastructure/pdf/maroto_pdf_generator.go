// Package pdf renders the print view of a committed document.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Pharmacy name   │  Document label + number + date  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTY: name + phone/email/address + reference              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Item | Batch | Rate | Disc | GST% | Amount    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAYMENTS: method + amount per entry                        │
//	│  TOTALS: Subtotal / Discount / GST / Grand total / Balance  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/kritagya/pharmacare-api/internal/application/billing"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Indian digit grouping (1,23,456.78) for printed amounts.
var enIN = message.NewPrinter(language.MustParse("en-IN"))

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements billing.DocumentPDFGenerator using Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator builds the generator. appName is printed as the page
// title (the pharmacy name).
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateDocumentPDF renders the PDF and returns its bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	lines []*entity.DocumentLine,
	payments []*entity.DocumentPayment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Kind.Rules().Label+" "+doc.Number, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(lines) > 0 {
		m.AddRows(tableHeaderRow())
		for _, r := range tableLineRows(lines) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	if len(payments) > 0 {
		for _, r := range paymentRows(payments) {
			m.AddRows(r)
		}
	}

	m.AddRows(totalsRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: pharmacy name (left), document label + number + date (right).
func headerRow(appName string, doc *entity.Document) core.Row {
	rules := doc.Kind.Rules()
	date := doc.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(rules.Label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partyRow: the primary party block (patient, supplier, distributor...).
func partyRow(doc *entity.Document) core.Row {
	contact := fmt.Sprintf("Phone: %s   |   Email: %s   |   Address: %s",
		nonEmpty(doc.PartyPhone, "—"),
		nonEmpty(doc.PartyEmail, "—"),
		nonEmpty(doc.PartyAddress, "—"),
	)
	ref := ""
	if doc.Reference != "" {
		ref = fmt.Sprintf("Ref: %s (%s)", doc.Reference, doc.ReferenceDate.Format("02/01/2006"))
	}

	return row.New(16).Add(
		col.New(12).Add(
			text.New("PARTY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.PartyName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(contact+"   "+ref, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: line table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 4, align.Left),
		h("Batch", 2, align.Left),
		h("Rate", 2, align.Right),
		h("Disc", 1, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 1, align.Right),
	)
}

// tableLineRows: one row per document line.
func tableLineRows(lines []*entity.DocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		disc := "—"
		switch {
		case !l.DiscountAmount.IsZero():
			disc = formatAmount(l.DiscountAmount)
		case !l.DiscountPercent.IsZero():
			disc = l.DiscountPercent.StringFixed(0) + "%"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(l.BatchNumber, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatAmount(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				disc,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TaxPercent.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				formatAmount(l.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// paymentRows: one row per recorded payment.
func paymentRows(payments []*entity.DocumentPayment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAYMENTS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(5).Add(
			col.New(9).Add(text.New(
				fmt.Sprintf("%s (%s)", p.Method, p.Status),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 2},
			)),
			col.New(3).Add(text.New(
				"Rs. "+formatAmount(p.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

// totalsRow: right-aligned totals block. Balance is printed as-is, including
// a negative value on overpayment.
func totalsRow(doc *entity.Document) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grandLabel := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: top,
		})
	}
	grandValue := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(40).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 1),
			label("Discount:", 7),
			label("GST:", 13),
			grandLabel("GRAND TOTAL:", 19),
			label("Paid:", 27),
			label("Balance:", 33),
		),
		col.New(4).Add(
			value("Rs. "+formatAmount(doc.Subtotal), 1),
			value("Rs. "+formatAmount(doc.DiscountTotal), 7),
			value("Rs. "+formatAmount(doc.TaxTotal), 13),
			grandValue("Rs. "+formatAmount(doc.GrandTotal), 19),
			value("Rs. "+formatAmount(doc.AmountPaid), 27),
			value("Rs. "+formatAmount(doc.Outstanding()), 33),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount renders a decimal with Indian digit grouping and two decimal
// places. Ex: 123456.7 → "1,23,456.70".
func formatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return enIN.Sprintf("%.2f", f)
}
