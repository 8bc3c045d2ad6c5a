// Package export serializes committed documents to the XML layout consumed
// by the desktop-runtime bridge import.
package export

import (
	"strconv"

	"github.com/beevik/etree"

	appbilling "github.com/kritagya/pharmacare-api/internal/application/billing"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

var _ appbilling.DocumentExporter = (*XMLExporter)(nil)

// XMLExporter implements billing.DocumentExporter using etree.
type XMLExporter struct{}

// NewXMLExporter builds the exporter.
func NewXMLExporter() *XMLExporter { return &XMLExporter{} }

// ExportDocument serializes one document with its lines and payments.
func (e *XMLExporter) ExportDocument(doc *entity.Document, lines []*entity.DocumentLine, payments []*entity.DocumentPayment) ([]byte, error) {
	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := d.CreateElement("document")
	root.CreateAttr("id", doc.ID)
	root.CreateAttr("kind", string(doc.Kind))
	root.CreateAttr("number", doc.Number)

	party := root.CreateElement("party")
	party.CreateElement("name").SetText(doc.PartyName)
	addIfSet(party, "phone", doc.PartyPhone)
	addIfSet(party, "email", doc.PartyEmail)
	addIfSet(party, "address", doc.PartyAddress)
	if doc.Reference != "" {
		ref := party.CreateElement("reference")
		ref.CreateAttr("date", doc.ReferenceDate.Format("2006-01-02"))
		ref.SetText(doc.Reference)
	}

	if len(lines) > 0 {
		linesEl := root.CreateElement("lines")
		for _, l := range lines {
			lineEl := linesEl.CreateElement("line")
			lineEl.CreateAttr("position", strconv.Itoa(l.Position))
			lineEl.CreateElement("name").SetText(l.Name)
			addIfSet(lineEl, "batch_number", l.BatchNumber)
			addIfSet(lineEl, "unit", l.Unit)
			addIfSet(lineEl, "remark", l.Remark)
			lineEl.CreateElement("quantity").SetText(l.Quantity.String())
			lineEl.CreateElement("unit_price").SetText(l.UnitPrice.String())
			lineEl.CreateElement("discount_percent").SetText(l.DiscountPercent.String())
			lineEl.CreateElement("discount_amount").SetText(l.DiscountAmount.String())
			lineEl.CreateElement("tax_percent").SetText(l.TaxPercent.String())
			lineEl.CreateElement("line_total").SetText(l.LineTotal.String())
		}
	}

	if len(payments) > 0 {
		paymentsEl := root.CreateElement("payments")
		for _, p := range payments {
			payEl := paymentsEl.CreateElement("payment")
			payEl.CreateAttr("method", p.Method)
			payEl.CreateAttr("status", p.Status)
			payEl.SetText(p.Amount.String())
		}
	}

	totals := root.CreateElement("totals")
	totals.CreateElement("subtotal").SetText(doc.Subtotal.String())
	totals.CreateElement("discount_total").SetText(doc.DiscountTotal.String())
	totals.CreateElement("tax_total").SetText(doc.TaxTotal.String())
	totals.CreateElement("grand_total").SetText(doc.GrandTotal.String())
	totals.CreateElement("amount_paid").SetText(doc.AmountPaid.String())
	totals.CreateElement("outstanding").SetText(doc.Outstanding().String())

	root.CreateElement("created_at").SetText(doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	root.CreateElement("created_by").SetText(doc.CreatedBy)

	d.Indent(2)
	return d.WriteToBytes()
}

func addIfSet(parent *etree.Element, tag, value string) {
	if value != "" {
		parent.CreateElement(tag).SetText(value)
	}
}
