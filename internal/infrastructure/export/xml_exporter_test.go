package export

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritagya/pharmacare-api/internal/domain/document"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

func TestExportDocument(t *testing.T) {
	doc := &entity.Document{
		ID:            "doc-1",
		Kind:          document.KindBill,
		Number:        "BILL-1724999999123",
		PartyName:     "Jane Doe",
		PartyPhone:    "555-0100",
		ReferenceDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Subtotal:      decimal.RequireFromString("170"),
		DiscountTotal: decimal.RequireFromString("20"),
		TaxTotal:      decimal.RequireFromString("20.4"),
		GrandTotal:    decimal.RequireFromString("170.4"),
		AmountPaid:    decimal.RequireFromString("200"),
		CreatedBy:     "user-1",
		CreatedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	lines := []*entity.DocumentLine{{
		ID:         "line-1",
		DocumentID: "doc-1",
		Position:   0,
		Name:       "Paracetamol",
		Quantity:   decimal.RequireFromString("10"),
		UnitPrice:  decimal.RequireFromString("5"),
		LineTotal:  decimal.RequireFromString("50"),
	}}
	payments := []*entity.DocumentPayment{{
		ID:         "pay-1",
		DocumentID: "doc-1",
		Amount:     decimal.RequireFromString("200"),
		Method:     "cash",
		Status:     "paid",
	}}

	payload, err := NewXMLExporter().ExportDocument(doc, lines, payments)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(payload))

	root := parsed.SelectElement("document")
	require.NotNil(t, root)
	assert.Equal(t, "bill", root.SelectAttrValue("kind", ""))
	assert.Equal(t, "BILL-1724999999123", root.SelectAttrValue("number", ""))

	party := root.SelectElement("party")
	require.NotNil(t, party)
	assert.Equal(t, "Jane Doe", party.SelectElement("name").Text())
	assert.Nil(t, party.SelectElement("email"), "empty optional fields are omitted")

	linesEl := root.SelectElement("lines")
	require.NotNil(t, linesEl)
	require.Len(t, linesEl.SelectElements("line"), 1)
	assert.Equal(t, "50", linesEl.SelectElements("line")[0].SelectElement("line_total").Text())

	totals := root.SelectElement("totals")
	require.NotNil(t, totals)
	assert.Equal(t, "170.4", totals.SelectElement("grand_total").Text())
	assert.Equal(t, "-29.6", totals.SelectElement("outstanding").Text())
}
