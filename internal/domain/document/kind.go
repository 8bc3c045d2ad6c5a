package document

import "fmt"

// Kind identifies a commercial document type. Every kind runs through the
// same draft/totals/commit engine; the Rules value parametrizes the
// differences.
type Kind string

const (
	KindBill             Kind = "bill"
	KindPurchaseOrder    Kind = "purchase-order"
	KindReceiveOrder     Kind = "receive-order"
	KindIssueOrder       Kind = "issue-order"
	KindDebitCreditNote  Kind = "debit-credit-note"
	KindDistributorBatch Kind = "distributor-batch"
)

// Rules per-kind engine configuration.
type Rules struct {
	Prefix string // document number prefix (BILL, PO, ...)
	Label  string // human-readable title for print views

	// RequiresLines: commit refuses a draft without line items.
	// Distributor batches are header-only and skip this check.
	RequiresLines bool

	// RequiresQuantityPrice: quantity and unit price are mandatory on each
	// appended line. Issue-order lines only need a name.
	RequiresQuantityPrice bool

	// AllowsPayments: payment entries may be appended to the draft.
	AllowsPayments bool
}

var kindRules = map[Kind]Rules{
	KindBill:             {Prefix: "BILL", Label: "Bill", RequiresLines: true, RequiresQuantityPrice: true, AllowsPayments: true},
	KindPurchaseOrder:    {Prefix: "PO", Label: "Purchase Order", RequiresLines: true, RequiresQuantityPrice: true, AllowsPayments: true},
	KindReceiveOrder:     {Prefix: "RO", Label: "Receive Order", RequiresLines: true, RequiresQuantityPrice: true, AllowsPayments: false},
	KindIssueOrder:       {Prefix: "IO", Label: "Issue Order", RequiresLines: true, RequiresQuantityPrice: false, AllowsPayments: false},
	KindDebitCreditNote:  {Prefix: "DCN", Label: "Debit/Credit Note", RequiresLines: true, RequiresQuantityPrice: true, AllowsPayments: false},
	KindDistributorBatch: {Prefix: "DIST", Label: "Distributor Batch", RequiresLines: false, RequiresQuantityPrice: false, AllowsPayments: false},
}

// Rules returns the engine configuration for the kind.
func (k Kind) Rules() Rules {
	return kindRules[k]
}

// Valid reports whether the kind is one of the known document types.
func (k Kind) Valid() bool {
	_, ok := kindRules[k]
	return ok
}

// Parse validates a kind coming from the outside (route param, JSON body).
func Parse(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown document kind %q", s)
	}
	return k, nil
}

// Kinds lists every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindBill,
		KindPurchaseOrder,
		KindReceiveOrder,
		KindIssueOrder,
		KindDebitCreditNote,
		KindDistributorBatch,
	}
}
