package document_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritagya/pharmacare-api/internal/domain/document"
)

func TestNextNumber_Pattern(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	num := document.NextNumber(document.KindBill, now)
	assert.Regexp(t, regexp.MustCompile(`^BILL-\d+$`), num)

	num = document.NextNumber(document.KindPurchaseOrder, now)
	assert.Regexp(t, regexp.MustCompile(`^PO-\d+$`), num)
}

// TestNextNumber_Monotonic verifies that repeated calls with the same clock
// reading still produce strictly distinct numbers.
func TestNextNumber_Monotonic(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		num := document.NextNumber(document.KindBill, now)
		assert.False(t, seen[num], "number %s generated twice", num)
		seen[num] = true
	}
}

func TestParse(t *testing.T) {
	k, err := document.Parse("bill")
	require.NoError(t, err)
	assert.Equal(t, document.KindBill, k)

	_, err = document.Parse("quotation")
	assert.Error(t, err, "unknown kinds must be rejected")
}

func TestKindRules(t *testing.T) {
	assert.True(t, document.KindBill.Rules().AllowsPayments)
	assert.False(t, document.KindIssueOrder.Rules().RequiresQuantityPrice,
		"issue-order lines only need a name")
	assert.False(t, document.KindDistributorBatch.Rules().RequiresLines,
		"distributor batches are header-only")
	for _, k := range document.Kinds() {
		assert.True(t, k.Valid())
		assert.NotEmpty(t, k.Rules().Prefix)
	}
}
