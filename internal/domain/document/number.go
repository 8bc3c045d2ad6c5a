package document

import (
	"fmt"
	"sync"
	"time"
)

// Number generation: PREFIX-<millisecond timestamp>, e.g. BILL-1724999999123.
// Timestamp-based rather than a sequential integer because no central
// sequence authority exists; the monotonic guard below keeps two commits in
// the same millisecond from colliding within this process.

var (
	numberMu   sync.Mutex
	lastMillis int64
)

// NextNumber returns a fresh human-readable document number for the kind.
func NextNumber(k Kind, now time.Time) string {
	ms := now.UnixMilli()

	numberMu.Lock()
	if ms <= lastMillis {
		ms = lastMillis + 1
	}
	lastMillis = ms
	numberMu.Unlock()

	return fmt.Sprintf("%s-%d", k.Rules().Prefix, ms)
}
