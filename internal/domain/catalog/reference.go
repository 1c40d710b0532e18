package catalog

import (
	"fmt"
	"strings"
	"time"
)

// refTimeLayout is the fixed-width timestamp segment of a product reference.
const refTimeLayout = "20060102150405"

// GenerateRef derives a human-readable product reference from the category,
// the current time and the running product count, e.g. "REPT20240301100000007".
// The prefix is the uppercased first four characters of the category, padded
// with 'X' for shorter categories; the suffix is the last three digits of the
// count. The function is deterministic: uniqueness is enforced by the unique
// index on products.ref plus the lifecycle's regenerate-and-retry.
func GenerateRef(category string, now time.Time, count int64) string {
	prefix := []rune(strings.ToUpper(category))
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	for len(prefix) < 4 {
		prefix = append(prefix, 'X')
	}

	seq := count % 1000
	if seq < 0 {
		seq = -seq
	}

	return fmt.Sprintf("%s%s%03d", string(prefix), now.Format(refTimeLayout), seq)
}
