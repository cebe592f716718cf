package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"
)

var idCounter uint64 = uint64(rand.Intn(10000))

// GenerateUniqueID builds a record ID from a 2-letter entity prefix, the last
// 9 digits of the current epoch milliseconds and a zero-padded 4-digit
// counter suffix, e.g. CL7345912040042. The counter makes IDs unique within a
// process as long as fewer than 10,000 are minted in one millisecond; the
// format is a contract, callers key receipt numbering and folder names off
// fragments of it.
func GenerateUniqueID(prefix string) string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 9 {
		ts = ts[len(ts)-9:]
	}
	return fmt.Sprintf("%s%s%04d", prefix, ts, atomic.AddUint64(&idCounter, 1)%10000)
}

// GenerateRandomString returns n lowercase alphanumeric characters, used for
// non-record identifiers such as synthetic meeting codes.
func GenerateRandomString(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}
