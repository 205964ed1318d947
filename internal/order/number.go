package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber produces an order number of the form
// PREFIX-######-###: a six-digit time-derived segment (last six digits of
// the unix-milli clock) plus a three-digit random suffix. Uniqueness is not
// globally guaranteed under high concurrency; the order store carries a
// unique index and the finalizer regenerates on conflict.
func GenerateOrderNumber(prefix string) string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	timeSegment := millis[len(millis)-6:]
	return fmt.Sprintf("%s-%s-%03d", prefix, timeSegment, rand.Intn(1000))
}
