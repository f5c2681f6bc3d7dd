// Package identifier produces collision-resistant, sortable record IDs of the
// form <PREFIX>-<yyyyMMddHHmmss><3-digit counter><4 random chars>.
package identifier

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Entity-kind prefixes baked into every generated ID.
const (
	PrefixUser       = "USR"
	PrefixStudent    = "STU"
	PrefixTeacher    = "TCH"
	PrefixAdmin      = "ADM"
	PrefixCourse     = "CRS"
	PrefixAssignment = "ASG"
	PrefixGrade      = "GRD"
	PrefixEnrollment = "ENR"
)

const timestampLayout = "20060102150405"

// Generator hands out IDs. One instance is shared process-wide; the counter
// rolls modulo 1000 and the random suffix covers same-second collisions.
type Generator struct {
	counter atomic.Uint64
	now     func() time.Time
}

// New builds a generator backed by the wall clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock builds a generator with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns a fresh ID for the given prefix.
func (g *Generator) Next(prefix string) string {
	seq := g.counter.Add(1) % 1000
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return fmt.Sprintf("%s-%s%03d%s", prefix, g.now().Format(timestampLayout), seq, suffix)
}
