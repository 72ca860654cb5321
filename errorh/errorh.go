// Package errorh implements the deferred-barrier error policy: setup and
// classification code appends configuration errors as they are found and
// keeps going, so a single run reports every inconsistency; the driver
// raises the barrier once at end-of-setup and aborts if anything was
// collected. Invariant violations during an iteration do not use this
// path, they abort immediately.
package errorh

import (
	"fmt"
	"strings"
	"sync"
)

type Collector struct {
	mu   sync.Mutex
	msgs []string
}

func NewCollector() *Collector {
	return &Collector{}
}

// Collect appends a configuration error and returns; the run continues so
// later checks can still report.
func (c *Collector) Collect(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, fmt.Sprintf(format, args...))
}

func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Barrier returns a single aggregated error when any message was
// collected, nil otherwise. The collector is left intact so tests can
// inspect messages after a failed barrier.
func (c *Collector) Barrier() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%d configuration error(s):\n  %s",
		len(c.msgs), strings.Join(c.msgs, "\n  "))
}
