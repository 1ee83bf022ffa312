package layer

import "sync"

// ProgressMonitor receives progress reports from a retrieval. A total of
// -1 means the amount of work is unknown.
type ProgressMonitor interface {
	// Begin is called once when the task starts
	Begin(task string, total int64)
	// Worked reports an increment of completed work
	Worked(n int64)
	// Done is called exactly once when the task ends, successful or not
	Done()
}

// NullMonitor is a ProgressMonitor that discards all reports
type NullMonitor struct{}

func (NullMonitor) Begin(task string, total int64) {}
func (NullMonitor) Worked(n int64)                 {}
func (NullMonitor) Done()                          {}

// DelegatingMonitor fans progress reports out to a set of delegate
// monitors. Delegates may be added and removed concurrently while a load
// is in flight; reports preserve registration order.
type DelegatingMonitor struct {
	mu        sync.RWMutex
	delegates []ProgressMonitor
}

// NewDelegatingMonitor creates a delegating monitor with the given initial
// delegates
func NewDelegatingMonitor(monitors ...ProgressMonitor) *DelegatingMonitor {
	d := &DelegatingMonitor{}
	for _, m := range monitors {
		d.AddMonitor(m)
	}
	return d
}

// AddMonitor registers a delegate. Adding the same delegate twice has no
// effect.
func (d *DelegatingMonitor) AddMonitor(m ProgressMonitor) {
	if m == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.delegates {
		if existing == m {
			return
		}
	}
	d.delegates = append(d.delegates, m)
}

// RemoveMonitor unregisters a delegate
func (d *DelegatingMonitor) RemoveMonitor(m ProgressMonitor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.delegates {
		if existing == m {
			d.delegates = append(d.delegates[:i], d.delegates[i+1:]...)
			return
		}
	}
}

// Begin forwards the task start to every delegate
func (d *DelegatingMonitor) Begin(task string, total int64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, m := range d.delegates {
		m.Begin(task, total)
	}
}

// Worked forwards a work increment to every delegate
func (d *DelegatingMonitor) Worked(n int64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, m := range d.delegates {
		m.Worked(n)
	}
}

// Done forwards the task end to every delegate
func (d *DelegatingMonitor) Done() {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, m := range d.delegates {
		m.Done()
	}
}
