package layer

import "context"

// Job tracks a background load of a LazyNode. Progress monitors can be
// added and removed while the load is in flight.
type Job struct {
	node     *LazyNode
	monitors *DelegatingMonitor
	cancel   context.CancelFunc
	done     chan struct{}
}

// Node returns the lazy node that spawned this job
func (j *Job) Node() *LazyNode {
	return j.node
}

// AddMonitor registers an additional progress monitor delegate
func (j *Job) AddMonitor(m ProgressMonitor) {
	j.monitors.AddMonitor(m)
}

// RemoveMonitor unregisters a progress monitor delegate
func (j *Job) RemoveMonitor(m ProgressMonitor) {
	j.monitors.RemoveMonitor(m)
}

// Cancel aborts the retrieval. The job still completes; Wait returns the
// cancellation error.
func (j *Job) Cancel() {
	j.cancel()
}

// Done returns a channel closed when the job completes
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job completes and returns the load error, if any
func (j *Job) Wait() error {
	<-j.done
	return j.node.Err()
}

func (j *Job) run(ctx context.Context) {
	defer close(j.done)
	defer j.cancel()

	l := j.node
	data, err := l.retriever.Fetch(ctx, l.url, j.monitors)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.err = err
	} else {
		l.err = l.handleRetrieval(data)
	}
	l.loaded.Store(true)
	l.loading.Store(false)
}
