package layer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// recordingMonitor collects progress reports for assertions
type recordingMonitor struct {
	mu     sync.Mutex
	task   string
	total  int64
	worked int64
	done   int
}

func (m *recordingMonitor) Begin(task string, total int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.task = task
	m.total = total
}

func (m *recordingMonitor) Worked(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worked += n
}

func (m *recordingMonitor) Done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done++
}

func (m *recordingMonitor) snapshot() (int64, int64, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, m.worked, m.done
}

func TestDelegatingMonitorFansOut(t *testing.T) {
	first := &recordingMonitor{}
	second := &recordingMonitor{}
	d := NewDelegatingMonitor(first)
	d.AddMonitor(second)
	d.AddMonitor(second) // duplicate, ignored

	d.Begin("task", 100)
	d.Worked(40)
	d.RemoveMonitor(second)
	d.Worked(60)
	d.Done()

	if total, worked, done := first.snapshot(); total != 100 || worked != 100 || done != 1 {
		t.Errorf("first monitor: total=%d worked=%d done=%d", total, worked, done)
	}
	if total, worked, done := second.snapshot(); total != 100 || worked != 40 || done != 0 {
		t.Errorf("removed monitor kept receiving: total=%d worked=%d done=%d", total, worked, done)
	}
}

func TestRetrieverReportsProgress(t *testing.T) {
	payload := make([]byte, 100000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		w.Write(payload)
	}))
	defer server.Close()

	monitor := &recordingMonitor{}
	data, err := NewRetriever().Fetch(context.Background(), server.URL, monitor)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("expected %d bytes, got %d", len(payload), len(data))
	}

	total, worked, done := monitor.snapshot()
	if total != int64(len(payload)) {
		t.Errorf("total failed: expected %d, got %d", len(payload), total)
	}
	if worked != int64(len(payload)) {
		t.Errorf("worked failed: expected %d, got %d", len(payload), worked)
	}
	if done != 1 {
		t.Errorf("done called %d times", done)
	}
}

func TestRetrieverHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewRetriever().Fetch(context.Background(), server.URL, nil); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestJobMonitorsWhileRunning(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	payload := []byte(`{"name": "Remote", "layers": [{"name": "One"}]}`)
	lazy, _ := lazyTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		close(started)
		<-release
		w.Write(payload)
	})

	job := lazy.Load(context.Background())
	monitor := &recordingMonitor{}
	job.AddMonitor(monitor)

	<-started
	close(release)
	if err := job.Wait(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// the monitor was added after the job started; it may have missed
	// Begin but must have seen the work and completion
	_, worked, done := monitor.snapshot()
	if worked != int64(len(payload)) {
		t.Errorf("worked failed: expected %d, got %d", len(payload), worked)
	}
	if done != 1 {
		t.Errorf("done called %d times", done)
	}
}
