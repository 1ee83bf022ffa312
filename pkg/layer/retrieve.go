package layer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const retrieveChunkSize = 32 * 1024

// Retriever fetches remote catalog documents over HTTP with progress
// reporting and context cancellation
type Retriever struct {
	client *http.Client
}

// NewRetriever creates a retriever with a 60 second request timeout
func NewRetriever() *Retriever {
	return &Retriever{client: &http.Client{Timeout: 60 * time.Second}}
}

// NewRetrieverWithClient creates a retriever using the given HTTP client
func NewRetrieverWithClient(client *http.Client) *Retriever {
	return &Retriever{client: client}
}

// Fetch downloads the document at url, reporting progress to monitor.
// The total passed to Begin is the Content-Length, or -1 when unknown.
// Cancelling the context aborts the download.
func (r *Retriever) Fetch(ctx context.Context, url string, monitor ProgressMonitor) ([]byte, error) {
	if monitor == nil {
		monitor = NullMonitor{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retrieve: HTTP %d for %s", resp.StatusCode, url)
	}

	monitor.Begin(url, resp.ContentLength)
	defer monitor.Done()

	var data []byte
	buf := make([]byte, retrieveChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("retrieve: %w", err)
		}
		n, err := resp.Body.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			monitor.Worked(int64(n))
		}
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, fmt.Errorf("retrieve: %w", err)
		}
	}
}
