package layer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// HandlerFunc turns a retrieved catalog document into child nodes
type HandlerFunc func(data []byte, url string) ([]*Node, error)

// LazyNode loads the children of a tree node on demand from a remote
// catalog document. A load runs at most once at a time; concurrent Load
// calls share the running Job. After a load completes, successful or not,
// the node counts as loaded and further Load calls return the finished
// job without retrieving again.
type LazyNode struct {
	node      *Node
	url       string
	retriever *Retriever
	handler   HandlerFunc

	loaded  atomic.Bool
	loading atomic.Bool

	mu    sync.Mutex
	err   error
	added []*Node
	job   *Job
}

// AttachLazy attaches a lazy loader to a node. The node's children will
// be populated from the document at url by handler.
func AttachLazy(node *Node, url string, retriever *Retriever, handler HandlerFunc) *LazyNode {
	l := &LazyNode{node: node, url: url, retriever: retriever, handler: handler}
	node.lazy = l
	return l
}

// Node returns the tree node this loader populates
func (l *LazyNode) Node() *Node {
	return l.node
}

// URL returns the remote catalog document address
func (l *LazyNode) URL() string {
	return l.url
}

// IsLoaded reports whether a load has completed
func (l *LazyNode) IsLoaded() bool {
	return l.loaded.Load()
}

// IsLoading reports whether a load is in flight
func (l *LazyNode) IsLoading() bool {
	return l.loading.Load()
}

// Err returns the error of the last load, or nil
func (l *LazyNode) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Load starts loading the children in the background and returns the Job
// tracking it. When a load is already running or finished, the existing
// job is returned instead of starting another retrieval.
func (l *LazyNode) Load(ctx context.Context) *Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.job != nil && (l.loaded.Load() || l.loading.Load()) {
		return l.job
	}
	l.loading.Store(true)

	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		node:     l,
		monitors: NewDelegatingMonitor(),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	l.job = job
	go job.run(jobCtx)
	return job
}

// handleRetrieval replaces the children added by a previous load with the
// ones parsed from data. Called with l.mu held.
func (l *LazyNode) handleRetrieval(data []byte) error {
	for _, c := range l.added {
		l.node.Remove(c)
	}
	l.added = l.added[:0]

	children, err := l.handler(data, l.url)
	if err != nil {
		return fmt.Errorf("handling %s: %w", l.url, err)
	}
	for _, c := range children {
		l.node.Add(c)
		l.added = append(l.added, c)
	}
	return nil
}

// DisplayChildren returns the children to present in a tree widget: the
// actual children, preceded by an error pseudo-node when the last load
// failed, or a loading pseudo-node while a load is in flight
func (l *LazyNode) DisplayChildren() []*Node {
	children := l.node.Children()

	var first *Node
	if err := l.Err(); err != nil {
		first = NewNode("Error: " + err.Error())
	} else if l.loading.Load() {
		first = NewNode("Loading " + l.node.Name() + "...")
	}
	if first != nil {
		children = append([]*Node{first}, children...)
	}
	return children
}
