package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// syncEligible maps watched collection keys to the reconciliation endpoint
// segment they push to. Keys outside this map are ignored by Observe.
var syncEligible = map[string]string{
	"branches":      "branches",
	"categories":    "categories",
	"products":      "products",
	"employees":     "employees",
	"customers":     "customers",
	"menuItems":     "menu-items",
	"tables":        "tables",
	"tableSections": "table-sections",
	"sales":         "sales",
	"cashRegisters": "cash-registers",
}

// Stats exposes the pusher's lifetime counters. Failures are counted here
// rather than surfaced to callers; Observe never returns an error.
type Stats struct {
	Pushed  int64 `json:"pushed"`
	Failed  int64 `json:"failed"`
	Dropped int64 `json:"dropped"`
}

type pushItem struct {
	endpoint string
	tenantID string
	branchID string
	element  json.RawMessage
	hasID    bool
}

// Pusher watches in-memory collections and lazily writes changed records to
// the reconciliation engine. Writes are debounced per collection key: a value
// observed during the quiet period supersedes the previous pending one, so
// only the latest value in a burst is pushed. Fired values are split into
// elements and enqueued into a bounded queue drained by a single worker;
// when the queue is full the element is dropped and counted.
type Pusher struct {
	baseURL  string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	latest map[string]pendingValue
	closed bool

	queue    chan pushItem
	wg       sync.WaitGroup
	inflight sync.WaitGroup // fires past the closed check but not yet enqueued

	pushed  atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

type pendingValue struct {
	endpoint string
	tenantID string
	branchID string
	value    any
}

// Option customizes a Pusher.
type Option func(*Pusher)

// WithHTTPClient overrides the HTTP client used for write-through calls.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pusher) { p.client = c }
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pusher) { p.logger = l }
}

// WithQueueCapacity sets the bounded queue size.
func WithQueueCapacity(n int) Option {
	return func(p *Pusher) { p.queue = make(chan pushItem, n) }
}

// NewPusher creates a pusher targeting baseURL (e.g. "http://localhost:8080")
// with the given debounce quiet period, and starts its worker.
func NewPusher(baseURL string, interval time.Duration, opts ...Option) *Pusher {
	p := &Pusher{
		baseURL:  baseURL,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   slog.Default(),
		timers:   make(map[string]*time.Timer),
		latest:   make(map[string]pendingValue),
		queue:    make(chan pushItem, 256),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.wg.Add(1)
	go p.worker()
	return p
}

// Observe records a new value for a collection key and schedules a
// write-through after the quiet period. Keys not on the sync-eligible
// allow-list are ignored. Observe never blocks on network I/O.
func (p *Pusher) Observe(collectionKey, tenantID, branchID string, value any) {
	endpoint, ok := syncEligible[collectionKey]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	scopeKey := tenantID + ":" + branchID + ":" + collectionKey
	p.latest[scopeKey] = pendingValue{endpoint: endpoint, tenantID: tenantID, branchID: branchID, value: value}

	if t, ok := p.timers[scopeKey]; ok {
		t.Stop()
	}
	p.timers[scopeKey] = time.AfterFunc(p.interval, func() {
		p.fire(scopeKey)
	})
}

// Stats returns a snapshot of the lifetime counters.
func (p *Pusher) Stats() Stats {
	return Stats{
		Pushed:  p.pushed.Load(),
		Failed:  p.failed.Load(),
		Dropped: p.dropped.Load(),
	}
}

// Close stops all pending timers, flushes their latest values into the queue
// and waits for the worker to drain it.
func (p *Pusher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for key, t := range p.timers {
		t.Stop()
		delete(p.timers, key)
	}
	remaining := make([]pendingValue, 0, len(p.latest))
	for key, pv := range p.latest {
		remaining = append(remaining, pv)
		delete(p.latest, key)
	}
	p.mu.Unlock()

	// A timer that beat its Stop may still be enqueueing; wait it out before
	// the queue is closed.
	p.inflight.Wait()
	for _, pv := range remaining {
		p.enqueue(pv)
	}
	close(p.queue)
	p.wg.Wait()
}

func (p *Pusher) fire(scopeKey string) {
	p.mu.Lock()
	pv, ok := p.latest[scopeKey]
	if ok {
		delete(p.latest, scopeKey)
		delete(p.timers, scopeKey)
	}
	if !ok || p.closed {
		p.mu.Unlock()
		return
	}
	p.inflight.Add(1)
	p.mu.Unlock()
	defer p.inflight.Done()
	p.enqueue(pv)
}

// enqueue splits an observed value into individual elements and offers each
// to the bounded queue. A full queue drops the element and bumps the counter.
func (p *Pusher) enqueue(pv pendingValue) {
	for _, el := range flatten(pv.value) {
		raw, err := json.Marshal(el)
		if err != nil {
			p.failed.Add(1)
			p.logger.Error("Sync push marshal failed", "collection", pv.endpoint, "error", err)
			continue
		}
		item := pushItem{
			endpoint: pv.endpoint,
			tenantID: pv.tenantID,
			branchID: pv.branchID,
			element:  raw,
			hasID:    hasIDField(raw),
		}
		select {
		case p.queue <- item:
		default:
			p.dropped.Add(1)
			p.logger.Warn("Sync push queue full, element dropped",
				"collection", pv.endpoint, "tenant_id", pv.tenantID)
		}
	}
}

func (p *Pusher) worker() {
	defer p.wg.Done()
	for item := range p.queue {
		if err := p.push(item); err != nil {
			p.failed.Add(1)
			p.logger.Error("Sync push failed", "collection", item.endpoint,
				"tenant_id", item.tenantID, "error", err)
			continue
		}
		p.pushed.Add(1)
	}
}

// push writes one element as a single-item reconciliation batch. Elements
// carrying an id use PUT (create-or-update); elements without one use POST.
func (p *Pusher) push(item pushItem) error {
	body, err := json.Marshal(map[string]any{
		"tenantId": item.tenantID,
		"branchId": item.branchID,
		"items":    []json.RawMessage{item.element},
	})
	if err != nil {
		return err
	}

	method := http.MethodPost
	if item.hasID {
		method = http.MethodPut
	}
	url := p.baseURL + "/api/v1/sync/" + item.endpoint
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s %s", resp.StatusCode, method, url)
	}
	return nil
}

// flatten turns an observed value into the elements to push: slices push each
// element individually, anything else pushes as a single element. Nil values
// push nothing.
func flatten(value any) []any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{value}
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, rv.Index(i).Interface())
	}
	return out
}

func hasIDField(raw json.RawMessage) bool {
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return false
	}
	return head.ID != ""
}
