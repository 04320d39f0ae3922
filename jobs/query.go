package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"joblane/backend"
	"joblane/models"
)

// DebounceInterval is the quiet period applied to text filter changes
// before a query is issued.
const DebounceInterval = 300 * time.Millisecond

type Result struct {
	Jobs       []models.Job
	TotalCount int64
	Loading    bool
	Error      string
}

// QueryService is a stateful listing controller for embedding UIs. Text
// filter changes are debounced; each issued query carries a generation
// token so a slow response for a superseded filter tuple can never
// overwrite a newer one. On failure Jobs empties and Error is set, but
// TotalCount keeps its last successful value so the UI does not flash
// empty.
type QueryService struct {
	cli    *backend.Client
	token  string
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	opts     Options
	result   Result
	gen      uint64
	timer    *time.Timer
	debounce time.Duration
	subs     map[int]chan struct{}
	nextSub  int
	closed   bool
}

func NewQueryService(ctx context.Context, cli *backend.Client, token string, opts Options) *QueryService {
	ctx, cancel := context.WithCancel(ctx)
	s := &QueryService{
		cli:      cli,
		token:    token,
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		debounce: DebounceInterval,
		subs:     make(map[int]chan struct{}),
		result:   Result{Jobs: []models.Job{}, Loading: true},
	}
	s.mu.Lock()
	s.fetchLocked()
	s.mu.Unlock()
	return s
}

// SetSearchTerm updates the free-text filter; the query fires after the
// debounce interval, superseding any pending intent.
func (s *QueryService) SetSearchTerm(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.SearchTerm == v {
		return
	}
	s.opts.SearchTerm = v
	s.scheduleLocked()
}

// SetLocation updates the location filter, debounced like the search term.
func (s *QueryService) SetLocation(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.LocationFilter == v {
		return
	}
	s.opts.LocationFilter = v
	s.scheduleLocked()
}

// SetJobType is a dropdown-style filter and refetches immediately.
func (s *QueryService) SetJobType(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.JobTypeFilter == v {
		return
	}
	s.opts.JobTypeFilter = v
	s.fetchLocked()
}

func (s *QueryService) SetIncludeInactive(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.IncludeInactive == v {
		return
	}
	s.opts.IncludeInactive = v
	s.fetchLocked()
}

// Refetch reruns the current filter tuple right away.
func (s *QueryService) Refetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchLocked()
}

func (s *QueryService) Snapshot() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Subscribe returns a channel signalled after each state change, plus its
// teardown.
func (s *QueryService) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *QueryService) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.cancel()
}

// scheduleLocked arms (or rearms) the debounce timer.
func (s *QueryService) scheduleLocked() {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	// Stop can miss a callback that already fired and is waiting on the
	// mutex; each callback checks it still owns the slot before fetching.
	var t *time.Timer
	t = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.timer != t {
			return
		}
		s.timer = nil
		s.fetchLocked()
	})
	s.timer = t
}

func (s *QueryService) fetchLocked() {
	if s.closed {
		return
	}
	s.gen++
	gen := s.gen
	opts := s.opts
	s.result.Loading = true

	go func() {
		found, count, err := Search(s.ctx, s.cli, s.token, opts)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen || s.closed {
			// A newer query superseded this one; drop the response.
			return
		}
		s.result.Loading = false
		if err != nil {
			log.Printf("jobs: fetching listings: %v", err)
			s.result.Jobs = []models.Job{}
			s.result.Error = err.Error()
		} else {
			s.result.Jobs = found
			s.result.TotalCount = count
			s.result.Error = ""
		}
		s.notifyLocked()
	}()
}

func (s *QueryService) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
