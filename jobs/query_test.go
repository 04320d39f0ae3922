package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblane/backend"
	"joblane/models"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestQueryServiceDebounceSingleQueryFinalValue(t *testing.T) {
	var mu sync.Mutex
	var searches []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		searches = append(searches, r.URL.Query().Get("or"))
		mu.Unlock()
		w.Header().Set("Content-Range", "0-0/0")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	s := NewQueryService(context.Background(), cli, "", Options{})
	defer s.Close()
	s.mu.Lock()
	s.debounce = 30 * time.Millisecond
	s.mu.Unlock()

	// initial fetch
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(searches) == 1
	})

	// rapid typing inside the quiet period
	s.SetSearchTerm("g")
	time.Sleep(5 * time.Millisecond)
	s.SetSearchTerm("go")
	time.Sleep(5 * time.Millisecond)
	s.SetSearchTerm("golang")

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, searches, 2, "exactly one query for the whole typing burst")
	assert.Contains(t, searches[1], "golang")
	assert.NotContains(t, searches[1], "title.ilike.%go%,")
}

func TestQueryServiceDebounceRearmWhileTimerBlocked(t *testing.T) {
	var mu sync.Mutex
	var searches []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		searches = append(searches, r.URL.Query().Get("or"))
		mu.Unlock()
		w.Header().Set("Content-Range", "0-0/0")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	s := NewQueryService(context.Background(), cli, "", Options{})
	defer s.Close()
	s.mu.Lock()
	s.debounce = 10 * time.Millisecond
	s.mu.Unlock()

	// initial fetch
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(searches) == 1
	})

	// rearm while the first timer has already fired and is blocked on the
	// mutex we hold; the superseded firing must not issue its own query
	s.mu.Lock()
	s.opts.SearchTerm = "g"
	s.scheduleLocked()
	time.Sleep(50 * time.Millisecond)
	s.opts.SearchTerm = "go"
	s.scheduleLocked()
	s.mu.Unlock()

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, searches, 2, "exactly one query despite the blocked firing")
	assert.Contains(t, searches[1], "%go%")
}

func TestQueryServiceStaleResponseDiscarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobType := r.URL.Query().Get("job_type")
		if jobType == "eq.Contract" {
			// the older query answers after the newer one
			time.Sleep(100 * time.Millisecond)
			w.Header().Set("Content-Range", "0-0/1")
			json.NewEncoder(w).Encode([]models.Job{{ID: "stale"}})
			return
		}
		w.Header().Set("Content-Range", "0-1/2")
		json.NewEncoder(w).Encode([]models.Job{{ID: "fresh-1"}, {ID: "fresh-2"}})
	}))
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	s := NewQueryService(context.Background(), cli, "", Options{})
	defer s.Close()

	waitFor(t, func() bool { return !s.Snapshot().Loading })

	s.SetJobType("Contract")  // slow query
	s.SetJobType("Full-Time") // supersedes it immediately

	time.Sleep(250 * time.Millisecond)

	res := s.Snapshot()
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "fresh-1", res.Jobs[0].ID)
	assert.Equal(t, int64(2), res.TotalCount, "the stale response must not overwrite the newer one")
}

func TestQueryServiceErrorKeepsStaleTotal(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code":"XX000","message":"boom"}`))
			return
		}
		w.Header().Set("Content-Range", "0-0/7")
		json.NewEncoder(w).Encode([]models.Job{{ID: "1"}})
	}))
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	s := NewQueryService(context.Background(), cli, "", Options{})
	defer s.Close()

	waitFor(t, func() bool { return s.Snapshot().TotalCount == 7 })

	fail.Store(true)
	s.Refetch()
	waitFor(t, func() bool { return s.Snapshot().Error != "" })

	res := s.Snapshot()
	assert.Empty(t, res.Jobs, "jobs empty on failure")
	assert.Equal(t, int64(7), res.TotalCount, "total count stays at last success")
}

func TestQueryServiceSubscribeNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "0-0/1")
		json.NewEncoder(w).Encode([]models.Job{{ID: "1"}})
	}))
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	s := NewQueryService(context.Background(), cli, "", Options{})
	defer s.Close()

	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	s.Refetch()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for notification")
	}
}
