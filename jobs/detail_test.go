package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblane/backend"
)

const jobRow = `{"id":"j1","title":"Engineer","company":"Acme","description":"...","location":"Remote","job_type":"Full-Time","user_id":"owner","companies":{"id":"c1","name":"Acme"}}`

const noRowBody = `{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`

// detailServer routes the handful of tables the detail page touches.
type detailServer struct {
	savedExists   bool
	appliedExists bool
	viewInserts   int32
	saveInserts   int32
	saveDeletes   int32
	failSaves     bool
}

func (d *detailServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/rest/v1/jobs":
			w.Write([]byte(jobRow))
		case r.URL.Path == "/rest/v1/saved_jobs" && r.Method == http.MethodGet:
			if d.savedExists {
				w.Write([]byte(`{"id":"s1"}`))
			} else {
				w.WriteHeader(http.StatusNotAcceptable)
				w.Write([]byte(noRowBody))
			}
		case r.URL.Path == "/rest/v1/saved_jobs" && r.Method == http.MethodPost:
			if d.failSaves {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"code":"XX000","message":"boom"}`))
				return
			}
			atomic.AddInt32(&d.saveInserts, 1)
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/rest/v1/saved_jobs" && r.Method == http.MethodDelete:
			if d.failSaves {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"code":"XX000","message":"boom"}`))
				return
			}
			atomic.AddInt32(&d.saveDeletes, 1)
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/rest/v1/job_applications" && r.Method == http.MethodGet:
			if d.appliedExists {
				w.Write([]byte(`{"id":"a1"}`))
			} else {
				w.WriteHeader(http.StatusNotAcceptable)
				w.Write([]byte(noRowBody))
			}
		case r.URL.Path == "/rest/v1/job_views" && r.Method == http.MethodPost:
			atomic.AddInt32(&d.viewInserts, 1)
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":"404","message":"no route"}`))
		}
	}
}

func TestDetailLoadWithUserFlags(t *testing.T) {
	fake := &detailServer{savedExists: true, appliedExists: false}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	d := NewDetailService(backend.NewClient(srv.URL, "anon"), "j1", "u1", "tok")
	d.Load(context.Background())

	require.Empty(t, d.Error())
	require.NotNil(t, d.Job())
	assert.Equal(t, "Engineer", d.Job().Title)
	require.NotNil(t, d.Job().Companies)
	assert.Equal(t, "Acme", d.Job().Companies.Name)
	assert.True(t, d.IsSaved())
	assert.False(t, d.HasApplied())
	assert.False(t, d.Loading())
}

func TestDetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(noRowBody))
	}))
	defer srv.Close()

	d := NewDetailService(backend.NewClient(srv.URL, "anon"), "nope", "", "")
	d.Load(context.Background())

	assert.Equal(t, "Job not found", d.Error())
	assert.Nil(t, d.Job())
}

func TestTrackViewIdempotent(t *testing.T) {
	fake := &detailServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	d := NewDetailService(backend.NewClient(srv.URL, "anon"), "j1", "u1", "tok")
	d.Load(context.Background())
	require.Empty(t, d.Error())

	d.TrackView(context.Background(), "test-agent")
	d.TrackView(context.Background(), "test-agent")

	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.viewInserts))
}

func TestTrackViewBeforeLoadIsNoop(t *testing.T) {
	fake := &detailServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	d := NewDetailService(backend.NewClient(srv.URL, "anon"), "j1", "u1", "tok")
	d.TrackView(context.Background(), "test-agent")

	assert.Zero(t, atomic.LoadInt32(&fake.viewInserts))
}

func TestToggleSavedOptimisticRollback(t *testing.T) {
	fake := &detailServer{failSaves: true}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	d := NewDetailService(backend.NewClient(srv.URL, "anon"), "j1", "u1", "tok")
	d.Load(context.Background())
	require.Empty(t, d.Error())
	require.False(t, d.IsSaved())

	d.ToggleSaved(context.Background())
	assert.False(t, d.IsSaved(), "failed insert reverts the flag")
}

func TestToggleSavedInsertAndDelete(t *testing.T) {
	fake := &detailServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	d := NewDetailService(backend.NewClient(srv.URL, "anon"), "j1", "u1", "tok")
	d.Load(context.Background())
	require.Empty(t, d.Error())

	d.ToggleSaved(context.Background())
	assert.True(t, d.IsSaved())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.saveInserts))

	d.ToggleSaved(context.Background())
	assert.False(t, d.IsSaved())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.saveDeletes))
}

func TestToggleSavedWithoutUserIsNoop(t *testing.T) {
	fake := &detailServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	d := NewDetailService(backend.NewClient(srv.URL, "anon"), "j1", "", "")
	d.Load(context.Background())

	d.ToggleSaved(context.Background())
	assert.False(t, d.IsSaved())
	assert.Zero(t, atomic.LoadInt32(&fake.saveInserts))
}
