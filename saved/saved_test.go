package saved

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

const listBody = `[
  {"id":"s1","job_id":"j1","user_id":"u1","saved_at":"2025-03-01T10:00:00Z","jobs":{"id":"j1","title":"Engineer","company":"Acme","description":"","location":"Remote","job_type":"Full-Time","user_id":"owner"}},
  {"id":"s2","job_id":"j2","user_id":"u1","saved_at":"2025-02-01T10:00:00Z","jobs":{"id":"j2","title":"Designer","company":"Beta","description":"","location":"NYC","job_type":"Contract","user_id":"owner"}},
  {"id":"s3","job_id":"j3","user_id":"u1","saved_at":"2025-01-01T10:00:00Z","jobs":null}
]`

type fakeSaved struct {
	deletes    int32
	failDelete bool
}

func (f *fakeSaved) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(listBody))
		case http.MethodDelete:
			if f.failDelete {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"code":"XX000","message":"boom"}`))
				return
			}
			atomic.AddInt32(&f.deletes, 1)
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

func TestLoadDropsOrphanedRows(t *testing.T) {
	srv := httptest.NewServer((&fakeSaved{}).handler())
	defer srv.Close()

	s := NewListService(backend.NewClient(srv.URL, "anon"), "u1", "tok")
	s.Load(context.Background())

	require.Empty(t, s.Error())
	items := s.Items()
	require.Len(t, items, 2, "rows without a job are dropped")
	assert.Equal(t, "j1", items[0].JobID)
	assert.Equal(t, "j2", items[1].JobID)
}

func TestRemoveDeletesRelationAndItem(t *testing.T) {
	fake := &fakeSaved{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s := NewListService(backend.NewClient(srv.URL, "anon"), "u1", "tok")
	s.Load(context.Background())

	s.Remove(context.Background(), "j1")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "j2", items[0].JobID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.deletes))
}

func TestRemoveRollsBackOnFailure(t *testing.T) {
	fake := &fakeSaved{failDelete: true}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s := NewListService(backend.NewClient(srv.URL, "anon"), "u1", "tok")
	s.Load(context.Background())

	s.Remove(context.Background(), "j1")

	items := s.Items()
	require.Len(t, items, 2, "failed delete restores the item")
	assert.Equal(t, "j1", items[0].JobID, "restored at its previous position")
	assert.Equal(t, "j2", items[1].JobID)
}

func TestRemoveUnknownJobIsNoop(t *testing.T) {
	fake := &fakeSaved{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s := NewListService(backend.NewClient(srv.URL, "anon"), "u1", "tok")
	s.Load(context.Background())

	s.Remove(context.Background(), "missing")
	assert.Len(t, s.Items(), 2)
	assert.Zero(t, atomic.LoadInt32(&fake.deletes))
}
