package helpers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCluster struct {
	mu      sync.Mutex
	exists  bool
	created string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	switch r.Method {
	case http.MethodHead:
		if f.exists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.created = string(b)
		f.exists = true
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestNewESClientRequiresAddrs(t *testing.T) {
	_, err := NewESClient(ESOptions{})
	require.Error(t, err)
}

func TestEnsureUsersIndexCreatesMissingIndex(t *testing.T) {
	cluster := &fakeCluster{}
	srv := httptest.NewServer(cluster)
	defer srv.Close()

	es, err := NewESClient(ESOptions{Addrs: []string{srv.URL}})
	require.NoError(t, err)

	require.NoError(t, EnsureUsersIndex(context.Background(), es, "users"))
	assert.True(t, cluster.exists)
	assert.Contains(t, cluster.created, `"userName"`)

	cluster.created = ""
	require.NoError(t, EnsureUsersIndex(context.Background(), es, "users"))
	assert.Empty(t, cluster.created)
}

func TestEnsureUsersIndexUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	es, err := NewESClient(ESOptions{Addrs: []string{url}})
	require.NoError(t, err)
	require.Error(t, EnsureUsersIndex(context.Background(), es, "users"))
}
