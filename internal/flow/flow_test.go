package flow

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/session"
)

const (
	testWait = 2 * time.Second
	testTick = 10 * time.Millisecond
)

// newTestClient builds an API client against an httptest server with a
// memory-only session store.
func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{
			URL:     srv.URL,
			AnonKey: "anon-key",
			Timeout: "5s",
		},
	}
	return api.New(cfg, session.NewStore(nil))
}

// jsonHandler answers every request with the given status and body.
func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	})
}

// recordStates attaches an observer collecting every phase transition.
func recordStates(f interface{ Observe(func(State)) }) *[]Phase {
	var phases []Phase
	f.Observe(func(s State) { phases = append(phases, s.Phase) })
	return &phases
}
