package main

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"tractive2mqtt/entity"
	"tractive2mqtt/util"

	"github.com/go-chi/chi/v5"
)

type sensorState struct {
	UniqueID  string      `json:"unique_id"`
	Name      string      `json:"name"`
	PetName   string      `json:"pet_name"`
	State     interface{} `json:"state"`
	Available bool        `json:"available"`
}

// StatusServer serves a JSON snapshot of all entity states. Snapshots
// are taken inside the entity observer callback so the server never
// touches entity fields from its own goroutines.
type StatusServer struct {
	mu     sync.Mutex
	states map[string]sensorState
}

func NewStatusServer() *StatusServer {
	return &StatusServer{
		states: make(map[string]sensorState),
	}
}

// Track records the sensor's current state and keeps the snapshot
// updated on every change.
func (srv *StatusServer) Track(s *entity.Sensor) {
	srv.record(s)
	s.OnChange(srv.record)
}

func (srv *StatusServer) record(s *entity.Sensor) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.states[s.UniqueID] = sensorState{
		UniqueID:  s.UniqueID,
		Name:      s.Description.Name,
		PetName:   s.PetName,
		State:     s.State(),
		Available: s.Available(),
	}
}

func (srv *StatusServer) snapshot() []sensorState {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	states := make([]sensorState, 0, len(srv.states))
	for _, state := range srv.states {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].UniqueID < states[j].UniqueID
	})
	return states
}

// Run serves the status endpoints until the context is cancelled.
func (srv *StatusServer) Run(ctx context.Context, addr string) error {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		util.RespondJSON(w, map[string]string{"status": "ok"})
	})
	r.Get("/states", func(w http.ResponseWriter, req *http.Request) {
		util.RespondJSON(w, srv.snapshot())
	})

	server := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx) // nolint:errcheck
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
