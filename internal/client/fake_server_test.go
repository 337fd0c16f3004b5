package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/planner-sync/models"
)

const testSecretKey = "ABCDEFGH"

type storedDocument struct {
	data     models.Snapshot
	version  int64
	lastSync time.Time
}

// fakeSyncServer speaks the sync wire protocol over an in-memory map.
type fakeSyncServer struct {
	*httptest.Server

	mu     sync.Mutex
	docs   map[string]storedDocument
	pushes int
}

func newFakeSyncServer(t *testing.T) *fakeSyncServer {
	t.Helper()

	s := &fakeSyncServer{docs: make(map[string]storedDocument)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Database: "connected", Timestamp: time.Now().UTC()})
	})
	mux.HandleFunc("GET /sync/data", s.withKey(func(w http.ResponseWriter, _ *http.Request, key string) {
		doc, ok := s.document(key)
		if !ok {
			writeJSON(w, http.StatusOK, models.DataResponse{Exists: false, Message: "No data on server"})
			return
		}
		writeJSON(w, http.StatusOK, models.DataResponse{Exists: true, Data: doc.data, Version: doc.version, LastSync: &doc.lastSync})
	}))
	mux.HandleFunc("POST /sync/push", s.withKey(func(w http.ResponseWriter, r *http.Request, key string) {
		var req models.PushRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid body"})
			return
		}

		s.mu.Lock()
		doc := s.docs[key]
		doc.data = req.Data
		doc.version++
		doc.lastSync = time.Now().UTC()
		s.docs[key] = doc
		s.pushes++
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, models.PushResponse{Success: true, Version: doc.version, LastSync: doc.lastSync})
	}))
	mux.HandleFunc("POST /sync/pull", s.withKey(func(w http.ResponseWriter, r *http.Request, key string) {
		var req models.PullRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		doc, ok := s.document(key)
		if !ok {
			writeJSON(w, http.StatusOK, models.PullResponse{Exists: false, Message: "No data on server"})
			return
		}
		writeJSON(w, http.StatusOK, models.PullResponse{
			Exists:      true,
			Data:        doc.data,
			Version:     doc.version,
			LastSync:    &doc.lastSync,
			HasConflict: req.ClientVersion < doc.version,
		})
	}))
	mux.HandleFunc("DELETE /sync/data", s.withKey(func(w http.ResponseWriter, _ *http.Request, key string) {
		s.mu.Lock()
		delete(s.docs, key)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, models.DeleteResponse{Success: true, Message: "Data deleted"})
	}))

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

func (s *fakeSyncServer) withKey(next func(w http.ResponseWriter, r *http.Request, key string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-secret-key")
		if len(key) < 8 {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or missing secret key"})
			return
		}
		next(w, r, key)
	}
}

func (s *fakeSyncServer) document(key string) (storedDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	return doc, ok
}

func (s *fakeSyncServer) pushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushes
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
