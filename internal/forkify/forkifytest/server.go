// Package forkifytest provides an in-memory Forkify API for tests.
package forkifytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/five82/forkify/internal/forkify"
)

const basePath = "/api/v2/recipes"

// Server serves search, lookup and upload the way the public API does.
// User recipes are only returned to requests carrying their key.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	recipes  map[string]forkify.RecipeDTO
	nextID   int
	requests atomic.Int64
}

// NewServer starts a server seeded with recipes and closes it when the
// test ends.
func NewServer(t testing.TB, recipes ...forkify.RecipeDTO) *Server {
	t.Helper()
	s := &Server{recipes: make(map[string]forkify.RecipeDTO)}
	for _, r := range recipes {
		s.Add(r)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the recipes endpoint to configure the client with.
func (s *Server) BaseURL() string {
	return s.URL + basePath
}

// Add stores r, assigning an id when it has none.
func (s *Server) Add(r forkify.RecipeDTO) forkify.RecipeDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		s.nextID++
		r.ID = fmt.Sprintf("user-%d", s.nextID)
	}
	s.recipes[r.ID] = r
	return r
}

// Requests returns how many requests the server has handled.
func (s *Server) Requests() int {
	return int(s.requests.Load())
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	if !strings.HasPrefix(r.URL.Path, basePath) {
		writeFail(w, http.StatusNotFound, "not found")
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, basePath), "/")
	key := r.URL.Query().Get("key")

	switch {
	case r.Method == http.MethodGet && id == "":
		s.search(w, r.URL.Query().Get("search"), key)
	case r.Method == http.MethodGet:
		s.lookup(w, id, key)
	case r.Method == http.MethodPost && id == "":
		s.create(w, r, key)
	default:
		writeFail(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) search(w http.ResponseWriter, query, key string) {
	query = strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	var out []forkify.SummaryDTO
	for _, r := range s.recipes {
		if !visible(r, key) || !matches(r, query) {
			continue
		}
		out = append(out, forkify.SummaryDTO{
			ID:        r.ID,
			Title:     r.Title,
			Publisher: r.Publisher,
			ImageURL:  r.ImageURL,
			Key:       r.Key,
		})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []forkify.SummaryDTO{}
	}
	writeSuccess(w, http.StatusOK, len(out), map[string]any{"recipes": out})
}

func (s *Server) lookup(w http.ResponseWriter, id, key string) {
	s.mu.Lock()
	r, ok := s.recipes[id]
	s.mu.Unlock()
	if !ok || !visible(r, key) {
		writeFail(w, http.StatusBadRequest, "Invalid _id: "+id)
		return
	}
	writeSuccess(w, http.StatusOK, 0, map[string]any{"recipe": r})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, key string) {
	if key == "" {
		writeFail(w, http.StatusUnauthorized, "Please provide an API key")
		return
	}
	var in forkify.RecipeDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	in.ID = ""
	in.Key = key
	stored := s.Add(in)
	writeSuccess(w, http.StatusCreated, 0, map[string]any{"recipe": stored})
}

func visible(r forkify.RecipeDTO, key string) bool {
	return r.Key == "" || r.Key == key
}

func matches(r forkify.RecipeDTO, query string) bool {
	if query == "" {
		return false
	}
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Description), query) {
			return true
		}
	}
	return false
}

func writeSuccess(w http.ResponseWriter, status, results int, data any) {
	raw, _ := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(forkify.Envelope{Status: "success", Results: results, Data: raw})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(forkify.Envelope{Status: "fail", Message: message})
}
