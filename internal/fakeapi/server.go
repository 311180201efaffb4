// Package fakeapi is an in-memory stand-in for the back-office REST API.
//
// It serves the exact endpoint table the console consumes, keeps its state
// in maps guarded by a mutex, records every call it receives and can be
// told to fail or stall specific routes. Tests mount it on httptest; the
// fakeapi command serves it for local development.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Config struct {
	Prefix    string // e.g. /api
	URLPrefix string // public base of uploaded files
}

// Call is one request the fake received, without the API prefix.
type Call struct {
	Method string
	Path   string
	Query  string
}

type Server struct {
	mu         sync.Mutex
	cfg        Config
	logger     logger.ZapLogger
	router     *mux.Router
	products   map[int64]model.Product
	categories map[int64]model.Category
	admins     map[int64]adminRecord
	consumers  map[int64]model.ConsumerUser
	uploads    map[string]upload
	nextID     int64
	calls      []Call
	failures   map[string]int           // route name -> status to answer with
	gates      map[string]chan struct{} // route name -> released when closed
}

type adminRecord struct {
	model.AdminUser
	Password string
}

type upload struct {
	ContentType string
	Data        []byte
}

func New(cfg Config, log logger.ZapLogger) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     log,
		products:   map[int64]model.Product{},
		categories: map[int64]model.Category{},
		admins:     map[int64]adminRecord{},
		consumers:  map[int64]model.ConsumerUser{},
		uploads:    map[string]upload{},
		failures:   map[string]int{},
		gates:      map[string]chan struct{}{},
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Calls returns every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount counts requests to path (prefix stripped), any method.
func (s *Server) CallCount(path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Fail makes the named route answer with status until Recover is called.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Hold stalls the named route until the returned release func is called.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[route] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Server) SeedCategories(cs ...model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cs {
		s.categories[c.ID] = c
		s.bump(c.ID)
	}
}

func (s *Server) SeedProducts(ps ...model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range ps {
		s.products[p.ID] = p
		s.bump(p.ID)
	}
}

func (s *Server) SeedAdmins(us ...model.AdminUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range us {
		s.admins[u.ID] = adminRecord{AdminUser: u}
		s.bump(u.ID)
	}
}

func (s *Server) SeedConsumers(us ...model.ConsumerUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range us {
		s.consumers[u.ID] = u
		s.bump(u.ID)
	}
}

// Product reads the stored product, bypassing HTTP.
func (s *Server) Product(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *Server) Upload(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[key]
	return u.Data, ok
}

func (s *Server) bump(id int64) {
	if id > s.nextID {
		s.nextID = id
	}
}

func (s *Server) newID() int64 {
	s.nextID++
	return s.nextID
}

// middleware records the call, logs it and applies failures and gates.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, s.prefix())
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: path, Query: r.URL.RawQuery})
		status, failing := s.failures[name]
		gate := s.gates[name]
		s.mu.Unlock()

		s.logger.Debug("fakeapi request",
			zap.String("method", r.Method),
			zap.String("path", path),
			zap.String("route", name),
		)

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			respondError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) prefix() string {
	p := strings.TrimRight(s.cfg.Prefix, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func sortedByID[T interface{ EntityID() int64 }](m map[int64]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out
}
