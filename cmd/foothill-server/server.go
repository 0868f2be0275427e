package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"foothill-backend/lib/scrapers/foothill"
	"foothill-backend/services/rmp"
	"foothill-backend/services/schedule"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router  chi.Router
	service schedule.Service
	store   schedule.Store
	ratings *rmp.Client
}

// NewServer wires the HTTP API. ratings may be nil, in which case the
// include_ratings query parameter is ignored.
func NewServer(service schedule.Service, store schedule.Store, ratings *rmp.Client) *Server {
	s := &Server{
		service: service,
		store:   store,
		ratings: ratings,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", s.handleHealth)
	r.Post("/api/sync", s.handleSync)
	r.Get("/api/suggest", s.handleSuggest)

	s.router = r
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJson(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

type syncRequest struct {
	Quarter string `json:"quarter"`
	Dept    string `json:"dept"`
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	count, err := s.service.Sync(r.Context(), foothill.FetchOptions{
		Quarter: req.Quarter,
		Dept:    req.Dept,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]int{"classes": count})
}

type suggestionWithRatings struct {
	schedule.Suggestion
	Rmp *rmp.Teacher `json:"rmp,omitempty"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	suggestions, err := s.store.Suggest(r.Context(), schedule.SuggestRequest{
		Query:      q.Get("query"),
		Subject:    q.Get("subject"),
		Course:     q.Get("course"),
		Title:      q.Get("title"),
		Instructor: q.Get("instructor"),
		DaysTime:   q.Get("time"),
		Room:       q.Get("room"),
		Modality:   q.Get("modality"),
		Limit:      limit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]suggestionWithRatings, len(suggestions))
	for i, sug := range suggestions {
		out[i] = suggestionWithRatings{Suggestion: sug}
	}

	if s.ratings != nil && q.Get("include_ratings") == "true" {
		s.attachRatings(r, out)
	}

	writeJson(w, http.StatusOK, out)
}

// attachRatings decorates suggestions with professor ratings, looking
// each distinct instructor up once. Lookup failures leave the suggestion
// bare, they never fail the request.
func (s *Server) attachRatings(r *http.Request, suggestions []suggestionWithRatings) {
	cache := map[string]*rmp.Teacher{}
	for i, sug := range suggestions {
		name := sug.Instructor
		if name == "" {
			continue
		}
		teacher, cached := cache[name]
		if !cached {
			found, ok, err := s.ratings.Lookup(r.Context(), name)
			if err != nil {
				slog.WarnContext(r.Context(), "ratings lookup failed", "instructor", name, "err", err)
				cache[name] = nil
				continue
			}
			if ok {
				teacher = &found
			}
			cache[name] = teacher
		}
		suggestions[i].Rmp = teacher
	}
}
