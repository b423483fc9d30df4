package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/skilltree"
	"github.com/aretw0/skilltree/internal/presentation/graph"
	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the subset of the skilltree engine the admin API drives.
type Engine interface {
	Skills() []*domain.Skill
	Skill(id string) (*domain.Skill, error)
	Report(id string) (*domain.Report, bool)
	Reload(ctx context.Context) (skilltree.ReloadReport, error)
	Cast(ctx context.Context, caster domain.Caster, skillID string, level int) (skilltree.CastResult, error)
	FireEvent(ctx context.Context, casterID, name string, subject domain.Entity) int
	Records() ports.SkillRecords
	Catalog() *components.Catalog
}

// CasterLookup resolves a caster ID to the entity casting. The host game
// provides it; without one the cast endpoints answer 501.
type CasterLookup func(id string) (domain.Caster, bool)

// Server serves the admin API.
type Server struct {
	Engine   Engine
	Streams  *StreamManager
	casters  CasterLookup
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithCasters enables the cast and event endpoints.
func WithCasters(lookup CasterLookup) Option {
	return func(s *Server) {
		s.casters = lookup
	}
}

// WithGatherer exposes the registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the server without routing.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes mounts every endpoint on a chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/reload", s.Reload)

	r.Route("/skills", func(r chi.Router) {
		r.Get("/", s.ListSkills)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSkill)
			r.Get("/report", s.GetReport)
			r.Get("/graph", s.GetGraph)
			r.Post("/cast", s.Cast)
		})
	})

	r.Get("/components", s.ListComponents)
	r.Get("/casters/{id}/skills", s.GetCasterSkills)
	r.Post("/casters/{id}/events/{event}", s.FireEvent)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "skilltree-http",
		"version": strings.TrimSpace(skilltree.Version),
		"skills":  len(s.Engine.Skills()),
	})
}

// ListSkills handles the GET /skills request.
func (s *Server) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills := s.Engine.Skills()
	out := make([]SkillSummary, len(skills))
	for i, sk := range skills {
		out[i] = summarize(sk)
	}
	s.writeJSON(w, http.StatusOK, out)
}

// ListComponents handles the GET /components request. The optional
// ?category= query narrows the list to one category.
func (s *Server) ListComponents(w http.ResponseWriter, r *http.Request) {
	var filter domain.Category
	if tag := r.URL.Query().Get("category"); tag != "" {
		cat, err := domain.ParseCategory(tag)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		filter = cat
	}
	out := []ComponentView{}
	for _, spec := range s.Engine.Catalog().Specs() {
		if filter != 0 && spec.Category != filter {
			continue
		}
		out = append(out, ComponentView{
			Category: spec.Category,
			Key:      spec.Key,
			Summary:  spec.Summary,
			Settings: spec.Schema,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) skill(w http.ResponseWriter, r *http.Request) (*domain.Skill, bool) {
	skill, err := s.Engine.Skill(chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrSkillNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return nil, false
	}
	return skill, true
}

// GetSkill handles the GET /skills/{id} request.
func (s *Server) GetSkill(w http.ResponseWriter, r *http.Request) {
	if skill, ok := s.skill(w, r); ok {
		s.writeJSON(w, http.StatusOK, detail(skill))
	}
}

// GetReport handles the GET /skills/{id}/report request. Rejected skills have
// a report too.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, ok := s.Engine.Report(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrSkillNotFound, id))
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "text/markdown") {
		w.Header().Set("Content-Type", "text/markdown")
		fmt.Fprint(w, report.Markdown())
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetGraph handles the GET /skills/{id}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	if skill, ok := s.skill(w, r); ok {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, graph.GenerateMermaid(skill, nil))
	}
}

// Reload handles the POST /reload request and broadcasts the report.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.NotifyReload(report)
	s.writeJSON(w, http.StatusOK, report)
}

// NotifyReload broadcasts a reload report to /events subscribers.
func (s *Server) NotifyReload(report skilltree.ReloadReport) {
	if b, err := json.Marshal(report); err == nil {
		s.Streams.Broadcast(TopicReload, string(b))
	}
}

func (s *Server) caster(w http.ResponseWriter, id string) (domain.Caster, bool) {
	if s.casters == nil {
		s.writeError(w, http.StatusNotImplemented, errors.New("no caster lookup configured"))
		return nil, false
	}
	caster, ok := s.casters(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("caster %q not found", id))
		return nil, false
	}
	return caster, true
}

// Cast handles the POST /skills/{id}/cast request.
func (s *Server) Cast(w http.ResponseWriter, r *http.Request) {
	var body CastRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.Level == 0 {
		body.Level = 1
	}
	caster, ok := s.caster(w, body.CasterID)
	if !ok {
		return
	}

	skillID := chi.URLParam(r, "id")
	res, err := s.Engine.Cast(r.Context(), caster, skillID, body.Level)
	switch {
	case errors.Is(err, domain.ErrSkillNotFound):
		s.writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, domain.ErrInvalidLevel), errors.Is(err, domain.ErrNotActive):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := CastResponse{
		SkillID:          skillID,
		CasterID:         body.CasterID,
		Success:          res.Success,
		Reason:           res.Reason,
		Applied:          res.Applied,
		RemainingSeconds: res.Remaining.Seconds(),
	}
	if b, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(CasterTopic(body.CasterID), string(b))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// FireEvent handles the POST /casters/{id}/events/{event} request.
func (s *Server) FireEvent(w http.ResponseWriter, r *http.Request) {
	var body EventRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}
	casterID := chi.URLParam(r, "id")
	subjectID := body.SubjectID
	if subjectID == "" {
		subjectID = casterID
	}
	subject, ok := s.caster(w, subjectID)
	if !ok {
		return
	}
	fired := s.Engine.FireEvent(r.Context(), casterID, chi.URLParam(r, "event"), subject)
	s.writeJSON(w, http.StatusOK, map[string]int{"fired": fired})
}

// GetCasterSkills handles the GET /casters/{id}/skills request.
func (s *Server) GetCasterSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.Engine.Records().Skills(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if skills == nil {
		skills = map[string]int{}
	}
	s.writeJSON(w, http.StatusOK, skills)
}

// SubscribeEvents handles the GET /events request (SSE).
// Without parameters it streams reload reports; with caster_id it streams
// that caster's cast results.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	topic := TopicReload
	if id := r.URL.Query().Get("caster_id"); id != "" {
		topic = CasterTopic(id)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()
	s.logger.Info("SSE: subscribed", "topic", topic)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
