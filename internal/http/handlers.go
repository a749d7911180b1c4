package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"patient-companion/internal/core"
	"patient-companion/internal/llm"
	"patient-companion/pkg"
)

// Server bundles together the dependencies required by the webhook
// handlers. It implements http.Handler so it can be passed to
// http.ListenAndServe.
type Server struct {
	Resolver *core.Resolver
	Intake   *core.Intake
	Gateway  core.Gateway
	Search   llm.Client
	Log      *slog.Logger

	router chi.Router
}

// NewServer constructs a Server and mounts the webhook routes.
func NewServer(resolver *core.Resolver, intake *core.Intake, gw core.Gateway, search llm.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		Resolver: resolver,
		Intake:   intake,
		Gateway:  gw,
		Search:   search,
		Log:      logger,
	}
	r := chi.NewRouter()
	r.Use(s.withRequestID, s.logRequests)
	r.Get("/", s.handleRoot)
	r.Post("/agent/init", s.handleInit)
	r.Post("/agent/take-symptom", s.handleTakeSymptom)
	r.Get("/agent/get-symptom", s.handleGetSymptom)
	r.Post("/agent/take-temperature", s.handleTakeTemperature)
	r.Post("/agent/schedule-appointment", s.handleScheduleAppointment)
	r.Post("/agent/update-name", s.handleUpdateName)
	r.Post("/agent/search", s.handleSearch)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// fail flattens every error into the uniform failure payload. Validation
// failures map to 400, everything else to 500; the cause is logged, never
// returned to the agent.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.Log.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestID(r.Context()),
		"error", err,
	)
	code := http.StatusInternalServerError
	if errors.Is(err, core.ErrValidation) {
		code = http.StatusBadRequest
	}
	writeJSON(w, code, pkg.StatusResponse{Status: "error"})
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(core.ErrValidation, err)
	}
	return nil
}

// handleRoot is a health probe; it mirrors the empty-object response the
// agent platform expects from the base URL.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{})
}

// handleInit resolves the caller and returns the personalization variables
// plus the opening message the agent should speak.
func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req pkg.InitRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	identity, err := s.Resolver.Resolve(ctx, req.CallerID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var lastSymptom string
	if !identity.IsNew {
		report, err := s.Gateway.LatestSymptom(ctx, identity.PhoneNumber)
		switch {
		case err == nil:
			lastSymptom = report.Symptom
		case errors.Is(err, core.ErrNotFound):
			// returning caller with no reports; greet by name only
		default:
			s.fail(w, r, err)
			return
		}
	}
	greeting := core.ComposeGreeting(identity, lastSymptom)
	writeJSON(w, http.StatusOK, pkg.InitResponse{
		DynamicVariables: map[string]string{
			"name":         identity.Name,
			"phone_number": identity.PhoneNumber,
		},
		ConfigOverride: &pkg.ConversationOverride{
			Agent: pkg.AgentOverride{FirstMessage: greeting},
		},
	})
}

// handleTakeSymptom records a reported symptom and relays the escalation
// advisory when the recurrence rule fired.
func (s *Server) handleTakeSymptom(w http.ResponseWriter, r *http.Request) {
	var req pkg.SymptomRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := s.Intake.RecordSymptom(r.Context(), req.Symptom, req.CallerID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg.StatusResponse{Status: "success", Advisory: result.Advisory})
}

// handleGetSymptom returns the most recent note, scoped to a caller when
// the caller_id query parameter is present.
func (s *Server) handleGetSymptom(w http.ResponseWriter, r *http.Request) {
	report, err := s.Gateway.LatestSymptom(r.Context(), r.URL.Query().Get("caller_id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, pkg.NoteResponse{Note: report.Symptom})
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusOK, pkg.NoteResponse{Note: core.NoSymptomOnFile})
	default:
		s.fail(w, r, err)
	}
}

func (s *Server) handleTakeTemperature(w http.ResponseWriter, r *http.Request) {
	var req pkg.TemperatureRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Intake.RecordTemperature(r.Context(), req.Temperature, req.CallerID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg.StatusResponse{Status: "success"})
}

func (s *Server) handleScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req pkg.AppointmentRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Intake.ScheduleAppointment(r.Context(), req.Note, req.CallerID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg.StatusResponse{Status: "success"})
}

func (s *Server) handleUpdateName(w http.ResponseWriter, r *http.Request) {
	var req pkg.NameRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Resolver.UpdateName(r.Context(), req.CallerID, req.Name); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg.StatusResponse{Status: "success"})
}

// handleSearch relays a free-text question to the completion service and
// returns its answer verbatim.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req pkg.SearchRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	answer, err := s.Search.Answer(r.Context(), req.SearchQuery)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg.SearchResponse{Result: answer})
}
