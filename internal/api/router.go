package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/havenwell/Haven/internal/middleware"
	"github.com/havenwell/Haven/internal/scoring"
	"github.com/havenwell/Haven/internal/services"
)

// Router wires the HTTP surface to the service layer. All handlers share one
// Store and one instrument registry.
type Router struct {
	store        Store
	registry     *scoring.Registry
	assessments  *services.AssessmentService
	batteries    *services.BatteryService
	templates    *services.TemplateService
	insights     *services.InsightService
	exports      *services.ExportService
	participants *services.ParticipantDataService
	auth         *services.AuthService
}

func NewRouter(store Store) *Router {
	registry := scoring.NewRegistry()
	return &Router{
		store:        store,
		registry:     registry,
		assessments:  services.NewAssessmentService(store, registry),
		batteries:    services.NewBatteryService(store, registry),
		templates:    services.NewTemplateService(store, registry),
		insights:     services.NewInsightService(store, registry),
		exports:      services.NewExportService(store, registry),
		participants: services.NewParticipantDataService(store),
		auth:         services.NewAuthService(store, middleware.SignToken),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleAuthRegister)            // POST
	mux.HandleFunc("/api/auth/login", rt.handleAuthLogin)                  // POST
	mux.HandleFunc("/api/assessments/battery", rt.handleBattery)           // POST
	mux.HandleFunc("/api/assessments/", rt.handleAssessmentScoped)         // POST /api/assessments/{type}/score
	mux.HandleFunc("/api/templates", rt.handleTemplates)                   // GET, POST
	mux.HandleFunc("/api/templates/", rt.handleTemplateScoped)             // GET, PUT, DELETE /api/templates/{id}
	mux.HandleFunc("/api/history", rt.handleHistory)                       // GET
	mux.HandleFunc("/api/insights", rt.handleInsights)                     // GET
	mux.HandleFunc("/api/export", rt.handleExport)                         // GET
	mux.HandleFunc("/api/participants/export", rt.handleParticipantExport) // GET
	mux.HandleFunc("/api/participants", rt.handleParticipantDelete)        // DELETE
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service error codes to HTTP statuses. Everything
// unrecognized is a 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorTooManyRequests:
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, map[string]any{"error": se.Code, "message": se.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal", "message": "internal error"})
}

// POST /api/auth/register
func (rt *Router) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		TenantName string `json:"tenant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.TenantName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "tenant_id": res.TenantID, "user_id": res.UserID})
}

// POST /api/auth/login
func (rt *Router) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "tenant_id": res.TenantID, "user_id": res.UserID})
}

// POST /api/assessments/{type}/score
// { participant_id?: string, participant_email?: string, responses: {...} }
func (rt *Router) handleAssessmentScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "score" || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ParticipantID    string              `json:"participant_id"`
		ParticipantEmail string              `json:"participant_email"`
		Responses        scoring.ResponseMap `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.assessments.Submit(services.SubmitRequest{
		Instrument:       parts[0],
		ParticipantID:    req.ParticipantID,
		ParticipantEmail: req.ParticipantEmail,
		Responses:        req.Responses,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"submission_id":  res.SubmissionID,
		"participant_id": res.ParticipantID,
		"result":         res.Result,
	})
}

// POST /api/assessments/battery
// { instruments?: [...], participant_id?: string, responses: {...} }
func (rt *Router) handleBattery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Instruments      []string            `json:"instruments"`
		ParticipantID    string              `json:"participant_id"`
		ParticipantEmail string              `json:"participant_email"`
		Responses        scoring.ResponseMap `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.batteries.Submit(services.BatteryRequest{
		Instruments:      req.Instruments,
		ParticipantID:    req.ParticipantID,
		ParticipantEmail: req.ParticipantEmail,
		Responses:        req.Responses,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"participant_id": res.ParticipantID,
		"results":        res.Results,
	})
}

// GET /api/templates lists the catalog; POST creates a custom one (auth).
func (rt *Router) handleTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// Tenant customs show up only for authenticated callers.
		tid, _ := middleware.TenantIDFromContext(r.Context())
		catalog, err := rt.templates.Catalog(tid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"templates": catalog})
	case http.MethodPost:
		tid, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var def scoring.Template
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ct, err := rt.templates.Create(tid, &def)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ct)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/templates/{id} serves the full definition for the client-side
// scorer.
// PUT/DELETE manage a tenant's custom templates.
func (rt *Router) handleTemplateScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		tpl, err := rt.templates.Fetch(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tpl)
	case http.MethodPut:
		tid, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var def scoring.Template
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ct, err := rt.templates.Update(tid, id, &def)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ct)
	case http.MethodDelete:
		tid, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := rt.templates.Delete(tid, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/history?participant_id=...
func (rt *Router) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	subs, err := rt.assessments.History(r.URL.Query().Get("participant_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

// GET /api/insights?type=... (auth)
func (rt *Router) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := middleware.TenantIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	sum, err := rt.insights.Summary(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GET /api/export?type=...&format=long|wide (auth)
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	res, err := rt.exports.ExportCSV(services.ExportParams{
		Instrument: r.URL.Query().Get("type"),
		Format:     r.URL.Query().Get("format"),
		Actor:      uid,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+res.Filename)
	_, _ = w.Write(res.Data)
}

// GET /api/participants/export?email=... (auth)
func (rt *Router) handleParticipantExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	exp, err := rt.participants.ExportByEmail(r.URL.Query().Get("email"), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// DELETE /api/participants?email=...&hard=true|false (auth)
func (rt *Router) handleParticipantDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	hard := r.URL.Query().Get("hard") == "true"
	if err := rt.participants.DeleteByEmail(r.URL.Query().Get("email"), hard, uid); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "hard": hard})
}
