// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/stupnd/trippy-sub001/internal/app"
	"github.com/stupnd/trippy-sub001/internal/domain"
)

type Handlers struct {
	Recs      *app.RecommendationService
	Decisions *app.DecisionService
	Budget    *app.BudgetService
}

var validate = validator.New()

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/trips/{id}/constraints", h.getConstraints)
	s.mux.Get("/v1/trips/{id}/recommendations/flights", h.getFlightRecs)
	s.mux.Get("/v1/trips/{id}/recommendations/lodging", h.getLodgingRecs)
	s.mux.Put("/v1/trips/{id}/members/{member}/preferences", h.putPreference)
	s.mux.Post("/v1/trips/{id}/selections/{selection}/votes", h.castVote)
	s.mux.Get("/v1/trips/{id}/selections/{selection}", h.getSelection)
	s.mux.Post("/v1/trips/{id}/activities/{activity}/ratings", h.rateActivity)
	s.mux.Post("/v1/trips/{id}/activities/validate", h.validateActivities)
	s.mux.Post("/v1/trips/{id}/budget/refresh", h.refreshBudget)
	s.mux.Get("/v1/trips/{id}/budget", h.getBudget)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the core error taxonomy onto HTTP statuses: invalid
// input -> 400, missing -> 404, malformed upstream -> 502, rest -> 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrUpstreamMalformed):
		writeProblem(w, http.StatusBadGateway, "Upstream Malformed", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("body", "malformed JSON")
	}
	if err := validate.Struct(dst); err != nil {
		return domain.Invalid("body", err.Error())
	}
	return nil
}

// ---- recommendations ----

func (h *Handlers) getConstraints(w http.ResponseWriter, r *http.Request) {
	gc, err := h.Recs.Constraints(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONWithETag(w, r, gc)
}

func (h *Handlers) getFlightRecs(w http.ResponseWriter, r *http.Request) {
	out, err := h.Recs.FlightRecommendations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONWithETag(w, r, out)
}

func (h *Handlers) getLodgingRecs(w http.ResponseWriter, r *http.Request) {
	out, err := h.Recs.LodgingRecommendations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONWithETag(w, r, out)
}

type preferenceRequest struct {
	Origin            *string  `json:"origin"`
	NightlyBudgetMin  *float64 `json:"nightly_budget_min" validate:"omitempty,gte=0"`
	NightlyBudgetMax  *float64 `json:"nightly_budget_max" validate:"omitempty,gte=0"`
	LodgingType       *string  `json:"lodging_type"`
	Interests         []string `json:"interests" validate:"max=30,dive,min=1,max=64"`
	FlightFlexibility string   `json:"flight_flexibility" validate:"omitempty,oneof=low medium high"`
	BudgetSensitivity string   `json:"budget_sensitivity" validate:"omitempty,oneof=low medium high"`
}

func (h *Handlers) putPreference(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := domain.MemberPreference{
		TripID:            chi.URLParam(r, "id"),
		MemberID:          chi.URLParam(r, "member"),
		Origin:            req.Origin,
		NightlyBudgetMin:  req.NightlyBudgetMin,
		NightlyBudgetMax:  req.NightlyBudgetMax,
		LodgingType:       req.LodgingType,
		Interests:         req.Interests,
		FlightFlexibility: req.FlightFlexibility,
		BudgetSensitivity: req.BudgetSensitivity,
	}
	if err := h.Recs.PutPreference(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- consensus ----

type voteRequest struct {
	MemberID string  `json:"member_id" validate:"required"`
	Approved *bool   `json:"approved" validate:"required"`
	Reason   *string `json:"reason"`
}

func (h *Handlers) castVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.Decisions.CastVote(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "selection"),
		req.MemberID, *req.Approved, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) getSelection(w http.ResponseWriter, r *http.Request) {
	view, err := h.Decisions.GetSelection(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "selection"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type ratingRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

func (h *Handlers) rateActivity(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sum, err := h.Decisions.RateActivity(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "activity"), req.MemberID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handlers) validateActivities(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Decisions.ValidateActivities(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ---- budget ----

func (h *Handlers) refreshBudget(w http.ResponseWriter, r *http.Request) {
	est, err := h.Budget.Refresh(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (h *Handlers) getBudget(w http.ResponseWriter, r *http.Request) {
	est, err := h.Budget.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}
