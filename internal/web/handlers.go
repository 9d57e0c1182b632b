package web

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/ops"
	"github.com/ssanyal/graha/internal/vedic"
)

// Handlers contains HTTP route handlers for the JSON API.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	version string
}

// birthBody is the JSON body shared by the calculation endpoints.
// Coordinates and ayanamsa default from the config when omitted.
type birthBody struct {
	BirthTime             string   `json:"birth_datetime"`
	Latitude              *float64 `json:"latitude,omitempty"`
	Longitude             *float64 `json:"longitude,omitempty"`
	Ayanamsa              string   `json:"ayanamsa,omitempty"`
	HouseSystem           string   `json:"house_system,omitempty"`
	Planet                string   `json:"planet,omitempty"`
	SkipSunriseCorrection bool     `json:"skip_sunrise_correction,omitempty"`
	Save                  bool     `json:"save,omitempty"`
	NoSave                bool     `json:"no_save,omitempty"`
}

func (b birthBody) toInput() ops.BirthInput {
	return ops.BirthInput{
		BirthTime: b.BirthTime,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		Ayanamsa:  b.Ayanamsa,
	}
}

// temporalBody is the JSON body for the temporal endpoint.
type temporalBody struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Ayanamsa  string   `json:"ayanamsa,omitempty"`
	NoSave    bool     `json:"no_save,omitempty"`
}

// HandleIndex handles GET / with API information.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{
		"name":    "Graha API",
		"version": h.version,
		"endpoints": map[string]string{
			"health":     "GET /api/v1/health",
			"planets":    "GET /api/v1/planets",
			"numerology": "POST /api/v1/numerology",
			"astrology":  "POST /api/v1/astrology",
			"dignity":    "POST /api/v1/dignity",
			"analysis":   "POST /api/v1/analysis",
			"temporal":   "POST /api/v1/temporal",
			"records":    "GET /api/v1/records",
			"record":     "GET /api/v1/records/{id}",
			"report":     "GET /reports/{id}",
		},
	})
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	renderJSON(w, code, map[string]any{
		"status":    status,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandlePlanets handles GET /api/v1/planets — static graha reference data.
func (h *Handlers) HandlePlanets(w http.ResponseWriter, r *http.Request) {
	planets := make(map[string]any, len(vedic.Planets))
	for _, p := range vedic.Planets {
		info := map[string]any{
			"sanskrit": p.Sanskrit(),
			"symbol":   p.Symbol(),
		}
		if n, err := vedic.NumberForPlanet(p); err == nil {
			info["number"] = n
			if q, err := vedic.NumberQualities(n); err == nil {
				info["qualities"] = q
			}
		}
		planets[p.String()] = info
	}
	renderJSON(w, http.StatusOK, map[string]any{
		"planets": planets,
		"total":   len(planets),
	})
}

// HandleNumerology handles POST /api/v1/numerology.
func (h *Handlers) HandleNumerology(w http.ResponseWriter, r *http.Request) {
	var body birthBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.Numerology(r.Context(), h.db, h.cfg, ops.NumerologyInput{
		BirthInput:            body.toInput(),
		SkipSunriseCorrection: body.SkipSunriseCorrection,
		Save:                  body.Save,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAstrology handles POST /api/v1/astrology — the full sidereal chart.
func (h *Handlers) HandleAstrology(w http.ResponseWriter, r *http.Request) {
	var body birthBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.Chart(r.Context(), h.db, h.cfg, ops.ChartInput{
		BirthInput:  body.toInput(),
		HouseSystem: body.HouseSystem,
		Save:        body.Save,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleDignity handles POST /api/v1/dignity.
func (h *Handlers) HandleDignity(w http.ResponseWriter, r *http.Request) {
	var body birthBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.Dignity(r.Context(), h.db, h.cfg, ops.DignityInput{
		BirthInput: body.toInput(),
		Planet:     body.Planet,
		Save:       body.Save,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAnalysis handles POST /api/v1/analysis — the complete reading.
func (h *Handlers) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	var body birthBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.Analyze(r.Context(), h.db, h.cfg, ops.AnalyzeInput{
		BirthInput:            body.toInput(),
		SkipSunriseCorrection: body.SkipSunriseCorrection,
		NoSave:                body.NoSave,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleTemporal handles POST /api/v1/temporal.
func (h *Handlers) HandleTemporal(w http.ResponseWriter, r *http.Request) {
	var body temporalBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.Temporal(r.Context(), h.db, h.cfg, ops.TemporalInput{
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
		Ayanamsa:  body.Ayanamsa,
		NoSave:    body.NoSave,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleHistory handles GET /api/v1/records — list stored readings and runs.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	result, err := ops.History(r.Context(), h.db, h.cfg, ops.HistoryInput{
		Kind:   r.URL.Query().Get("kind"),
		Limit:  parseIntParam(r, "limit", 0),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleFetch handles GET /api/v1/records/{id}.
func (h *Handlers) HandleFetch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		renderError(w, errors.NewValidation("record ID is required"))
		return
	}

	result, err := ops.Fetch(r.Context(), h.db, h.cfg, ops.FetchInput{
		ID:     id,
		Planet: r.URL.Query().Get("planet"),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleDelete handles DELETE /api/v1/records/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		renderError(w, errors.NewValidation("record ID is required"))
		return
	}

	result, err := ops.Delete(r.Context(), h.db, h.cfg, ops.DeleteInput{ID: id})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleReport handles GET /reports/{id} — an HTML report for a stored analysis.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		renderError(w, errors.NewValidation("record ID is required"))
		return
	}

	result, err := ops.Report(r.Context(), h.db, h.cfg, ops.ReportInput{
		ID:   id,
		HTML: true,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, reportShell, result.HTML)
}

// reportShell wraps the rendered report body in a minimal standalone page.
const reportShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Graha Report</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #999; padding: 0.3rem 0.7rem; text-align: left; }
th { background: #f0ece2; }
</style>
</head>
<body>
%s
</body>
</html>
`

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
