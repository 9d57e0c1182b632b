package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// BirthRequest carries the birth arguments shared by chart-bearing tools.
type BirthRequest struct {
	BirthTime string   `json:"birth_datetime"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Ayanamsa  string   `json:"ayanamsa,omitempty"`
}

func (r BirthRequest) toInput() ops.BirthInput {
	return ops.BirthInput{
		BirthTime: r.BirthTime,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Ayanamsa:  r.Ayanamsa,
	}
}

// NumerologyRequest represents the arguments for graha_numerology.
type NumerologyRequest struct {
	BirthRequest
	SkipSunriseCorrection bool `json:"skip_sunrise_correction,omitempty"`
	Save                  bool `json:"save,omitempty"`
}

// ChartRequest represents the arguments for graha_chart.
type ChartRequest struct {
	BirthRequest
	HouseSystem string `json:"house_system,omitempty"`
	Save        bool   `json:"save,omitempty"`
}

// DignityRequest represents the arguments for graha_dignity.
type DignityRequest struct {
	BirthRequest
	Planet string `json:"planet,omitempty"`
	Save   bool   `json:"save,omitempty"`
}

// AnalyzeRequest represents the arguments for graha_analyze.
type AnalyzeRequest struct {
	BirthRequest
	SkipSunriseCorrection bool `json:"skip_sunrise_correction,omitempty"`
	NoSave                bool `json:"no_save,omitempty"`
}

// TemporalRequest represents the arguments for graha_temporal.
type TemporalRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Ayanamsa  string   `json:"ayanamsa,omitempty"`
	NoSave    bool     `json:"no_save,omitempty"`
}

// HistoryRequest represents the arguments for graha_history.
type HistoryRequest struct {
	Kind   string `json:"kind,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// FetchRequest represents the arguments for graha_fetch.
type FetchRequest struct {
	ID     string `json:"id"`
	Planet string `json:"planet,omitempty"`
}

// DeleteRequest represents the arguments for graha_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// Handler implementations

// HandleNumerology handles the graha_numerology tool call.
func (h *Handlers) HandleNumerology(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NumerologyRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Numerology(ctx, h.db, h.cfg, ops.NumerologyInput{
		BirthInput:            input.toInput(),
		SkipSunriseCorrection: input.SkipSunriseCorrection,
		Save:                  input.Save,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleChart handles the graha_chart tool call.
func (h *Handlers) HandleChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ChartRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Chart(ctx, h.db, h.cfg, ops.ChartInput{
		BirthInput:  input.toInput(),
		HouseSystem: input.HouseSystem,
		Save:        input.Save,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDignity handles the graha_dignity tool call.
func (h *Handlers) HandleDignity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DignityRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Dignity(ctx, h.db, h.cfg, ops.DignityInput{
		BirthInput: input.toInput(),
		Planet:     input.Planet,
		Save:       input.Save,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleAnalyze handles the graha_analyze tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnalyzeRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Analyze(ctx, h.db, h.cfg, ops.AnalyzeInput{
		BirthInput:            input.toInput(),
		SkipSunriseCorrection: input.SkipSunriseCorrection,
		NoSave:                input.NoSave,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTemporal handles the graha_temporal tool call.
func (h *Handlers) HandleTemporal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemporalRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Temporal(ctx, h.db, h.cfg, ops.TemporalInput{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Ayanamsa:  input.Ayanamsa,
		NoSave:    input.NoSave,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistory handles the graha_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.History(ctx, h.db, h.cfg, ops.HistoryInput{
		Kind:   input.Kind,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the graha_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, h.cfg, ops.FetchInput{
		ID:     input.ID,
		Planet: input.Planet,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the graha_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, h.cfg, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if ge, ok := err.(*errors.GrahaError); ok {
		errorObj := map[string]any{
			"code":    ge.Code,
			"message": ge.Message,
			"status":  ge.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if ge.Code != errors.ErrInternal && ge.Details != nil {
			errorObj["details"] = ge.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
