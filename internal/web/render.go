package web

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/ssanyal/graha/internal/errors"
)

// maxBodyBytes caps request bodies; calculation inputs are tiny.
const maxBodyBytes = 64 << 10

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes a structured error envelope. Details are included for
// caller-fault errors only; internal errors stay opaque on the wire.
func renderError(w http.ResponseWriter, err error) {
	var ge *errors.GrahaError
	if !stderrors.As(err, &ge) {
		ge = errors.NewInternal(err)
	}

	errorObj := map[string]any{
		"code":    string(ge.Code),
		"message": ge.Message,
		"status":  ge.Status,
	}
	if ge.Code != errors.ErrInternal && ge.Details != nil {
		errorObj["details"] = ge.Details
	}

	renderJSON(w, ge.Status, map[string]any{"error": errorObj})
}

// decodeBody unmarshals a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.NewValidation("failed to read request body")
	}
	if len(body) == 0 {
		return errors.NewValidation("request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.NewValidationf("invalid JSON body: %v", err)
	}
	return nil
}
