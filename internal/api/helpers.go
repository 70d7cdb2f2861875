package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/vytor/mathverse/internal/errors"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/schema"
)

const maxBodyBytes = 1 << 20

// readJSON validates the body against the named schema and decodes it into v.
func readJSON(w http.ResponseWriter, r *http.Request, schemaName string, v any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.NewBadRequestError("request body too large")
		}
		return errors.NewBadRequestError("could not read request body")
	}
	if len(raw) == 0 {
		return errors.NewBadRequestError("request body is empty")
	}
	if err := schema.Validate(schemaName, raw); err != nil {
		if stderrors.Is(err, schema.ErrInvalid) {
			return errors.NewValidationError("body", err.Error())
		}
		return errors.NewInternalError(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// queryInt returns the integer query parameter, or 0 when missing or malformed.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
