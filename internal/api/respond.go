package api

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/validation"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Error *apperrors.StandardError `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := apperrors.AsStandardError(err)
	status := apperrors.HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"code":   string(stdErr.Code),
		"status": status,
	}
	if status >= http.StatusInternalServerError {
		fields["error"] = err
		h.logger.Error("request failed", fields)
	} else {
		h.logger.Debug("request rejected", fields)
	}

	writeJSON(w, status, errorBody{Error: stdErr})
}

// decode validates the body against schema and unmarshals it into dst.
func decode(r *http.Request, schema *validation.Schema, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return apperrors.NewInvalidRequestError("could not read request body")
	}
	if len(body) > maxBodyBytes {
		return apperrors.NewInvalidRequestError("request body too large")
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	if err := schema.ValidateBytes(body).Err(); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	return nil
}
