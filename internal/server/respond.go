package server

import (
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/player"
	"github.com/matzehuels/stepwise/pkg/store"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps an error to its HTTP status and code.
func statusFor(err error) (int, errs.Code) {
	switch {
	case errors.Is(err, player.ErrBusy):
		return http.StatusConflict, errs.ErrCodeRunInProgress
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errs.ErrCodeTraceNotFound
	}

	code := errs.GetCode(err)
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidSource, errs.ErrCodeInvalidAlgorithm,
		errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidScenario:
		return http.StatusBadRequest, code
	case errs.ErrCodeNotFound, errs.ErrCodeTraceNotFound, errs.ErrCodeScenarioNotFound:
		return http.StatusNotFound, code
	case errs.ErrCodeRunInProgress:
		return http.StatusConflict, code
	case errs.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity, code
	}
	return http.StatusInternalServerError, errs.ErrCodeInternal
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	respondJSON(w, status, errorBody{Code: code, Message: msg})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a bounded JSON body into v. Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
