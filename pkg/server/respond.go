package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	hperrors "github.com/matzehuels/holepunch/pkg/errors"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func errorBody(code, msg string) errorResponse {
	return errorResponse{Error: errorPayload{Code: code, Message: msg}}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499
	}
	switch hperrors.GetCode(err) {
	case hperrors.ErrCodeInvalidInput, hperrors.ErrCodeInvalidFormat,
		hperrors.ErrCodeInvalidNotation, hperrors.ErrCodeInvalidPath,
		hperrors.ErrCodeInvalidCatalog:
		return http.StatusBadRequest
	case hperrors.ErrCodeDomain, hperrors.ErrCodeInvalidFold, hperrors.ErrCodeIndexOutOfRange:
		return http.StatusUnprocessableEntity
	case hperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case hperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(hperrors.GetCode(err))
	msg := describe(err)
	if code == "" {
		code = string(hperrors.ErrCodeInternal)
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody(code, msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return hperrors.New(hperrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooBig.Limit)
		}
		return hperrors.New(hperrors.ErrCodeInvalidFormat, "decode request: %v", err)
	}
	return nil
}

// describe joins the messages along an error chain without the codes.
func describe(err error) string {
	var e *hperrors.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + describe(e.Cause)
}
