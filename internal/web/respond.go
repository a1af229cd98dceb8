package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/service"
)

const maxBodyBytes = 1 << 20

var errUseCaseMissing = errors.New("feature not configured")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(code contract.ErrorCode) int {
	switch code {
	case contract.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case contract.ErrCodeNotFound:
		return http.StatusNotFound
	case contract.ErrCodeUpstreamAuth, contract.ErrCodeUpstream, contract.ErrCodeLLMOutput:
		return http.StatusBadGateway
	case contract.ErrCodeLLMUnavailable:
		return http.StatusServiceUnavailable
	case contract.ErrCodeLLMTimeout:
		return http.StatusGatewayTimeout
	case contract.ErrCodeHistoryOff:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errUseCaseMissing) {
		writeJSON(w, http.StatusServiceUnavailable, contract.ErrorResponse{Error: err.Error(), Code: contract.ErrCodeInternal})
		return
	}
	code := service.ClassifyError(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.deps.Logger.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.GetReqID(r.Context()), "code", code, "error", err)
	}
	writeJSON(w, status, contract.ErrorResponse{Error: err.Error(), Code: code})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
