package api

import (
	"encoding/json"
	"errors"
	"net/http"

	mgerrors "github.com/matzehuels/mindgrid/pkg/errors"
	"github.com/matzehuels/mindgrid/pkg/store"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status and a JSON body. Store
// sentinels and structured error codes get specific statuses; anything
// else is an internal error with a sanitized message.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: "document not found",
			Code:  string(mgerrors.ErrCodeDocumentNotFound),
		})
		return
	}

	code := mgerrors.GetCode(err)
	status := statusFor(code)
	msg := mgerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: string(code)})
}

func statusFor(code mgerrors.Code) int {
	switch code {
	case mgerrors.ErrCodeInvalidInput,
		mgerrors.ErrCodeInvalidMode,
		mgerrors.ErrCodeInvalidFormat,
		mgerrors.ErrCodeInvalidDocument,
		mgerrors.ErrCodeInvalidNode,
		mgerrors.ErrCodeInvalidViewport,
		mgerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case mgerrors.ErrCodeNotFound,
		mgerrors.ErrCodeDocumentNotFound,
		mgerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case mgerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case mgerrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
