package http

import (
	"encoding/json"
	"net/http"

	apperrors "voltworks/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

// PageResponse is the envelope every table endpoint returns: one page of the
// filtered collection plus enough metadata to drive pagination controls.
type PageResponse struct {
	Data       any  `json:"data"`
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	TotalCount int  `json:"total_count"`
	Empty      bool `json:"empty"`
}

// RedirectResponse instructs the frontend router to navigate away. From holds
// the originally requested location so login can return the user there.
// Replace asks for history replacement so back-navigation cannot reach the
// abandoned page.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
	From     string `json:"from,omitempty"`
	Replace  bool   `json:"replace,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WritePage(w http.ResponseWriter, data any, page, totalPages, totalCount int) {
	WriteJSON(w, http.StatusOK, PageResponse{
		Data:       data,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		Empty:      totalCount == 0,
	})
}

func WriteRedirect(w http.ResponseWriter, statusCode int, resp RedirectResponse) {
	WriteJSON(w, statusCode, resp)
}
