package http

import (
	"net/http"
	"strconv"

	apperrors "voltworks/pkg/errors"
)

// ExtractPage reads the requested page number, defaulting to 1. Out-of-range
// values are corrected downstream by the list pipeline, not rejected here.
func ExtractPage(r *http.Request) (int, error) {
	s := r.URL.Query().Get("page")
	if s == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid page parameter: " + s)
	}
	return page, nil
}
