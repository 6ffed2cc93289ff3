package client

import (
	"encoding/json"
	"fmt"

	apperrors "voltworks/pkg/errors"
)

// decodeData unwraps the workshop API's {"data": ...} envelope into target.
func decodeData(resp *Response, target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return fmt.Errorf("could not decode response envelope: %w", err)
	}
	if err := json.Unmarshal(wrapper.Data, target); err != nil {
		return fmt.Errorf("could not decode response data: %w", err)
	}
	return nil
}

// upstreamError converts a non-2xx workshop API response into an AppError,
// preserving the API's message when it supplied one.
func upstreamError(resp *Response) error {
	return apperrors.Upstream(
		ErrorMessage(resp),
		fmt.Errorf("workshop api status=%d", resp.StatusCode),
	)
}
