package storyblok

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Response is a translated 2xx reply.
type Response struct {
	StatusCode int
	// Data is the decoded JSON body, or the raw text when the body is not JSON.
	Data any
	// NoContent is set for 204 and for empty success bodies; Data is nil then.
	NoContent bool
}

// Object returns Data as a JSON object, or an empty map.
func (r *Response) Object() map[string]any {
	if r == nil {
		return map[string]any{}
	}
	if m, ok := r.Data.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// HandleResponse translates resp. Non-2xx statuses become *APIError.
func HandleResponse(resp *http.Response, endpoint, spaceID string) (*Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp, body, endpoint, spaceID)
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return &Response{StatusCode: resp.StatusCode, NoContent: true}, nil
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return &Response{StatusCode: resp.StatusCode, Data: string(body)}, nil
	}
	return &Response{StatusCode: resp.StatusCode, Data: data}, nil
}

func newAPIError(resp *http.Response, body []byte, endpoint, spaceID string) *APIError {
	var details any
	if err := json.Unmarshal(body, &details); err != nil {
		details = string(body)
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Details:    details,
		Context: ErrorContext{
			Endpoint:     endpoint,
			SpaceID:      spaceID,
			SuggestedFix: SuggestedFix(resp.StatusCode),
		},
	}
}

// statusText strips the numeric prefix net/http leaves in resp.Status.
func statusText(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, fmt.Sprintf("%d ", resp.StatusCode)); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
