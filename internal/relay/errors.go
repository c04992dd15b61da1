package relay

import (
	"errors"
	"net/http"
)

// Client-facing messages for rejected requests.
const (
	MsgInvalidTranslation = "Invalid input"
	MsgInvalidSpeech      = "Missing text or language code"
)

// InputError reports a request that failed validation. No provider was
// called.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// ProviderError wraps a failure raised by an external provider. Error returns
// the provider's message unchanged.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StatusCode maps an error from Service to its HTTP status.
func StatusCode(err error) int {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
