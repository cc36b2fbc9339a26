package remote

import (
	"errors"
	"fmt"

	"wallet-client-go/internal/models"
)

// ErrNetworkUnavailable marks failures where no response was received:
// timeouts, refused connections, DNS errors, resets.
var ErrNetworkUnavailable = errors.New("network unavailable")

// RejectedError is returned when the API answered with a status >= 400
type RejectedError struct {
	StatusCode int
	APIError   models.APIError
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("request rejected (%d %s): %s", e.StatusCode, e.APIError.Error, e.APIError.Message)
}

// IsNetworkError reports whether err is network-class and may be served from cache
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable)
}
