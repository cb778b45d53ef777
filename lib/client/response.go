package client

import (
	"fmt"
	"net/http"
)

// Error is the failure of the HTTP request itself, like the rate limit.
type Error struct {
	Status int
}

func (e Error) Error() string {
	return fmt.Sprintf("unexpected status, %d %s", e.Status, http.StatusText(e.Status))
}

func (e Error) IsRateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}
