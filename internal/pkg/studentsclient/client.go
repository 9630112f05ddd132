// Package studentsclient talks to the external students directory service.
// The directory owns student identity records; this service only ever reads
// them, one bounded lookup per enrollment creation.
package studentsclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/coursekit/courses-svc/internal/pkg/apperrors"
)

const (
	defaultTimeout = 5 * time.Second
	maxRedirects   = 3
)

// Directory is the read-only contract the enrollment workflow consumes.
type Directory interface {
	GetStudent(ctx context.Context, studentID string) (*Student, error)
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the directory's root URL, e.g. "http://students-svc:3000".
	BaseURL string
	// Timeout bounds a single lookup; defaults to 5s.
	Timeout time.Duration
}

// Client is a students directory client over HTTP.
type Client struct {
	http *resty.Client
}

var _ Directory = (*Client)(nil)

// New creates a students directory client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// GetStudent fetches a student record by ID. Exactly one attempt is made;
// there is no caching and no retry. Failures map to a closed set of
// sentinel errors:
//   - 404 from the directory          -> apperrors.ErrStudentNotFound
//   - timeout or connection reset     -> apperrors.ErrStudentsServiceUnavailable
//   - any other transport/remote fail -> apperrors.ErrStudentsServiceError
func (c *Client) GetStudent(ctx context.Context, studentID string) (*Student, error) {
	var student Student

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&student).
		Get("/students/" + url.PathEscape(studentID))

	if err != nil {
		if isTimeoutOrReset(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStudentsServiceUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStudentsServiceError, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, apperrors.ErrStudentNotFound
	case resp.IsError():
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrStudentsServiceError, resp.StatusCode())
	}

	return &student, nil
}

// isTimeoutOrReset reports whether the transport error signals a transient
// outage rather than a hard failure.
func isTimeoutOrReset(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET)
}
