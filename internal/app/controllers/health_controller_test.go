package controllers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/courses-svc/internal/app/models/dto"
)

func TestHealthEndpointStoreUp(t *testing.T) {
	router := newTestRouter(nil, nil, &fakeProber{})

	recorder := doRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response dto.HealthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "up", response.DB)
	assert.False(t, response.Timestamp.IsZero())
}

func TestHealthEndpointStoreDown(t *testing.T) {
	router := newTestRouter(nil, nil, &fakeProber{err: errors.New("connection refused")})

	recorder := doRequest(t, router, http.MethodGet, "/health", "")

	// A failed probe degrades the payload, never the status code.
	require.Equal(t, http.StatusOK, recorder.Code)

	var response dto.HealthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, "down", response.DB)
}

func TestRootEndpointBanner(t *testing.T) {
	router := newTestRouter(nil, nil, nil)

	recorder := doRequest(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Courses Service is running", recorder.Body.String())
}
