package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/courses-svc/internal/app/models"
	"github.com/coursekit/courses-svc/internal/app/models/dto"
	"github.com/coursekit/courses-svc/internal/pkg/apperrors"
)

func TestCreateCourseEndpoint(t *testing.T) {
	courseSvc := &fakeCourseService{
		createFn: func(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
			return &models.Course{ID: knownCourseID, Title: req.Title, IsActive: true}, nil
		},
	}
	router := newTestRouter(courseSvc, nil, nil)

	recorder := doRequest(t, router, http.MethodPost, "/courses", `{"title":"Intro to Go","price":19.99}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var response struct {
		Data models.Course `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, knownCourseID, response.Data.ID)
	assert.Equal(t, "Intro to Go", response.Data.Title)
}

func TestCreateCourseEndpointRejectsBadBody(t *testing.T) {
	router := newTestRouter(&fakeCourseService{}, nil, nil)

	// Missing title.
	recorder := doRequest(t, router, http.MethodPost, "/courses", `{"price":10}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Negative price fails binding before the service runs.
	recorder = doRequest(t, router, http.MethodPost, "/courses", `{"title":"X","price":-3}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListCoursesEndpointActiveFilter(t *testing.T) {
	var gotFilter *bool
	courseSvc := &fakeCourseService{
		listFn: func(ctx context.Context, isActive *bool) ([]*models.Course, error) {
			gotFilter = isActive
			return []*models.Course{}, nil
		},
	}
	router := newTestRouter(courseSvc, nil, nil)

	recorder := doRequest(t, router, http.MethodGet, "/courses", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, gotFilter)

	recorder = doRequest(t, router, http.MethodGet, "/courses?isActive=false", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, gotFilter)
	assert.False(t, *gotFilter)
}

func TestListActiveCoursesEndpoint(t *testing.T) {
	courseSvc := &fakeCourseService{
		listActiveFn: func(ctx context.Context) ([]*models.Course, error) {
			return []*models.Course{{ID: knownCourseID, Title: "Live", IsActive: true}}, nil
		},
	}
	router := newTestRouter(courseSvc, nil, nil)

	// "active" must route to the dedicated handler, not the :id parameter.
	recorder := doRequest(t, router, http.MethodGet, "/courses/active", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Data []models.Course `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.True(t, response.Data[0].IsActive)
}

func TestGetCourseEndpoint(t *testing.T) {
	courseSvc := &fakeCourseService{
		getByIDFn: func(ctx context.Context, id string) (*models.Course, error) {
			return &models.Course{ID: id, Title: "Databases"}, nil
		},
	}
	router := newTestRouter(courseSvc, nil, nil)

	recorder := doRequest(t, router, http.MethodGet, "/courses/"+knownCourseID, "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetCourseEndpointInvalidID(t *testing.T) {
	router := newTestRouter(&fakeCourseService{}, nil, nil)

	recorder := doRequest(t, router, http.MethodGet, "/courses/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetCourseEndpointNotFound(t *testing.T) {
	courseSvc := &fakeCourseService{
		getByIDFn: func(ctx context.Context, id string) (*models.Course, error) {
			return nil, apperrors.ErrCourseNotFound
		},
	}
	router := newTestRouter(courseSvc, nil, nil)

	recorder := doRequest(t, router, http.MethodGet, "/courses/"+knownCourseID, "")
	require.Equal(t, http.StatusNotFound, recorder.Code)

	var response struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "RES_001", response.Error.Code)
}

func TestUpdateCourseEndpointPartialPatch(t *testing.T) {
	var gotPatch models.CoursePatch
	courseSvc := &fakeCourseService{
		updateFn: func(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
			gotPatch = patch
			return &models.Course{ID: id, Title: "Renamed"}, nil
		},
	}
	router := newTestRouter(courseSvc, nil, nil)

	recorder := doRequest(t, router, http.MethodPatch, "/courses/"+knownCourseID, `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Absent fields stay nil so the store leaves the columns untouched.
	require.NotNil(t, gotPatch.Title)
	assert.Equal(t, "Renamed", *gotPatch.Title)
	assert.Nil(t, gotPatch.Description)
	assert.Nil(t, gotPatch.Price)
	assert.Nil(t, gotPatch.IsActive)
}

func TestDeleteCourseEndpoint(t *testing.T) {
	courseSvc := &fakeCourseService{
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
	router := newTestRouter(courseSvc, nil, nil)

	recorder := doRequest(t, router, http.MethodDelete, "/courses/"+knownCourseID, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Data dto.SuccessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "Course deleted successfully", response.Data.Message)
}
