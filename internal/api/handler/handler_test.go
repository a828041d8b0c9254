package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vida-fed/internal/api/dto"
	"vida-fed/internal/api/response"
	"vida-fed/internal/repository"
	"vida-fed/internal/service"
	"vida-fed/internal/synth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVideos struct {
	filter   repository.ListFilter
	page     int
	pageSize int
	details  map[string]*dto.VideoDetail
	objects  map[string]*dto.VideoObject
	err      error
}

func (f *fakeVideos) List(_ context.Context, page, pageSize int, filter repository.ListFilter) (*dto.VideoListData, error) {
	f.page, f.pageSize, f.filter = page, pageSize, filter
	if f.err != nil {
		return nil, f.err
	}
	return &dto.VideoListData{Videos: []dto.VideoSummary{{ID: 1, Name: "Sunset"}}, Total: 1, Page: page, PageSize: pageSize, TotalPages: 1}, nil
}

func (f *fakeVideos) GetDetail(_ context.Context, id string) (*dto.VideoDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, service.ErrVideoNotFound
}

func (f *fakeVideos) GetFederationObject(_ context.Context, uuid string) (*dto.VideoObject, error) {
	if f.err != nil {
		return nil, f.err
	}
	if o, ok := f.objects[uuid]; ok {
		return o, nil
	}
	return nil, service.ErrVideoNotFound
}

type fakeFederator struct {
	calls []int64
	err   error
}

func (f *fakeFederator) Federate(_ context.Context, id int64) (*dto.Activity, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.Activity{Type: "Update", ID: fmt.Sprintf("https://videos.example/videos/watch/%d/updates/x", id)}, nil
}

func newEngine(videos *fakeVideos, fed *fakeFederator) *gin.Engine {
	r := gin.New()
	vh := NewVideoHandler(videos)
	fh := NewFederationHandler(fed)
	r.GET("/api/v1/videos", vh.List)
	r.GET("/api/v1/videos/:id", vh.GetDetail)
	r.GET("/videos/watch/:uuid", vh.GetFederationObject)
	r.POST("/admin/videos/:id/federate", fh.Federate)
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorInfo {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestListVideos(t *testing.T) {
	videos := &fakeVideos{}
	r := newEngine(videos, &fakeFederator{})

	w := do(r, http.MethodGet, "/api/v1/videos?page=2&page_size=5&search=sun&local_only=true&category=15")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, videos.page)
	assert.Equal(t, 5, videos.pageSize)
	assert.Equal(t, repository.ListFilter{Search: "sun", LocalOnly: true, Category: 15}, videos.filter)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.VideoListData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Videos, 1)
}

func TestListVideosPagination(t *testing.T) {
	videos := &fakeVideos{}
	r := newEngine(videos, &fakeFederator{})

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/videos?page_size=1000").Code)
	assert.Equal(t, 1, videos.page)
	assert.Equal(t, 20, videos.pageSize)

	w := do(r, http.MethodGet, "/api/v1/videos?page=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BadRequest", decodeError(t, w).Type)

	videos.err = assert.AnError
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/api/v1/videos").Code)
}

func TestGetDetail(t *testing.T) {
	videos := &fakeVideos{details: map[string]*dto.VideoDetail{
		"kkGMgK9ZtnKfYAgnEtQxbv": {VideoSummary: dto.VideoSummary{ID: 1}},
	}}
	r := newEngine(videos, &fakeFederator{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/videos/kkGMgK9ZtnKfYAgnEtQxbv").Code)

	w := do(r, http.MethodGet, "/api/v1/videos/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.ErrVideoNotFound.Error(), decodeError(t, w).Message)
}

func TestGetFederationObject(t *testing.T) {
	obj := &dto.VideoObject{Type: "Video", ID: "https://videos.example/videos/watch/abc"}
	videos := &fakeVideos{objects: map[string]*dto.VideoObject{"abc": obj}}
	r := newEngine(videos, &fakeFederator{})

	w := do(r, http.MethodGet, "/videos/watch/abc")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.ActivityJSONContentType, w.Header().Get("Content-Type"))

	var got dto.VideoObject
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, obj.ID, got.ID)
}

func TestGetFederationObjectErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errType string
	}{
		{"not local", service.ErrVideoNotLocal, http.StatusNotFound, "NotFound"},
		{"incomplete", fmt.Errorf("video 3: %w", synth.ErrIncompleteVideoForFederation), http.StatusUnprocessableEntity, "IncompleteVideo"},
		{"origin", synth.ErrInvalidOriginInput, http.StatusUnprocessableEntity, "InvalidOrigin"},
		{"store down", assert.AnError, http.StatusInternalServerError, "InternalServerError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(&fakeVideos{err: tt.err}, &fakeFederator{})
			w := do(r, http.MethodGet, "/videos/watch/abc")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.errType, decodeError(t, w).Type)
		})
	}
}

func TestFederate(t *testing.T) {
	fed := &fakeFederator{}
	r := newEngine(&fakeVideos{}, fed)

	w := do(r, http.MethodPost, "/admin/videos/7/federate")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{7}, fed.calls)

	for _, bad := range []string{"abc", "0", "-3"} {
		assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/admin/videos/"+bad+"/federate").Code, bad)
	}
	assert.Len(t, fed.calls, 1)

	fed.err = service.ErrVideoNotLocal
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/admin/videos/8/federate").Code)

	fed.err = service.ErrVideoNotFound
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/admin/videos/9/federate").Code)
}
