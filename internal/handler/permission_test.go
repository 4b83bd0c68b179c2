package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
	"github.com/stretchr/testify/assert"
)

// stubPermissionService returns canned results per call.
type stubPermissionService struct {
	matrix model.Matrix
	grants model.ResourceGrants
	err    error
}

func (s *stubPermissionService) GetAll(ctx context.Context) (model.Matrix, error) {
	return s.matrix, s.err
}

func (s *stubPermissionService) GetByPosition(ctx context.Context, position string) (model.ResourceGrants, error) {
	return s.grants, s.err
}

func (s *stubPermissionService) Update(ctx context.Context, raw model.RawMatrix, actorID string) (model.Matrix, error) {
	return s.matrix, s.err
}

func (s *stubPermissionService) HasPermission(ctx context.Context, position, resource, action string) (bool, error) {
	return false, s.err
}

func newPermissionRouter(svc service.PermissionService) *gin.Engine {
	h := NewPermissionHandler(svc)
	router := gin.New()
	router.GET("/permissions", h.GetAll)
	router.GET("/permissions/:position", h.GetByPosition)
	router.PUT("/permissions", h.Update)
	return router
}

func TestPermissionHandler_GetAll(t *testing.T) {
	svc := &stubPermissionService{matrix: model.Matrix{
		model.PositionAgent: {
			model.ResourceProperties: {model.ActionView: true},
		},
	}}
	router := newPermissionRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/permissions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.(map[string]interface{})
	agent := data["agent"].(map[string]interface{})
	props := agent["properties"].(map[string]interface{})
	assert.Equal(t, true, props["view"])
}

func TestPermissionHandler_GetByPosition_Invalid(t *testing.T) {
	svc := &stubPermissionService{err: service.ErrInvalidPosition}
	router := newPermissionRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/permissions/intern", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, response.CodeInvalidPosition, resp.Code)
}

func TestPermissionHandler_Update(t *testing.T) {
	svc := &stubPermissionService{matrix: model.Matrix{}}
	router := newPermissionRouter(svc)

	body, _ := json.Marshal(model.RawMatrix{
		model.PositionAgent: {
			model.ResourceProperties: {model.ActionView: true},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/permissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestPermissionHandler_Update_InvalidResource(t *testing.T) {
	svc := &stubPermissionService{err: service.ErrInvalidResource}
	router := newPermissionRouter(svc)

	body, _ := json.Marshal(model.RawMatrix{
		model.PositionAgent: {
			"vehicles": {model.ActionView: true},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/permissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, response.CodeInvalidResource, resp.Code)
}

func TestPermissionHandler_Update_MalformedBody(t *testing.T) {
	router := newPermissionRouter(&stubPermissionService{})

	req := httptest.NewRequest(http.MethodPut, "/permissions", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, response.CodeInvalidRequest, resp.Code)
}
