package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/hassansabag81/TecRoomV1/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := getJSON(srv, "/health/live", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)
	assert.Contains(t, rec.Body.String(), `"uptime"`)
}

func TestHandleReadiness_Healthy(t *testing.T) {
	srv := newTestServer(t, &mockAppService{}, withProbe(&mockProbe{}))

	rec := getJSON(srv, "/health/ready", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","database":"connected"}`, rec.Body.String())
}

func TestHandleReadiness_DatabaseDown(t *testing.T) {
	srv := newTestServer(t, &mockAppService{},
		withProbe(&mockProbe{pingErr: errors.New("connection refused")}))

	rec := getJSON(srv, "/health/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy","database":"unreachable"}`, rec.Body.String())
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := getJSON(srv, "/version", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)
	assert.Contains(t, rec.Body.String(), `"go_version"`)
}

func TestHandleTest_DatabaseUp(t *testing.T) {
	srv := newTestServer(t, &mockAppService{}, withProbe(&mockProbe{
		counts: []database.TableCount{
			{Name: "usuarios", Rows: 3},
			{Name: "sesiones", Rows: 12},
			{Name: "proyectos", Rows: 2},
			{Name: "tareas", Rows: 8},
		},
	}))

	rec := getJSON(srv, "/api/test", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `{"name":"usuarios","rows":3}`)
	assert.Contains(t, rec.Body.String(), `{"name":"tareas","rows":8}`)
}

func TestHandleTest_DatabaseDown(t *testing.T) {
	srv := newTestServer(t, &mockAppService{},
		withProbe(&mockProbe{pingErr: errors.New("connection refused")}))

	rec := getJSON(srv, "/api/test", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Base de datos no disponible"}`, rec.Body.String())
}

func TestHandleTest_CountsFail(t *testing.T) {
	srv := newTestServer(t, &mockAppService{},
		withProbe(&mockProbe{countsErr: errors.New("relation does not exist")}))

	rec := getJSON(srv, "/api/test", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Base de datos no disponible"}`, rec.Body.String())
}
