package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipebox/backend/internal/api"
)

func TestRouterEdges(t *testing.T) {
	t.Run("should report a healthy database", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		health := decode[api.HealthResponse](t, w)
		assert.Equal(t, "ok", health.Status)
		assert.Equal(t, "ok", health.Database)
	})

	t.Run("should answer unknown routes with a JSON 404", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(http.MethodGet, "/api/v1/nowhere", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Route not found", messageOf(t, w))
	})

	t.Run("should not expose metrics unless enabled", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(http.MethodGet, "/metrics", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
