package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/mocks"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

type testApp struct {
	t         *testing.T
	db        *gorm.DB
	auth      *service.AuthService
	generator *mocks.MockTextGenerator
	assets    *mocks.MockAssetStore
	engine    *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	app := &testApp{
		t:         t,
		db:        db,
		auth:      service.NewAuthService(db, "api-test-secret", time.Hour),
		generator: new(mocks.MockTextGenerator),
		assets:    new(mocks.MockAssetStore),
	}
	services := api.NewServices(db, app.auth, app.generator, service.NewImageService(app.assets), true)
	app.engine = router.SetupRouter(db, services, router.Options{})
	return app
}

func (a *testApp) token(u *models.User) string {
	a.t.Helper()
	token, err := a.auth.GenerateToken(u)
	require.NoError(a.t, err)
	return token
}

// do sends body as JSON unless it is nil.
func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// doWithHeader sends a bodyless request with a verbatim Authorization header.
func (a *testApp) doWithHeader(method, path, authorization string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authorization)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["message"].(string)
}

func validRecipeBody() map[string]any {
	return map[string]any{
		"title":       "Tomato Soup",
		"description": "Warm and simple",
		"ingredients": []map[string]string{{"name": "tomato", "quantity": "4"}},
		"steps":       []map[string]any{{"stepNumber": 1, "instruction": "Simmer"}},
		"cookingTime": 25,
		"difficulty":  "easy",
		"category":    "lunch",
		"cuisine":     "italian",
	}
}
