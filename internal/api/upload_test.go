package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func multipartImage(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func upload(app *testApp, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	return w
}

func TestUploadRoutes(t *testing.T) {
	t.Run("should store a png and return its url", func(t *testing.T) {
		app := newTestApp(t)
		user := testhelpers.CreateUser(t, app.db, "cook")
		app.assets.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "recipe-images/"+user.ID.String()+"/") && strings.HasSuffix(key, ".png")
		}), "image/png", pngBytes).Return("https://cdn.example.com/x.png", nil).Once()

		body, ct := multipartImage(t, "image", "dish.png", pngBytes)
		w := upload(app, app.token(user), body, ct)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "https://cdn.example.com/x.png", decode[map[string]any](t, w)["url"])
		app.assets.AssertExpectations(t)
	})

	t.Run("should reject files that are not images", func(t *testing.T) {
		app := newTestApp(t)
		token := app.token(testhelpers.CreateUser(t, app.db, "cook"))

		body, ct := multipartImage(t, "image", "notes.png", []byte("plain text pretending to be a picture"))
		w := upload(app, token, body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Only JPEG, PNG, GIF and WebP images are allowed", messageOf(t, w))
		app.assets.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should require the image field", func(t *testing.T) {
		app := newTestApp(t)
		token := app.token(testhelpers.CreateUser(t, app.db, "cook"))

		body, ct := multipartImage(t, "file", "dish.png", pngBytes)
		w := upload(app, token, body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should answer 503 without an asset store", func(t *testing.T) {
		app := newTestApp(t)
		auth := service.NewAuthService(app.db, "api-test-secret", time.Hour)
		services := api.NewServices(app.db, auth, nil, service.NewImageService(nil), true)
		app.engine = router.SetupRouter(app.db, services, router.Options{})

		body, ct := multipartImage(t, "image", "dish.png", pngBytes)
		w := upload(app, app.token(testhelpers.CreateUser(t, app.db, "cook")), body, ct)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
