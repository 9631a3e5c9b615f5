package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"haggle/internal/config"
	"haggle/internal/models"
	"haggle/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeImageStore is an in-memory ImageStore for handler tests.
type fakeImageStore struct {
	stored  map[string][]byte
	counter int
	fail    bool
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{stored: map[string][]byte{}}
}

func (f *fakeImageStore) Store(_ context.Context, data []byte, _, ext string) (*storage.StoredImage, error) {
	if f.fail {
		return nil, errors.New("storage unavailable")
	}
	f.counter++
	key := fmt.Sprintf("adverts/test/%d.%s", f.counter, ext)
	f.stored[key] = data
	return &storage.StoredImage{
		URL: "https://images.test/" + key,
		ID:  key,
	}, nil
}

func (f *fakeImageStore) Delete(_ context.Context, id string) error {
	delete(f.stored, id)
	return nil
}

// setupTestServer builds a Server over an in-memory SQLite DB with routes
// mounted on a fresh Fiber app.
func setupTestServer(t *testing.T) (*fiber.App, *Server, *fakeImageStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Advert{}))

	store := newFakeImageStore()
	cfg := &config.Config{Port: "0", Env: "test"}
	srv, err := NewServerWithDeps(cfg, db, nil, store)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})
	srv.SetupRoutes(app)
	return app, srv, store
}

// registerTestUser signs up a user through the API and returns its id and token.
func registerTestUser(t *testing.T, app *fiber.App, name, email, password string) (uint, string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		UserID      uint   `json:"userId"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.UserID, body.AccessToken
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonBody(t *testing.T, payload any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// testPNG returns a small encoded PNG for upload tests.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// advertForm builds a multipart publish request body.
func advertForm(t *testing.T, fields map[string]string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageData != nil {
		fw, err := w.CreateFormFile("image", "item.png")
		require.NoError(t, err)
		_, err = fw.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validAdvertFields() map[string]string {
	return map[string]string{
		"title":       "Vintage teak sideboard",
		"description": "Solid teak, some wear on the top surface.",
		"price":       "1500",
		"condition":   "Good",
		"category":    "Furniture",
		"delivery":    "Pick up",
	}
}

func advertCount(t *testing.T, srv *Server) int64 {
	t.Helper()
	count, err := srv.advertRepo.Count(context.Background())
	require.NoError(t, err)
	return count
}
