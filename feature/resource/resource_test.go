package resource

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-sync/core/cachestore"
	"asset-sync/core/cachestore/memory"
	"asset-sync/core/fetch"
	"asset-sync/core/manifest"
	"asset-sync/feature/resource/models"
	"asset-sync/feature/synchronizer"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var names = cachestore.NamesFor("app")

func newOrigin(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/index.html":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>"))
		case "/main.dart.js":
			w.Write([]byte("main"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func buildV1() *manifest.Build {
	return &manifest.Build{
		Version:   "1",
		Resources: manifest.Map{"/": "r1", "index.html": "r1", "main.dart.js": "m1"},
		Shell:     []string{"index.html"},
	}
}

func newSync(t *testing.T, originURL string, store cachestore.Store, build *manifest.Build) *synchronizer.Synchronizer {
	t.Helper()
	s, err := synchronizer.New(originURL, names, build, store, fetch.NewClient(fetch.Config{}), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "/", NormalizeKey(""))
	assert.Equal(t, "/", NormalizeKey("/"))
	assert.Equal(t, "main.dart.js", NormalizeKey("/main.dart.js"))
	assert.Equal(t, "assets/a.png", NormalizeKey("assets/a.png"))
}

func TestCheckResource(t *testing.T) {
	ctx := context.Background()
	srv := newOrigin(t)
	s := newSync(t, srv.URL, memory.New(), buildV1())
	_, err := s.Update(ctx)
	require.NoError(t, err)

	t.Run("ShellCached", func(t *testing.T) {
		report, err := CheckResource(ctx, s, "index.html")
		require.NoError(t, err)
		assert.Equal(t, models.StatusPass, report.IntegrityStatus)
		assert.True(t, report.InManifest)
		assert.True(t, report.InShell)
		assert.True(t, report.Cached)
		assert.Equal(t, http.StatusOK, report.CachedStatus)
		assert.Equal(t, len("<html>"), report.CachedSize)
		assert.Equal(t, "text/html", report.ContentType)
		assert.Equal(t, "r1", report.Fingerprint)
		assert.Equal(t, "r1", report.PersistedFingerprint)
		assert.NotNil(t, report.StoredAt)
		assert.False(t, report.Stale)
		assert.Empty(t, report.Issues)
	})

	t.Run("NotCachedYet", func(t *testing.T) {
		report, err := CheckResource(ctx, s, "main.dart.js")
		require.NoError(t, err)
		assert.Equal(t, models.StatusWarning, report.IntegrityStatus)
		assert.False(t, report.Cached)
		assert.Contains(t, report.Issues, "not cached yet")
	})

	t.Run("NotAResource", func(t *testing.T) {
		report, err := CheckResource(ctx, s, "missing.js")
		require.NoError(t, err)
		assert.Equal(t, models.StatusFail, report.IntegrityStatus)
		assert.False(t, report.InManifest)
		assert.Contains(t, report.Issues, "not in resource map")
	})

	t.Run("Root", func(t *testing.T) {
		report, err := CheckResource(ctx, s, "/")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/", report.CacheURL)
		assert.True(t, report.InManifest)
	})
}

func TestCheckResource_Stale(t *testing.T) {
	ctx := context.Background()
	srv := newOrigin(t)
	store := memory.New()

	first := newSync(t, srv.URL, store, buildV1())
	_, err := first.Update(ctx)
	require.NoError(t, err)

	next := buildV1()
	next.Version = "2"
	next.Resources["index.html"] = "r2"
	second := newSync(t, srv.URL, store, next)

	report, err := CheckResource(ctx, second, "index.html")
	require.NoError(t, err)
	assert.True(t, report.Stale)
	assert.Equal(t, "r2", report.Fingerprint)
	assert.Equal(t, "r1", report.PersistedFingerprint)
	assert.Equal(t, models.StatusWarning, report.IntegrityStatus)
}

func TestCheckResource_ShellMissing(t *testing.T) {
	ctx := context.Background()
	srv := newOrigin(t)
	s := newSync(t, srv.URL, memory.New(), buildV1())

	report, err := CheckResource(ctx, s, "index.html")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFail, report.IntegrityStatus)
	assert.Contains(t, report.Issues, "shell resource missing from cache")
}

func TestCheckResource_NoBuild(t *testing.T) {
	s := newSync(t, "https://app.example.com", memory.New(), nil)
	_, err := CheckResource(context.Background(), s, "index.html")
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	srv := newOrigin(t)
	s := newSync(t, srv.URL, memory.New(), buildV1())
	_, err := s.Update(context.Background())
	require.NoError(t, err)

	app := fiber.New()
	feature := NewFeature(s, zap.NewNop())
	assert.Equal(t, "resource", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))

	t.Run("Detail", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/resources/index.html", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report models.ResourceDetailReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, "index.html", report.Key)
		assert.Equal(t, models.StatusPass, report.IntegrityStatus)
	})

	t.Run("Nested", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/resources/assets/logo.png", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report models.ResourceDetailReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, "assets/logo.png", report.Key)
		assert.Equal(t, models.StatusFail, report.IntegrityStatus)
	})
}

func TestHandler_NoBuild(t *testing.T) {
	s := newSync(t, "https://app.example.com", memory.New(), nil)
	app := fiber.New()
	NewHandler(NewService(s, zap.NewNop())).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/resources/index.html", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), "no build loaded")
}
