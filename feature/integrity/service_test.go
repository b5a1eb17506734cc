package integrity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-sync/core/cachestore"
	"asset-sync/core/cachestore/memory"
	"asset-sync/core/fetch"
	"asset-sync/core/manifest"
	"asset-sync/feature/synchronizer"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// setupSync creates an activated synchronizer backed by an httptest origin.
func setupSync(t *testing.T) *synchronizer.Synchronizer {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/index.html", "/main.dart.js":
			w.Write([]byte("ok"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	build := &manifest.Build{
		Version:   "1",
		Resources: manifest.Map{"/": "r", "index.html": "r", "main.dart.js": "m"},
		Shell:     []string{"index.html", "main.dart.js"},
	}
	s, err := synchronizer.New(srv.URL, cachestore.NamesFor("app"), build, memory.New(), fetch.NewClient(fetch.Config{}), zap.NewNop())
	require.NoError(t, err)
	_, err = s.Update(context.Background())
	require.NoError(t, err)
	return s
}

func TestService_Shell(t *testing.T) {
	ctx := context.Background()
	s := setupSync(t)
	svc := NewService(s, nil, zap.NewNop())

	missing, err := svc.CheckShell(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)

	content, err := s.ContentCache(ctx)
	require.NoError(t, err)
	require.NoError(t, content.Delete(ctx, manifest.CacheURL(s.Origin(), "index.html")))

	missing, err = svc.CheckShell(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, missing)

	require.NoError(t, svc.FixShell(ctx, missing))
	missing, err = svc.CheckShell(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestService_ManifestAndStale(t *testing.T) {
	ctx := context.Background()
	svc := NewService(setupSync(t), nil, zap.NewNop())

	report, err := svc.CheckManifest(ctx)
	require.NoError(t, err)
	assert.True(t, report.Matched)

	plan, err := svc.CheckStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Summary.TotalEntries)
	assert.Zero(t, plan.Summary.Evicted)
}

func TestService_CheckServer(t *testing.T) {
	t.Run("NoDatabase", func(t *testing.T) {
		svc := NewService(setupSync(t), nil, zap.NewNop())
		_, err := svc.CheckServer()
		assert.Error(t, err)
	})

	t.Run("Mismatch", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(setupSync(t), db, zap.NewNop())

		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("name", "varchar(64)", "NO", "PRI", nil, "")
		mock.ExpectQuery("SHOW COLUMNS FROM `cache_stores`").WillReturnRows(rows)
		mock.ExpectQuery("SHOW COLUMNS FROM `cache_entries`").WillReturnRows(
			sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}))

		report, err := svc.CheckServer()
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Contains(t, report.Tables["cache_stores"].MissingColumns, "created_at")
		assert.Contains(t, report.Tables["cache_entries"].MissingColumns, "cache_key")
	})
}
