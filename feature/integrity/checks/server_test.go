package checks

import (
	"testing"

	"asset-sync/core/cachestore/sqlstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

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

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestCheckServerIntegrity_NilDB(t *testing.T) {
	report, err := CheckServerIntegrity(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckServerIntegrity_Matched(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `cache_stores`").WillReturnRows(columnRows().
		AddRow("name", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("created_at", "datetime(3)", "YES", "", nil, ""))
	mock.ExpectQuery("SHOW COLUMNS FROM `cache_entries`").WillReturnRows(columnRows().
		AddRow("store", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("cache_key", "varchar(700)", "NO", "PRI", nil, "").
		AddRow("url", "text", "YES", "", nil, "").
		AddRow("status", "int(11)", "YES", "", nil, "").
		AddRow("header", "text", "YES", "", nil, "").
		AddRow("body", "longblob", "YES", "", nil, "").
		AddRow("stored_at", "datetime(3)", "YES", "", nil, ""))

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.Equal(t, "mysql", report.Driver)
	assert.True(t, report.Matched, "tables: %+v", report.Tables)
	assert.Equal(t, "ok", report.Tables["cache_stores"].Status)
	assert.Equal(t, "ok", report.Tables["cache_entries"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckServerIntegrity_MissingAndMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `cache_stores`").WillReturnRows(columnRows().
		AddRow("name", "varchar(64)", "NO", "PRI", nil, ""))
	mock.ExpectQuery("SHOW COLUMNS FROM `cache_entries`").WillReturnRows(columnRows().
		AddRow("store", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("cache_key", "varchar(255)", "NO", "PRI", nil, ""))

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	stores := report.Tables["cache_stores"]
	assert.Equal(t, "error", stores.Status)
	assert.Contains(t, stores.MissingColumns, "created_at")

	entries := report.Tables["cache_entries"]
	assert.Equal(t, "error", entries.Status)
	assert.Contains(t, entries.MissingColumns, "body")
	assert.Contains(t, entries.TypeMismatches, "cache_key: expected varchar(700), got varchar(255)")
}

func TestCheckServerIntegrity_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `cache_stores`").WillReturnError(assert.AnError)
	mock.ExpectQuery("SHOW COLUMNS FROM `cache_entries`").WillReturnError(assert.AnError)

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 2)
}

func TestCheckServerIntegrity_SQLiteMigrated(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	_, err = sqlstore.New(db)
	require.NoError(t, err)

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", report.Driver)
	assert.True(t, report.Matched, "tables: %+v", report.Tables)
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "name", parseGormColumn("column:name;type:varchar(64);primaryKey"))
	assert.Equal(t, "cache_key", parseGormColumn("primaryKey;column:cache_key"))
	assert.Equal(t, "", parseGormColumn("primaryKey"))

	assert.Equal(t, "varchar(700)", parseGormType("column:cache_key;type:varchar(700)"))
	assert.Equal(t, "", parseGormType("column:body"))
}
