package database

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string
	Extra   string
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// GetTableColumns retrieves the column definitions for a given table. Field
// names and types are lowercased. A missing table yields no columns on SQLite
// and an error on MySQL.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	// Table names are interpolated into the statement.
	if !tableNamePattern.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	var (
		columns []ColumnInfo
		err     error
	)
	if db.Dialector.Name() == "sqlite" {
		columns, err = sqliteColumns(db, tableName)
	} else {
		columns, err = mysqlColumns(db, tableName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// mysqlColumns keeps the exact type strings (e.g. varchar(700)).
func mysqlColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	return columns, err
}

func sqliteColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type pragmaColumn struct {
		Cid       int
		Name      string
		Type      string
		Notnull   int
		DfltValue *string
		Pk        int
	}

	var rows []pragmaColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, r := range rows {
		col := ColumnInfo{Field: r.Name, Type: r.Type, Default: r.DfltValue, Null: "YES"}
		if r.Notnull == 1 {
			col.Null = "NO"
		}
		if r.Pk > 0 {
			col.Key = "PRI"
		}
		columns = append(columns, col)
	}
	return columns, nil
}
