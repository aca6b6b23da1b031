package checks

import (
	"fmt"
	"reflect"
	"strings"

	"ge-sync/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the database against the sync models.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the database schema using the gorm models as the source of truth.
// Every model must implement TableName.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct {
			return nil, fmt.Errorf("model %T is not a struct", model)
		}

		tabler, ok := reflect.New(typ).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
		}
		tableName := tabler.TableName()

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tbl := compareTable(typ, actualCols)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

func compareTable(typ reflect.Type, actualCols []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	// A table that does not exist comes back with no columns.
	actual := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		colName := parseGormColumn(tag)
		if colName == "" {
			continue
		}

		col, exists := actual[colName]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, colName)
			tbl.Status = "error"
			continue
		}

		// Only columns with an explicit type are compared; sizes and json
		// columns vary between drivers.
		expType := strings.ToLower(parseGormType(tag))
		if expType == "" {
			continue
		}
		if !strings.Contains(col.Type, expType) && !strings.Contains(col.Type, baseType(expType)) {
			tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
			tbl.Status = "error"
		}
	}

	return tbl
}

// baseType strips the length from a type, so varchar(36) also accepts character varying.
func baseType(t string) string {
	if i := strings.Index(t, "("); i > 0 {
		t = t[:i]
	}
	if t == "varchar" {
		return "char"
	}
	return t
}

// Helpers to parse simple gorm tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
