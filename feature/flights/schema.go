package flights

import (
	"fmt"
	"sort"
	"strings"

	"flight-logger/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of checking the database against a profile.
type SchemaReport struct {
	Profile string                 `json:"profile"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport lists the problems found in one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that every column the profile maps exists in the database.
// Column names are compared case-insensitively since some dialects fold identifiers.
func CheckSchema(db *gorm.DB, profile Profile) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Profile: profile.Name,
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, table := range profile.Tables() {
		actualCols, err := database.GetTableColumns(db, table.Name)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table.Name, err))
			report.Matched = false
			continue
		}

		actual := make(map[string]struct{}, len(actualCols))
		for _, col := range actualCols {
			actual[strings.ToLower(col.Field)] = struct{}{}
		}

		tblReport := TableReport{
			MissingColumns: []string{},
			Status:         "ok",
		}
		for _, column := range table.Columns {
			if _, ok := actual[strings.ToLower(column)]; !ok {
				tblReport.MissingColumns = append(tblReport.MissingColumns, column)
			}
		}
		if len(tblReport.MissingColumns) > 0 {
			sort.Strings(tblReport.MissingColumns)
			tblReport.Status = "error"
			report.Matched = false
		}

		report.Tables[table.Name] = tblReport
	}

	return report, nil
}

// CheckSchema verifies the store's own profile against its database.
func (s *Store) CheckSchema() (*SchemaReport, error) {
	return CheckSchema(s.db, s.profile)
}
