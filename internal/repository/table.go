package repository

import (
	"fmt"

	"github.com/edushetra/edushetra-api/pkg/errors"
)

// Table is one of the remote lead tables
type Table string

const (
	DemoBookings       Table = "demo_bookings"
	Enquiries          Table = "enquiries"
	LevelTestResults   Table = "level_test_results"
	CorporateInquiries Table = "corporate_inquiries"
	TutorApplications  Table = "tutor_applications"
)

// Tables lists every writable table
var Tables = []Table{DemoBookings, Enquiries, LevelTestResults, CorporateInquiries, TutorApplications}

// Valid reports whether t is one of the lead tables
func (t Table) Valid() bool {
	for _, known := range Tables {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTable accepts only the lead table names
func ParseTable(s string) (Table, error) {
	t := Table(s)
	if !t.Valid() {
		return "", errors.InvalidInputError("table", fmt.Sprintf("unknown table %q", s))
	}
	return t, nil
}

// Column is one named value of a row; a nil Value is stored as NULL
type Column struct {
	Name  string
	Value any
}

// Row is an ordered set of columns
type Row []Column

// Names returns the column names in order
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

// Values returns the column values in order
func (r Row) Values() []any {
	values := make([]any, len(r))
	for i, c := range r {
		values[i] = c.Value
	}
	return values
}

// Map returns the row keyed by column name, for JSON encoding
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, c := range r {
		m[c.Name] = c.Value
	}
	return m
}

// Get returns the value of a column
func (r Row) Get(name string) (any, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Listing is a page of rows read back for display
type Listing struct {
	Columns []string
	Rows    [][]string
}
