package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../migrations"

var leadTables = []string{
	"demo_bookings",
	"enquiries",
	"level_test_results",
	"corporate_inquiries",
	"tutor_applications",
}

func readMigration(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(migrationsDir, name))
	require.NoError(t, err, "migration file %s must exist", name)
	require.NotEmpty(t, content)
	return string(content)
}

func TestMigrationUpCreatesEveryLeadTable(t *testing.T) {
	up := readMigration(t, "000001_create_lead_tables.up.sql")

	for _, table := range leadTables {
		assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Contains(t, up, "gen_random_uuid()")
	assert.Contains(t, up, "recommended_programs TEXT[]")
}

func TestMigrationDownDropsEveryLeadTable(t *testing.T) {
	down := readMigration(t, "000001_create_lead_tables.down.sql")

	for _, table := range leadTables {
		assert.Contains(t, down, "DROP TABLE IF EXISTS "+table+";", table)
	}
}

func TestMigrationConsentIsEnforced(t *testing.T) {
	up := readMigration(t, "000001_create_lead_tables.up.sql")

	// every consent-bearing table rejects consent=false at the store as well
	assert.Equal(t, 3, strings.Count(up, "NOT NULL CHECK (consent)"))
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", Up, false},
		{"up", Up, false},
		{"down", Down, false},
		{"sideways", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrate_BadURL(t *testing.T) {
	_, err := Migrate("not a url ://", "file://"+migrationsDir, Up)
	assert.ErrorContains(t, err, "failed to parse database URL")
}
