package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quartohq/quarto-backend/pkg/migrate"
)

func TestBookingSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_booking_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no booking schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE hotels",
		"CREATE TABLE room_categories",
		"CREATE TABLE rooms",
		"CREATE TABLE discounts",
		"CREATE TABLE cart_records",
		"CREATE TABLE cart_items",
		"CREATE TABLE bookings",
		"CREATE TABLE booking_rooms",
		"CREATE TABLE payment_details",
		"CHECK (quantity >= 1)",
		"CHECK (check_out > check_in)",
		"CREATE UNIQUE INDEX idx_cart_records_user_id",
		"CREATE UNIQUE INDEX idx_payment_details_booking_id",
		"CREATE INDEX idx_bookings_stay_window",
		"DROP TABLE IF EXISTS bookings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsBundledMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("bundled migrations must validate: %v", err)
	}
}

func TestCreateSQLMigrationWritesGooseTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Loyalty Tier!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_loyalty_tier.sql") {
		t.Fatalf("unexpected migration filename %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read created migration: %v", err)
	}
	if !strings.Contains(string(data), "-- +goose Up") || !strings.Contains(string(data), "-- +goose Down") {
		t.Fatalf("created migration missing goose markers:\n%s", data)
	}

	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration must validate: %v", err)
	}
}
