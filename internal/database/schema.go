package database

import (
	"context"
	"strings"
)

// Schema is created idempotently at startup. Statements are written once
// with dialect tokens (PK, MONEY) substituted per backend; dates and times
// are stored as ISO-8601 TEXT so both backends return identical values.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id PK,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'read_only' CHECK(role IN ('admin', 'manager', 'coordinator', 'read_only')),
		phone TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		id PK,
		name TEXT NOT NULL,
		address TEXT,
		city TEXT,
		postcode TEXT,
		country TEXT NOT NULL DEFAULT 'United Kingdom',
		capacity INTEGER,
		description TEXT,
		facilities TEXT,
		contact_name TEXT,
		contact_email TEXT,
		contact_phone TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS festivals (
		id PK,
		name TEXT NOT NULL,
		year INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		venue_id INTEGER REFERENCES venues(id),
		location TEXT,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'planning' CHECK(status IN ('planning', 'active', 'completed', 'cancelled')),
		budget_total MONEY NOT NULL DEFAULT 0,
		budget_allocated MONEY NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stages_areas (
		id PK,
		event_id INTEGER NOT NULL REFERENCES festivals(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL CHECK(type IN ('stage', 'area')),
		setup_time INTEGER NOT NULL DEFAULT 0,
		breakdown_time INTEGER NOT NULL DEFAULT 0,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS artists (
		id PK,
		festival_id INTEGER NOT NULL REFERENCES festivals(id),
		name TEXT NOT NULL,
		genre TEXT,
		contact_name TEXT,
		contact_email TEXT,
		contact_phone TEXT,
		rider_requirements TEXT,
		technical_requirements TEXT,
		fee MONEY,
		fee_status TEXT NOT NULL DEFAULT 'quoted' CHECK(fee_status IN ('quoted', 'agreed', 'invoiced', 'paid', 'overdue')),
		travel_requirements TEXT,
		accommodation_requirements TEXT,
		status TEXT NOT NULL DEFAULT 'inquired' CHECK(status IN ('inquired', 'confirmed', 'contracted', 'cancelled')),
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS performances (
		id PK,
		festival_id INTEGER NOT NULL REFERENCES festivals(id),
		artist_id INTEGER NOT NULL REFERENCES artists(id),
		stage_area_id INTEGER NOT NULL REFERENCES stages_areas(id),
		performance_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		changeover_minutes INTEGER NOT NULL DEFAULT 15,
		soundcheck_time TEXT,
		soundcheck_duration INTEGER NOT NULL DEFAULT 30,
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'confirmed', 'cancelled', 'completed')),
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS volunteers (
		id PK,
		festival_id INTEGER NOT NULL REFERENCES festivals(id),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		skills TEXT,
		t_shirt_size TEXT,
		dietary_requirements TEXT,
		emergency_contact_name TEXT,
		emergency_contact_phone TEXT,
		assigned_role TEXT,
		volunteer_status TEXT NOT NULL DEFAULT 'applied' CHECK(volunteer_status IN ('applied', 'approved', 'rejected', 'confirmed')),
		notes TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id PK,
		festival_id INTEGER NOT NULL REFERENCES festivals(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		contact_name TEXT,
		contact_email TEXT,
		contact_phone TEXT,
		address TEXT,
		services_offered TEXT,
		rates TEXT,
		status TEXT NOT NULL DEFAULT 'inquiry' CHECK(status IN ('inquiry', 'approved', 'contracted', 'rejected')),
		notes TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS budget_items (
		id PK,
		festival_id INTEGER NOT NULL REFERENCES festivals(id),
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		type TEXT NOT NULL CHECK(type IN ('income', 'expense')),
		amount MONEY NOT NULL,
		planned_amount MONEY,
		payment_status TEXT NOT NULL DEFAULT 'pending' CHECK(payment_status IN ('pending', 'paid', 'overdue', 'cancelled')),
		due_date TEXT,
		paid_date TEXT,
		description TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id PK,
		festival_id INTEGER NOT NULL REFERENCES festivals(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		file_path TEXT,
		file_size INTEGER,
		status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'review', 'approved', 'signed', 'expired')),
		version INTEGER NOT NULL DEFAULT 1,
		expiry_date TEXT,
		uploaded_by INTEGER REFERENCES users(id),
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contract_templates (
		id PK,
		festival_id INTEGER REFERENCES festivals(id),
		name TEXT NOT NULL,
		description TEXT,
		content TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_by INTEGER REFERENCES users(id),
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS artist_contracts (
		id PK,
		artist_id INTEGER NOT NULL REFERENCES artists(id),
		template_id INTEGER REFERENCES contract_templates(id),
		content TEXT NOT NULL,
		secure_token TEXT UNIQUE NOT NULL,
		deadline TEXT,
		status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'sent', 'viewed', 'signed', 'void')),
		sent_at TEXT,
		viewed_at TEXT,
		signed_at TEXT,
		signature_data TEXT,
		signature_name TEXT,
		created_by INTEGER REFERENCES users(id),
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contract_versions (
		id PK,
		contract_id INTEGER NOT NULL REFERENCES artist_contracts(id),
		version_number INTEGER NOT NULL,
		content TEXT NOT NULL,
		created_by INTEGER REFERENCES users(id),
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_performances_stage_date ON performances (stage_area_id, performance_date)`,
	`CREATE INDEX IF NOT EXISTS idx_budget_items_festival ON budget_items (festival_id)`,
	`CREATE INDEX IF NOT EXISTS idx_artist_contracts_token ON artist_contracts (secure_token)`,
}

// Columns added after the initial schema shipped. Each ALTER is attempted
// and failures are ignored, so databases created before the column existed
// pick it up on the next start.
var migrationStatements = []string{
	`ALTER TABLE festivals ADD COLUMN venue_id INTEGER REFERENCES venues(id)`,
	`ALTER TABLE artist_contracts ADD COLUMN deadline TEXT`,
	`ALTER TABLE performances ADD COLUMN soundcheck_duration INTEGER NOT NULL DEFAULT 30`,
}

// InitSchema creates all tables, indexes and forward-migration columns.
func (d *DB) InitSchema(ctx context.Context) error {
	replacer := sqliteTypes
	if d.driver == DriverPostgres {
		replacer = postgresTypes
	}
	for _, stmt := range schemaStatements {
		if _, err := d.ExecContext(ctx, replacer.Replace(stmt)); err != nil {
			return err
		}
	}
	for _, stmt := range migrationStatements {
		// Best effort: the column usually exists already.
		_, _ = d.ExecContext(ctx, replacer.Replace(stmt))
	}
	return nil
}

var (
	sqliteTypes   = strings.NewReplacer("PK", "INTEGER PRIMARY KEY AUTOINCREMENT", "MONEY", "REAL")
	postgresTypes = strings.NewReplacer("PK", "SERIAL PRIMARY KEY", "MONEY", "DOUBLE PRECISION")
)
