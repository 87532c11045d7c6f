package migrate

import (
	"context"
	"database/sql"
	"fmt"
)

// Схема хранилища. Выполняется идемпотентно при старте сервиса.
//
// Ключевые ограничения консистентности:
//   - uq_calendars_name_version: уникальность пары (name, version) — защита
//     от конкурентного создания одной и той же версии календаря;
//   - ux_reservations_no_overlap: exclusion-ограничение (btree_gist),
//     запрещающее пересекающиеся полуоткрытые диапазоны [start_day, end_day)
//     для одного юнита в блокирующих статусах hold/confirmed. Вместе с
//     сериализуемой транзакцией коммита оно исключает двойное бронирование
//     даже при гонке двух инстансов сервиса.
const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS calendars (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	version INT NOT NULL CHECK (version > 0),
	category TEXT NOT NULL DEFAULT 'reservations',
	currency TEXT NOT NULL DEFAULT 'USD',
	cancel_hours INT NOT NULL DEFAULT 48,
	cancel_fee NUMERIC(12, 2) NOT NULL DEFAULT 0,
	lead_min_days INT NOT NULL DEFAULT 0,
	lead_max_days INT NOT NULL DEFAULT 365,
	blackouts JSONB NOT NULL DEFAULT '[]',
	recurring_blackouts TEXT NOT NULL DEFAULT '',
	holidays JSONB NOT NULL DEFAULT '[]',
	min_stay_by_weekday JSONB NOT NULL DEFAULT '{}',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uq_calendars_name_version UNIQUE (name, version)
);

CREATE TABLE IF NOT EXISTS units (
	id BIGSERIAL PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	unit_key TEXT NOT NULL,
	name TEXT NOT NULL,
	unit_number TEXT NOT NULL DEFAULT '',
	rate NUMERIC(12, 2) NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT 'USD',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uq_units_tenant_key UNIQUE (tenant_id, unit_key)
);

CREATE TABLE IF NOT EXISTS unit_calendar_links (
	id BIGSERIAL PRIMARY KEY,
	unit_id BIGINT NOT NULL REFERENCES units(id) ON DELETE CASCADE,
	calendar_id BIGINT NOT NULL REFERENCES calendars(id),
	calendar_name TEXT NOT NULL,
	calendar_version INT NOT NULL,
	effective_date DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uq_unit_links UNIQUE (unit_id, calendar_id, effective_date)
);

CREATE TABLE IF NOT EXISTS reservations (
	id BIGSERIAL PRIMARY KEY,
	unit_id BIGINT NOT NULL REFERENCES units(id),
	unit_name TEXT NOT NULL DEFAULT '',
	unit_number TEXT NOT NULL DEFAULT '',
	calendar_id BIGINT NOT NULL,
	calendar_name TEXT NOT NULL DEFAULT '',
	calendar_version INT NOT NULL DEFAULT 1,
	start_day DATE NOT NULL,
	end_day DATE NOT NULL,
	rate NUMERIC(12, 2) NOT NULL,
	currency TEXT NOT NULL,
	cancel_hours INT NOT NULL,
	cancel_fee NUMERIC(12, 2) NOT NULL,
	guest JSONB,
	payment JSONB,
	status TEXT NOT NULL DEFAULT 'confirmed',
	cancellation_reason TEXT,
	cancelled_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT ck_reservations_range CHECK (start_day < end_day),
	CONSTRAINT ck_reservations_status CHECK (status IN ('hold', 'confirmed', 'cancelled')),
	CONSTRAINT ux_reservations_no_overlap EXCLUDE USING gist (
		unit_id WITH =,
		daterange(start_day, end_day) WITH &&
	) WHERE (status IN ('hold', 'confirmed'))
);

CREATE INDEX IF NOT EXISTS idx_reservations_unit_status_dates
	ON reservations (unit_id, status, start_day, end_day);

CREATE INDEX IF NOT EXISTS idx_unit_calendar_links_unit
	ON unit_calendar_links (unit_id, effective_date);
`

// Run применяет схему хранилища
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: failed to apply schema: %w", err)
	}
	return nil
}
