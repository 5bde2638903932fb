package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Defaults used when a setting has never been saved.
const (
	DefaultThresholdPPM = 1000
	DefaultContactPhone = "+37112345678"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

var _ SettingsRepo = (*SettingsSQLite)(nil)

// Both settings live in single-row tables keyed by id=1; saving upserts
// that one row.
const (
	settingsRowID = 1

	upsertThresholdSQL = `
		INSERT INTO co2_threshold (id, threshold) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET threshold=excluded.threshold
	`
	selectThresholdSQL = `SELECT threshold FROM co2_threshold WHERE id=?`

	upsertContactSQL = `
		INSERT INTO contact_phone (id, phone) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET phone=excluded.phone
	`
	selectContactSQL = `SELECT phone FROM contact_phone WHERE id=?`
)

func (r *SettingsSQLite) SaveThreshold(ctx context.Context, ppm int) error {
	if _, err := r.db.ExecContext(ctx, upsertThresholdSQL, settingsRowID, ppm); err != nil {
		return fmt.Errorf("save threshold: %w", err)
	}
	return nil
}

// LoadThreshold returns the saved threshold, or DefaultThresholdPPM if none
// was ever saved.
func (r *SettingsSQLite) LoadThreshold(ctx context.Context) (int, error) {
	var ppm int
	err := r.db.QueryRowContext(ctx, selectThresholdSQL, settingsRowID).Scan(&ppm)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultThresholdPPM, nil
		}
		return 0, fmt.Errorf("load threshold: %w", err)
	}
	return ppm, nil
}

func (r *SettingsSQLite) SaveContact(ctx context.Context, phone string) error {
	if _, err := r.db.ExecContext(ctx, upsertContactSQL, settingsRowID, phone); err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	return nil
}

// LoadContact returns the saved phone number, or DefaultContactPhone if none
// was ever saved.
func (r *SettingsSQLite) LoadContact(ctx context.Context) (string, error) {
	var phone string
	err := r.db.QueryRowContext(ctx, selectContactSQL, settingsRowID).Scan(&phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultContactPhone, nil
		}
		return "", fmt.Errorf("load contact: %w", err)
	}
	return phone, nil
}
