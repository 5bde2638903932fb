package repository

import (
	"context"
	"database/sql"
	"fmt"

	"co2watch/internal/models"
)

type ScheduleSQLite struct {
	db *sql.DB
}

func NewScheduleSQLite(db *sql.DB) *ScheduleSQLite {
	return &ScheduleSQLite{db: db}
}

var _ ScheduleRepo = (*ScheduleSQLite)(nil)

const (
	deleteScheduleSQL = `DELETE FROM schedule`
	insertScheduleSQL = `INSERT INTO schedule (day, hour, classroom) VALUES (?, ?, ?)`
	selectScheduleSQL = `SELECT day, hour, classroom FROM schedule ORDER BY day, hour`
)

// SaveTimetable replaces the persisted timetable with the given rows.
// Clear-then-insert runs in one transaction so a failed save never leaves a
// half-written schedule behind.
func (r *ScheduleSQLite) SaveTimetable(ctx context.Context, rows []models.TimetableRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteScheduleSQL); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insertScheduleSQL, row.Day, row.Hour, row.Classroom); err != nil {
			return fmt.Errorf("insert schedule row (%s, %d): %w", row.Day, row.Hour, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule tx: %w", err)
	}
	return nil
}

// LoadTimetable returns all persisted rows. An empty table yields an empty
// slice, not an error.
func (r *ScheduleSQLite) LoadTimetable(ctx context.Context) ([]models.TimetableRow, error) {
	rows, err := r.db.QueryContext(ctx, selectScheduleSQL)
	if err != nil {
		return nil, fmt.Errorf("select schedule: %w", err)
	}
	defer rows.Close()

	out := make([]models.TimetableRow, 0, 16)
	for rows.Next() {
		var row models.TimetableRow
		if err := rows.Scan(&row.Day, &row.Hour, &row.Classroom); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
