package alarm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusguard/internal/platform/clock"
	apperrors "focusguard/internal/platform/errors"
)

type SQLiteStore struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteStore(db *sql.DB, clk clock.Clock) (*SQLiteStore, error) {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	store := &SQLiteStore{db: db, clock: clk}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS alarms (
  name TEXT PRIMARY KEY,
  scheduled_at INTEGER NOT NULL,
  period_minutes INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create alarms table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, name string, info CreateInfo) error {
	if name == "" {
		return fmt.Errorf("%w: alarm name is required", apperrors.ErrInvalidInput)
	}
	if info.DelayMinutes < 0 || info.PeriodMinutes < 0 {
		return fmt.Errorf("%w: negative alarm timing for %s", apperrors.ErrInvalidInput, name)
	}
	delay := info.DelayMinutes
	if delay == 0 {
		delay = info.PeriodMinutes
	}
	if delay < 1 {
		delay = 1
	}
	at := s.clock.Now().Add(time.Duration(delay) * time.Minute)

	const stmt = `
INSERT INTO alarms (name, scheduled_at, period_minutes) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET scheduled_at=excluded.scheduled_at, period_minutes=excluded.period_minutes;
`
	if _, err := s.db.ExecContext(ctx, stmt, name, at.UnixMilli(), info.PeriodMinutes); err != nil {
		return fmt.Errorf("create alarm %s: %w", name, err)
	}
	return nil
}

// Clear removes the named alarm. Clearing an absent alarm is not an error.
func (s *SQLiteStore) Clear(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alarms WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("clear alarm %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("clear alarm %s: %w", name, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (Alarm, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT name, scheduled_at, period_minutes FROM alarms WHERE name = ?`, name)
	alarm, err := scanAlarm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Alarm{}, false, nil
	}
	if err != nil {
		return Alarm{}, false, fmt.Errorf("get alarm %s: %w", name, err)
	}
	return alarm, true, nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]Alarm, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, scheduled_at, period_minutes FROM alarms ORDER BY scheduled_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Due returns the alarms scheduled at or before now. One-shot alarms are
// deleted and repeating alarms move to their next occurrence after now, in
// the same transaction, so each occurrence is delivered once.
func (s *SQLiteStore) Due(ctx context.Context, now time.Time) ([]Alarm, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin alarm tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT name, scheduled_at, period_minutes FROM alarms WHERE scheduled_at <= ? ORDER BY scheduled_at, name`, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query due alarms: %w", err)
	}
	due, err := collect(rows)
	_ = rows.Close()
	if err != nil {
		return nil, err
	}

	for _, alarm := range due {
		if !alarm.Repeating() {
			if _, err := tx.ExecContext(ctx, `DELETE FROM alarms WHERE name = ?`, alarm.Name); err != nil {
				return nil, fmt.Errorf("consume alarm %s: %w", alarm.Name, err)
			}
			continue
		}
		next := nextOccurrence(alarm, now)
		if _, err := tx.ExecContext(ctx, `UPDATE alarms SET scheduled_at = ? WHERE name = ?`, next.UnixMilli(), alarm.Name); err != nil {
			return nil, fmt.Errorf("reschedule alarm %s: %w", alarm.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit alarm tx: %w", err)
	}
	return due, nil
}

func nextOccurrence(alarm Alarm, now time.Time) time.Time {
	period := time.Duration(alarm.PeriodMinutes) * time.Minute
	missed := now.Sub(alarm.ScheduledAt)/period + 1
	return alarm.ScheduledAt.Add(missed * period)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAlarm(row scanner) (Alarm, error) {
	var (
		alarm Alarm
		at    int64
	)
	if err := row.Scan(&alarm.Name, &at, &alarm.PeriodMinutes); err != nil {
		return Alarm{}, err
	}
	alarm.ScheduledAt = time.UnixMilli(at).UTC()
	return alarm, nil
}

func collect(rows *sql.Rows) ([]Alarm, error) {
	out := make([]Alarm, 0)
	for rows.Next() {
		alarm, err := scanAlarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alarm: %w", err)
		}
		out = append(out, alarm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alarms: %w", err)
	}
	return out, nil
}
