package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SwitchStore = (*WaffleSwitchRepo)(nil)

// WaffleSwitchRepo is the SQLite implementation of the SwitchStore port interface.
type WaffleSwitchRepo struct {
	db  *DB
	now func() time.Time
}

// NewWaffleSwitchRepo creates a new WaffleSwitchRepo backed by the given DB.
func NewWaffleSwitchRepo(db *DB) *WaffleSwitchRepo {
	return &WaffleSwitchRepo{db: db, now: time.Now}
}

// IsReady reports whether the switch table can be queried. It returns false
// when the database is closed or the migration creating the table has not run.
func (r *WaffleSwitchRepo) IsReady(ctx context.Context) bool {
	var n int
	err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM waffle_switch`).Scan(&n)
	return err == nil
}

// IsActive returns the state of the named switch. A switch with no row is
// not set and reported as inactive without error.
func (r *WaffleSwitchRepo) IsActive(ctx context.Context, name string) (bool, error) {
	const query = `SELECT active FROM waffle_switch WHERE name = ?`

	var active bool
	err := r.db.Reader.QueryRowContext(ctx, query, name).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get waffle switch %q: %w", name, err)
	}

	return active, nil
}

// Set creates the named switch or updates its state. An empty note keeps the
// existing note on update.
func (r *WaffleSwitchRepo) Set(ctx context.Context, name string, active bool, note string) error {
	if name == "" || utf8.RuneCountInString(name) > model.MaxSwitchNameLength {
		return fmt.Errorf("waffle switch name must be 1 to %d characters", model.MaxSwitchNameLength)
	}

	const query = `
		INSERT INTO waffle_switch (name, active, note, created, modified)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			active = excluded.active,
			note = CASE WHEN excluded.note = '' THEN waffle_switch.note ELSE excluded.note END,
			modified = excluded.modified
	`

	now := r.now().UTC().Format(time.RFC3339Nano)
	if _, err := r.db.Writer.ExecContext(ctx, query, name, active, note, now, now); err != nil {
		return fmt.Errorf("set waffle switch %q: %w", name, err)
	}

	return nil
}

// Delete removes the named switch. Returns driven.ErrNotFound if it does not exist.
func (r *WaffleSwitchRepo) Delete(ctx context.Context, name string) error {
	result, err := r.db.Writer.ExecContext(ctx, `DELETE FROM waffle_switch WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete waffle switch %q: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("waffle switch %q: %w", name, driven.ErrNotFound)
	}

	return nil
}

// ListAll returns every stored switch ordered by name.
func (r *WaffleSwitchRepo) ListAll(ctx context.Context) ([]model.WaffleSwitch, error) {
	const query = `SELECT name, active, note, created, modified FROM waffle_switch ORDER BY name`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list waffle switches: %w", err)
	}
	defer rows.Close()

	switches := []model.WaffleSwitch{}
	for rows.Next() {
		var (
			s                 model.WaffleSwitch
			created, modified string
		)
		if err := rows.Scan(&s.Name, &s.Active, &s.Note, &created, &modified); err != nil {
			return nil, fmt.Errorf("scan waffle switch: %w", err)
		}

		if s.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created: %w", err)
		}
		if s.Modified, err = time.Parse(time.RFC3339Nano, modified); err != nil {
			return nil, fmt.Errorf("parse modified: %w", err)
		}

		switches = append(switches, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waffle switches: %w", err)
	}

	return switches, nil
}
