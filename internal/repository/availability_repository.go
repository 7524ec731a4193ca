package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

// AvailabilityRepo owns the recurring weekly template: for each
// (court, weekday) pair an ordered, non-overlapping list of priced
// windows.  Validation of the non-overlap invariant happens in the
// engine before anything reaches this repository; the repository only
// persists already-validated, sorted slot lists.  Template changes
// never touch existing bookings.
type AvailabilityRepo struct {
    db *sql.DB
}

// NewAvailabilityRepo constructs an AvailabilityRepo bound to the
// given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo {
    return &AvailabilityRepo{db: db}
}

const slotColumns = `id, court_id, weekday, start_min, end_min, price_per_hour, created_at, updated_at`

func scanSlot(row interface{ Scan(...any) error }, s *model.AvailabilitySlot) error {
    var wd int
    if err := row.Scan(&s.ID, &s.CourtID, &wd, &s.StartMin, &s.EndMin, &s.PricePerHour, &s.CreatedAt, &s.UpdatedAt); err != nil {
        return err
    }
    s.Weekday = time.Weekday(wd)
    return nil
}

// GetWeekly returns the slot list for one (court, weekday) ordered by
// start time.  An empty list means the court is closed that day.
func (r *AvailabilityRepo) GetWeekly(ctx context.Context, courtID uint64, weekday time.Weekday) ([]model.AvailabilitySlot, error) {
    const q = `SELECT ` + slotColumns + ` FROM availability_slots
               WHERE court_id = ? AND weekday = ?
               ORDER BY start_min`
    return r.query(ctx, r.db, q, courtID, int(weekday))
}

// GetWeeklyTx is GetWeekly inside an existing transaction.  The
// booking path reads the template through the transaction after the
// court locks are taken.
func (r *AvailabilityRepo) GetWeeklyTx(ctx context.Context, tx *sql.Tx, courtID uint64, weekday time.Weekday) ([]model.AvailabilitySlot, error) {
    const q = `SELECT ` + slotColumns + ` FROM availability_slots
               WHERE court_id = ? AND weekday = ?
               ORDER BY start_min`
    return r.query(ctx, tx, q, courtID, int(weekday))
}

// GetWeek returns a court's full weekly template ordered by weekday
// then start time.
func (r *AvailabilityRepo) GetWeek(ctx context.Context, courtID uint64) ([]model.AvailabilitySlot, error) {
    const q = `SELECT ` + slotColumns + ` FROM availability_slots
               WHERE court_id = ?
               ORDER BY weekday, start_min`
    return r.query(ctx, r.db, q, courtID)
}

// ListByCourtsAndWeekday loads the templates of several courts for
// one weekday in a single query, keyed by court id.  The venue slot
// listing uses this to avoid one query per court.
func (r *AvailabilityRepo) ListByCourtsAndWeekday(ctx context.Context, courtIDs []uint64, weekday time.Weekday) (map[uint64][]model.AvailabilitySlot, error) {
    out := make(map[uint64][]model.AvailabilitySlot, len(courtIDs))
    if len(courtIDs) == 0 {
        return out, nil
    }
    placeholders := make([]string, len(courtIDs))
    args := make([]any, 0, len(courtIDs)+1)
    for i, id := range courtIDs {
        placeholders[i] = "?"
        args = append(args, id)
    }
    args = append(args, int(weekday))
    q := `SELECT ` + slotColumns + ` FROM availability_slots
          WHERE court_id IN (` + strings.Join(placeholders, ",") + `) AND weekday = ?
          ORDER BY court_id, start_min`
    slots, err := r.query(ctx, r.db, q, args...)
    if err != nil {
        return nil, err
    }
    for _, s := range slots {
        out[s.CourtID] = append(out[s.CourtID], s)
    }
    return out, nil
}

// ReplaceWeekly atomically swaps the slot list for one (court,
// weekday): existing rows are deleted and the new list inserted in a
// single transaction, then read back so ids and timestamps are
// populated.  Passing an empty list clears the day.  The caller must
// have validated and sorted the slots via the engine first.
func (r *AvailabilityRepo) ReplaceWeekly(ctx context.Context, courtID uint64, weekday time.Weekday, slots []model.AvailabilitySlot) ([]model.AvailabilitySlot, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const del = `DELETE FROM availability_slots WHERE court_id = ? AND weekday = ?`
    if _, err := tx.ExecContext(ctx, del, courtID, int(weekday)); err != nil {
        return nil, err
    }
    if len(slots) > 0 {
        q := `INSERT INTO availability_slots (court_id, weekday, start_min, end_min, price_per_hour) VALUES `
        args := make([]any, 0, len(slots)*5)
        for i, s := range slots {
            if i > 0 {
                q += ","
            }
            q += "(?, ?, ?, ?, ?)"
            args = append(args, courtID, int(weekday), s.StartMin, s.EndMin, s.PricePerHour)
        }
        if _, err := tx.ExecContext(ctx, q, args...); err != nil {
            return nil, err
        }
    }
    const sel = `SELECT ` + slotColumns + ` FROM availability_slots
                 WHERE court_id = ? AND weekday = ?
                 ORDER BY start_min`
    stored, err := r.query(ctx, tx, sel, courtID, int(weekday))
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return stored, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
    QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *AvailabilityRepo) query(ctx context.Context, q querier, query string, args ...any) ([]model.AvailabilitySlot, error) {
    rows, err := q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.AvailabilitySlot, 0)
    for rows.Next() {
        var s model.AvailabilitySlot
        if err := scanSlot(rows, &s); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
