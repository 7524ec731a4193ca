package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

// ErrCourtNotFound is returned when a court lookup fails, including
// when a booking request names a court that does not exist in the
// venue for the requested sport.
var ErrCourtNotFound = errors.New("court not found")

// CourtRepo provides methods to create and retrieve courts and to
// lock them during booking transactions.
type CourtRepo struct {
    db *sql.DB
}

// NewCourtRepo constructs a CourtRepo with the given DB handle.
func NewCourtRepo(db *sql.DB) *CourtRepo {
    return &CourtRepo{db: db}
}

const courtColumns = `id, venue_id, name, sport, is_active, created_at, updated_at`

func scanCourt(row interface{ Scan(...any) error }, c *model.Court) error {
    return row.Scan(&c.ID, &c.VenueID, &c.Name, &c.Sport, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new court.  VenueID, Name and Sport must be set.
// After insert the record is read back so defaults and timestamps are
// populated.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
    const qInsert = `INSERT INTO courts (venue_id, name, sport) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, c.VenueID, c.Name, c.Sport)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)

    const qSelect = `SELECT ` + courtColumns + ` FROM courts WHERE id = ?`
    return scanCourt(r.db.QueryRowContext(ctx, qSelect, c.ID), c)
}

// GetByID retrieves a court by its ID.  It returns ErrCourtNotFound
// when no row is found.
func (r *CourtRepo) GetByID(ctx context.Context, id uint64) (*model.Court, error) {
    const q = `SELECT ` + courtColumns + ` FROM courts WHERE id = ?`
    var c model.Court
    if err := scanCourt(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCourtNotFound
        }
        return nil, err
    }
    return &c, nil
}

// GetByIDAndOwner retrieves a court only if its venue belongs to the
// given owner.  Used by the template editor to enforce ownership.
// Returns ErrCourtNotFound when the court does not exist and
// ErrForbidden when it belongs to another owner's venue.
func (r *CourtRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Court, error) {
    const q = `SELECT c.id, c.venue_id, c.name, c.sport, c.is_active, c.created_at, c.updated_at, v.owner_id
               FROM courts c
               JOIN venues v ON v.id = c.venue_id
               WHERE c.id = ?`
    var c model.Court
    var actualOwnerID uint64
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &c.ID, &c.VenueID, &c.Name, &c.Sport, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &actualOwnerID,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCourtNotFound
        }
        return nil, err
    }
    if actualOwnerID != ownerID {
        return nil, ErrForbidden
    }
    return &c, nil
}

// ListByVenue returns all courts inside a venue ordered by id.
func (r *CourtRepo) ListByVenue(ctx context.Context, venueID uint64) ([]*model.Court, error) {
    const q = `SELECT ` + courtColumns + ` FROM courts WHERE venue_id = ? ORDER BY id`
    return r.list(ctx, q, venueID)
}

// ListActiveByVenueAndSport returns the active courts of a venue for
// one sport ordered by id.  This is the court set the slot listing
// and booking path operate on.
func (r *CourtRepo) ListActiveByVenueAndSport(ctx context.Context, venueID uint64, sport string) ([]*model.Court, error) {
    const q = `SELECT ` + courtColumns + ` FROM courts
               WHERE venue_id = ? AND sport = ? AND is_active = 1
               ORDER BY id`
    return r.list(ctx, q, venueID, sport)
}

// ResolveByNames maps the court names of a booking request onto court
// records for the venue and sport.  Every requested name must match
// an active court or ErrCourtNotFound is returned; the result is
// ordered by id so later locking is deadlock-free.
func (r *CourtRepo) ResolveByNames(ctx context.Context, venueID uint64, sport string, names []string) ([]*model.Court, error) {
    courts, err := r.ListActiveByVenueAndSport(ctx, venueID, sport)
    if err != nil {
        return nil, err
    }
    byName := make(map[string]*model.Court, len(courts))
    for _, c := range courts {
        byName[strings.ToLower(c.Name)] = c
    }
    out := make([]*model.Court, 0, len(names))
    seen := make(map[uint64]struct{}, len(names))
    for _, n := range names {
        c, ok := byName[strings.ToLower(strings.TrimSpace(n))]
        if !ok {
            return nil, ErrCourtNotFound
        }
        if _, dup := seen[c.ID]; dup {
            continue
        }
        seen[c.ID] = struct{}{}
        out = append(out, c)
    }
    // Preserve id order regardless of the order names arrived in.
    for i := 1; i < len(out); i++ {
        for j := i; j > 0 && out[j-1].ID > out[j].ID; j-- {
            out[j-1], out[j] = out[j], out[j-1]
        }
    }
    return out, nil
}

// LockTx locks the given court rows with SELECT ... FOR UPDATE inside
// the provided transaction.  Booking creation takes these locks, in
// ascending id order, before re-running the conflict check so that
// two concurrent requests for the same court serialize and the loser
// observes the winner's booking.
func (r *CourtRepo) LockTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
    if len(ids) == 0 {
        return nil
    }
    placeholders := make([]string, len(ids))
    args := make([]any, len(ids))
    for i, id := range ids {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `SELECT id FROM courts WHERE id IN (` + strings.Join(placeholders, ",") + `) ORDER BY id FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return err
    }
    defer rows.Close()
    locked := 0
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return err
        }
        locked++
    }
    if err := rows.Err(); err != nil {
        return err
    }
    if locked != len(ids) {
        return ErrCourtNotFound
    }
    return nil
}

func (r *CourtRepo) list(ctx context.Context, q string, args ...any) ([]*model.Court, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]*model.Court, 0)
    for rows.Next() {
        c := new(model.Court)
        if err := scanCourt(rows, c); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}
