package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

// ErrVenueNotFound is returned when a venue lookup fails.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo provides methods to create and retrieve venues.  It
// embeds a database handle to perform queries and commands.
type VenueRepo struct {
    db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
    return &VenueRepo{db: db}
}

const venueColumns = `id, owner_id, name, city, description, status, created_at, updated_at`

func scanVenue(row interface{ Scan(...any) error }, v *model.Venue) error {
    var desc sql.NullString
    if err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.City, &desc, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
        return err
    }
    if desc.Valid {
        d := desc.String
        v.Description = &d
    }
    return nil
}

// Create inserts a new venue. OwnerID, Name and City must be set.
// New venues start in PENDING status via the column default.  After
// insert the record is read back so timestamps and status are
// populated.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
    const qInsert = `INSERT INTO venues (owner_id, name, city, description) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, v.OwnerID, v.Name, v.City, v.Description)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    v.ID = uint64(id)

    const qSelect = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
    return scanVenue(r.db.QueryRowContext(ctx, qSelect, v.ID), v)
}

// GetByID retrieves a venue by its ID regardless of owner.  It
// returns ErrVenueNotFound when no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
    const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
    var v model.Venue
    if err := scanVenue(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrVenueNotFound
        }
        return nil, err
    }
    return &v, nil
}

// GetByIDAndOwner retrieves a venue but only if it belongs to the
// given owner.  This helper is used to enforce resource ownership.
// If no matching venue is found, ErrVenueNotFound is returned.
func (r *VenueRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Venue, error) {
    const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ? AND owner_id = ?`
    var v model.Venue
    if err := scanVenue(r.db.QueryRowContext(ctx, q, id, ownerID), &v); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrVenueNotFound
        }
        return nil, err
    }
    return &v, nil
}

// UpdateStatus sets the status of a venue owned by the given owner
// and returns the updated record.  ErrVenueNotFound is returned when
// the venue does not exist or belongs to someone else.
func (r *VenueRepo) UpdateStatus(ctx context.Context, id, ownerID uint64, status string) (*model.Venue, error) {
    if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
        return nil, err
    }
    const q = `UPDATE venues SET status = ? WHERE id = ? AND owner_id = ?`
    if _, err := r.db.ExecContext(ctx, q, status, id, ownerID); err != nil {
        return nil, err
    }
    return r.GetByIDAndOwner(ctx, id, ownerID)
}

// ListByOwner returns all venues belonging to an owner ordered by id.
func (r *VenueRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Venue, error) {
    const q = `SELECT ` + venueColumns + ` FROM venues WHERE owner_id = ? ORDER BY id`
    return r.list(ctx, q, ownerID)
}

// ListActive returns all venues players may browse and book.
func (r *VenueRepo) ListActive(ctx context.Context) ([]*model.Venue, error) {
    const q = `SELECT ` + venueColumns + ` FROM venues WHERE status = 'ACTIVE' ORDER BY id`
    return r.list(ctx, q)
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]*model.Venue, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]*model.Venue, 0)
    for rows.Next() {
        v := new(model.Venue)
        if err := scanVenue(rows, v); err != nil {
            return nil, err
        }
        out = append(out, v)
    }
    return out, rows.Err()
}
