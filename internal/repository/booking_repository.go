package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrAlreadyCancelled is returned when cancelling a booking that has
// already been cancelled.  The stored record is left untouched.  It
// aliases the model sentinel so errors.Is matches either one.
var ErrAlreadyCancelled = model.ErrAlreadyCancelled

// BookingRepo is the booking ledger: it persists bookings and their
// court lines and answers "which bookings still occupy capacity" for
// a (court, date) pair.  Bookings are never deleted; cancel and
// complete only transition status.  The conflict-critical reads and
// writes come in *Tx variants so the booking handler can run them
// under the per-court locks of a single transaction.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
    return &BookingRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, reference, user_id, venue_id, sport, date, start_at, end_at, status,
                        subtotal, platform_fee, tax, total_price, notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
    var notes sql.NullString
    err := row.Scan(
        &b.ID, &b.Reference, &b.UserID, &b.VenueID, &b.Sport, &b.Date, &b.StartAt, &b.EndAt, &b.Status,
        &b.Subtotal, &b.PlatformFee, &b.Tax, &b.TotalPrice, &notes, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return err
    }
    if notes.Valid {
        n := notes.String
        b.Notes = &n
    }
    return nil
}

// ListActiveByCourtDate returns all bookings with status PENDING or
// CONFIRMED that reserve the court on the given date, ordered by
// start time.  This is the busy set the conflict detector works on.
func (r *BookingRepo) ListActiveByCourtDate(ctx context.Context, courtID uint64, date time.Time) ([]model.Booking, error) {
    return r.listActive(ctx, r.db, courtID, date)
}

// ListActiveByCourtDateTx is ListActiveByCourtDate inside an existing
// transaction.  Run after CourtRepo.LockTx so the result cannot change
// under the caller before commit.
func (r *BookingRepo) ListActiveByCourtDateTx(ctx context.Context, tx *sql.Tx, courtID uint64, date time.Time) ([]model.Booking, error) {
    return r.listActive(ctx, tx, courtID, date)
}

func (r *BookingRepo) listActive(ctx context.Context, q querier, courtID uint64, date time.Time) ([]model.Booking, error) {
    const query = `SELECT b.id, b.reference, b.user_id, b.venue_id, b.sport, b.date, b.start_at, b.end_at, b.status,
                          b.subtotal, b.platform_fee, b.tax, b.total_price, b.notes, b.created_at, b.updated_at
                   FROM bookings b
                   JOIN booking_courts bc ON bc.booking_id = b.id
                   WHERE bc.court_id = ? AND b.date = ? AND b.status IN ('PENDING', 'CONFIRMED')
                   ORDER BY b.start_at`
    rows, err := q.QueryContext(ctx, query, courtID, date.Format("2006-01-02"))
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        if err := scanBooking(rows, &b); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated id and timestamps on the
// provided record.  The caller must commit or rollback; court lines
// are added separately via AddCourtsTx.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (reference, user_id, venue_id, sport, date, start_at, end_at, status, subtotal, platform_fee, tax, total_price, notes)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        b.Reference, b.UserID, b.VenueID, b.Sport, b.Date.Format("2006-01-02"),
        b.StartAt, b.EndAt, b.Status, b.Subtotal, b.PlatformFee, b.Tax, b.TotalPrice, b.Notes,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    return scanBooking(tx.QueryRowContext(ctx, sel, b.ID), b)
}

// AddCourtsTx inserts the court lines of a booking in a single
// statement.  Passing an empty slice has no effect and returns nil.
func (r *BookingRepo) AddCourtsTx(ctx context.Context, tx *sql.Tx, lines []model.BookingCourt) error {
    if len(lines) == 0 {
        return nil
    }
    q := `INSERT INTO booking_courts (booking_id, court_id, price_per_hour) VALUES `
    args := make([]any, 0, len(lines)*3)
    for i, l := range lines {
        if i > 0 {
            q += ","
        }
        q += "(?, ?, ?)"
        args = append(args, l.BookingID, l.CourtID, l.PricePerHour)
    }
    _, err := tx.ExecContext(ctx, q, args...)
    return err
}

// GetForUpdateTx loads a booking with SELECT ... FOR UPDATE so that a
// status transition can be checked and applied without racing a
// concurrent transition on the same booking.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
    var b model.Booking
    if err := scanBooking(tx.QueryRowContext(ctx, q, id), &b); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// CancelTx transitions a booking to CANCELLED within the given
// transaction.  It returns ErrBookingNotFound when the booking does
// not exist, ErrAlreadyCancelled when it was cancelled before, and
// ErrConflict when the booking is COMPLETED.  The updated record is
// returned on success.  Cancelling only ever frees capacity, so no
// court locks are needed beyond the row lock taken here.  The
// transition rules themselves live in the model package.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    b, err := r.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        return nil, err
    }
    if err := model.CanCancel(b.Status); err != nil {
        if errors.Is(err, model.ErrInvalidTransition) {
            return nil, ErrConflict
        }
        return nil, err
    }
    return r.setStatusTx(ctx, tx, b, model.BookingStatusCancelled)
}

// ConfirmTx transitions PENDING to CONFIRMED.  Any other current
// status yields ErrConflict.
func (r *BookingRepo) ConfirmTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    b, err := r.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        return nil, err
    }
    if err := model.CanConfirm(b.Status); err != nil {
        return nil, ErrConflict
    }
    return r.setStatusTx(ctx, tx, b, model.BookingStatusConfirmed)
}

// CompleteTx transitions CONFIRMED to COMPLETED once the booked
// interval has elapsed.  Completion is informational: COMPLETED
// bookings no longer appear in the active set.  ErrConflict is
// returned when the status is not CONFIRMED or the interval has not
// finished yet.
func (r *BookingRepo) CompleteTx(ctx context.Context, tx *sql.Tx, id uint64, now time.Time) (*model.Booking, error) {
    b, err := r.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        return nil, err
    }
    if err := model.CanComplete(b.Status, b.EndAt, now); err != nil {
        return nil, ErrConflict
    }
    return r.setStatusTx(ctx, tx, b, model.BookingStatusCompleted)
}

func (r *BookingRepo) setStatusTx(ctx context.Context, tx *sql.Tx, b *model.Booking, status string) (*model.Booking, error) {
    const q = `UPDATE bookings SET status = ? WHERE id = ?`
    if _, err := tx.ExecContext(ctx, q, status, b.ID); err != nil {
        return nil, err
    }
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    var updated model.Booking
    if err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID), &updated); err != nil {
        return nil, err
    }
    return &updated, nil
}

// CourtLine is one court of a booking detail together with its name
// and the hourly rate it was booked at.
type CourtLine struct {
    CourtID      uint64 `json:"court_id"`
    CourtName    string `json:"court_name"`
    PricePerHour int64  `json:"price_per_hour"`
}

// BookingDetail aggregates a booking with its venue name and court
// lines for display to players and owners.
type BookingDetail struct {
    ID          uint64      `json:"id"`
    Reference   string      `json:"reference"`
    UserID      uint64      `json:"user_id"`
    VenueID     uint64      `json:"venue_id"`
    VenueName   string      `json:"venue_name"`
    Sport       string      `json:"sport"`
    Date        string      `json:"date"`
    StartAt     time.Time   `json:"start_at"`
    EndAt       time.Time   `json:"end_at"`
    Status      string      `json:"status"`
    Subtotal    int64       `json:"subtotal"`
    PlatformFee int64       `json:"platform_fee"`
    Tax         int64       `json:"tax"`
    TotalPrice  int64       `json:"total_price"`
    Notes       *string     `json:"notes,omitempty"`
    Courts      []CourtLine `json:"courts"`
}

const detailColumns = `b.id, b.reference, b.user_id, b.venue_id, v.name, b.sport, b.date, b.start_at, b.end_at,
                       b.status, b.subtotal, b.platform_fee, b.tax, b.total_price, b.notes`

func scanDetail(row interface{ Scan(...any) error }, d *BookingDetail) error {
    var date time.Time
    var notes sql.NullString
    err := row.Scan(
        &d.ID, &d.Reference, &d.UserID, &d.VenueID, &d.VenueName, &d.Sport, &date, &d.StartAt, &d.EndAt,
        &d.Status, &d.Subtotal, &d.PlatformFee, &d.Tax, &d.TotalPrice, &notes,
    )
    if err != nil {
        return err
    }
    d.Date = date.Format("2006-01-02")
    if notes.Valid {
        n := notes.String
        d.Notes = &n
    }
    d.Courts = []CourtLine{}
    return nil
}

// GetDetailForUser returns a single booking for the given user with
// its court lines populated.  Ownership is enforced in the query, so
// a foreign booking reads as ErrBookingNotFound.
func (r *BookingRepo) GetDetailForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
    const q = `SELECT ` + detailColumns + `
               FROM bookings b
               JOIN venues v ON v.id = b.venue_id
               WHERE b.id = ? AND b.user_id = ?`
    var d BookingDetail
    if err := scanDetail(r.db.QueryRowContext(ctx, q, bookingID, userID), &d); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    if err := r.fillCourts(ctx, []*BookingDetail{&d}); err != nil {
        return nil, err
    }
    return &d, nil
}

// ListByUser returns all bookings of a player, newest first, with
// court lines populated in a single follow-up query.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*BookingDetail, error) {
    const q = `SELECT ` + detailColumns + `
               FROM bookings b
               JOIN venues v ON v.id = b.venue_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
    return r.listDetails(ctx, q, userID)
}

// ListByVenueForOwner returns the bookings of a venue for its owner,
// optionally restricted to one date.  It verifies ownership first and
// returns ErrForbidden when the venue belongs to someone else,
// ErrVenueNotFound when it does not exist.
func (r *BookingRepo) ListByVenueForOwner(ctx context.Context, venueID, ownerID uint64, date *time.Time) ([]*BookingDetail, error) {
    const checkQ = `SELECT owner_id FROM venues WHERE id = ?`
    var actualOwnerID uint64
    if err := r.db.QueryRowContext(ctx, checkQ, venueID).Scan(&actualOwnerID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrVenueNotFound
        }
        return nil, err
    }
    if actualOwnerID != ownerID {
        return nil, ErrForbidden
    }
    q := `SELECT ` + detailColumns + `
          FROM bookings b
          JOIN venues v ON v.id = b.venue_id
          WHERE b.venue_id = ?`
    args := []any{venueID}
    if date != nil {
        q += ` AND b.date = ?`
        args = append(args, date.Format("2006-01-02"))
    }
    q += ` ORDER BY b.start_at`
    return r.listDetails(ctx, q, args...)
}

func (r *BookingRepo) listDetails(ctx context.Context, q string, args ...any) ([]*BookingDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    details := make([]*BookingDetail, 0)
    for rows.Next() {
        d := new(BookingDetail)
        if err := scanDetail(rows, d); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if err := r.fillCourts(ctx, details); err != nil {
        return nil, err
    }
    return details, nil
}

// fillCourts populates the court lines of the given details in one
// query, matching rows back to their booking by id.
func (r *BookingRepo) fillCourts(ctx context.Context, details []*BookingDetail) error {
    if len(details) == 0 {
        return nil
    }
    index := make(map[uint64]*BookingDetail, len(details))
    placeholders := make([]string, 0, len(details))
    args := make([]any, 0, len(details))
    for _, d := range details {
        index[d.ID] = d
        placeholders = append(placeholders, "?")
        args = append(args, d.ID)
    }
    q := `SELECT bc.booking_id, bc.court_id, c.name, bc.price_per_hour
          FROM booking_courts bc
          JOIN courts c ON c.id = bc.court_id
          WHERE bc.booking_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY bc.booking_id, bc.court_id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return err
    }
    defer rows.Close()
    for rows.Next() {
        var bookingID uint64
        var line CourtLine
        if err := rows.Scan(&bookingID, &line.CourtID, &line.CourtName, &line.PricePerHour); err != nil {
            return err
        }
        if d, ok := index[bookingID]; ok {
            d.Courts = append(d.Courts, line)
        }
    }
    return rows.Err()
}
