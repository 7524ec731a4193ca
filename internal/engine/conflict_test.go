package engine

import (
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

func booking(startHour, startMin, endHour, endMin int) model.Booking {
    day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
    return model.Booking{
        Status:  model.BookingStatusConfirmed,
        Date:    day,
        StartAt: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
        EndAt:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
    }
}

func TestBusyIntervals(t *testing.T) {
    busy := BusyIntervals([]model.Booking{
        booking(18, 0, 19, 0),
        booking(9, 30, 11, 0),
    })
    require.Len(t, busy, 2)
    assert.Equal(t, Interval{9*60 + 30, 11 * 60}, busy[0], "sorted by start")
    assert.Equal(t, Interval{18 * 60, 19 * 60}, busy[1])
}

func TestBusyIntervalsMidnightEnd(t *testing.T) {
    // A booking running to the following midnight maps to end of day.
    busy := BusyIntervals([]model.Booking{booking(22, 0, 24, 0)})
    require.Len(t, busy, 1)
    assert.Equal(t, Interval{22 * 60, MinutesPerDay}, busy[0])
}

func TestCheckBookableHappyPath(t *testing.T) {
    template := []model.AvailabilitySlot{slot(6*60, 12*60, 500), slot(17*60, 22*60, 700)}

    got, err := CheckBookable(template, nil, Interval{18 * 60, 19 * 60})
    require.NoError(t, err)
    assert.Equal(t, int64(700), got.PricePerHour, "matched slot carries the evening rate")

    got, err = CheckBookable(template, nil, Interval{6 * 60, 12 * 60})
    require.NoError(t, err)
    assert.Equal(t, int64(500), got.PricePerHour, "a full window is bookable")
}

func TestCheckBookableOutsideAvailability(t *testing.T) {
    template := []model.AvailabilitySlot{slot(6*60, 12*60, 500)}

    _, err := CheckBookable(template, nil, Interval{13 * 60, 14 * 60})
    assert.ErrorIs(t, err, ErrNotWithinAvailability)

    // Partially outside counts as outside.
    _, err = CheckBookable(template, nil, Interval{11 * 60, 13 * 60})
    assert.ErrorIs(t, err, ErrNotWithinAvailability)

    // Closed day: empty template.
    _, err = CheckBookable(nil, nil, Interval{9 * 60, 10 * 60})
    assert.ErrorIs(t, err, ErrNotWithinAvailability)
}

func TestCheckBookableSpanningTwoWindows(t *testing.T) {
    // Adjacent windows do not merge; a candidate must fit one window.
    template := []model.AvailabilitySlot{slot(6*60, 12*60, 500), slot(12*60, 18*60, 700)}
    _, err := CheckBookable(template, nil, Interval{11 * 60, 13 * 60})
    assert.ErrorIs(t, err, ErrNotWithinAvailability)
}

func TestCheckBookableConflicts(t *testing.T) {
    template := []model.AvailabilitySlot{slot(6*60, 22*60, 500)}
    busy := []Interval{{18 * 60, 19 * 60}}

    _, err := CheckBookable(template, busy, Interval{18 * 60, 19 * 60})
    assert.ErrorIs(t, err, ErrSlotAlreadyBooked, "identical interval")

    _, err = CheckBookable(template, busy, Interval{18*60 + 30, 19*60 + 30})
    assert.ErrorIs(t, err, ErrSlotAlreadyBooked, "partial overlap")

    _, err = CheckBookable(template, busy, Interval{17 * 60, 20 * 60})
    assert.ErrorIs(t, err, ErrSlotAlreadyBooked, "enclosing interval")

    // Half-open boundaries: back to back with the busy interval is fine.
    _, err = CheckBookable(template, busy, Interval{19 * 60, 20 * 60})
    assert.NoError(t, err, "start at busy end")
    _, err = CheckBookable(template, busy, Interval{17 * 60, 18 * 60})
    assert.NoError(t, err, "end at busy start")
}

func TestCheckBookableInvalidCandidate(t *testing.T) {
    template := []model.AvailabilitySlot{slot(0, MinutesPerDay, 500)}
    _, err := CheckBookable(template, nil, Interval{10 * 60, 10 * 60})
    assert.ErrorIs(t, err, ErrInvalidSlot)
    _, err = CheckBookable(template, nil, Interval{11 * 60, 10 * 60})
    assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCancelFreesCapacity(t *testing.T) {
    template := []model.AvailabilitySlot{slot(6*60, 22*60, 500)}
    active := []model.Booking{booking(18, 0, 19, 0)}

    _, err := CheckBookable(template, BusyIntervals(active), Interval{18 * 60, 19 * 60})
    require.ErrorIs(t, err, ErrSlotAlreadyBooked)

    // Cancelled bookings leave the active set and the slot opens up.
    active[0].Status = model.BookingStatusCancelled
    remaining := active[:0:0]
    for _, b := range active {
        if model.BookingActive(b.Status) {
            remaining = append(remaining, b)
        }
    }
    _, err = CheckBookable(template, BusyIntervals(remaining), Interval{18 * 60, 19 * 60})
    assert.NoError(t, err)
}

// Full evening flow on one court: book, collide, miss the window,
// cancel, rebook.
func TestMondayEveningFlow(t *testing.T) {
    template := []model.AvailabilitySlot{slot(18*60, 20*60, 500)}
    var busy []Interval

    matched, err := CheckBookable(template, busy, Interval{18 * 60, 19 * 60})
    require.NoError(t, err)
    quote := PriceQuote(matched.PricePerHour, 60, 1)
    assert.Equal(t, Quote{Subtotal: 500, PlatformFee: 25, Tax: 95, Total: 620}, quote)
    busy = append(busy, Interval{18 * 60, 19 * 60})

    _, err = CheckBookable(template, busy, Interval{18*60 + 30, 19*60 + 30})
    assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

    _, err = CheckBookable(template, busy, Interval{20 * 60, 21 * 60})
    assert.ErrorIs(t, err, ErrNotWithinAvailability)

    // Cancelling drops the interval from the busy set and the slot
    // becomes bookable again.
    busy = busy[:0]
    _, err = CheckBookable(template, busy, Interval{18 * 60, 19 * 60})
    assert.NoError(t, err)
}

// courtLedger is a minimal in-memory stand-in for the booking
// transaction: the mutex plays the role of the court row lock, and
// CheckBookable runs against current state before the insert.
type courtLedger struct {
    mu       sync.Mutex
    template []model.AvailabilitySlot
    busy     []Interval
}

func (l *courtLedger) book(candidate Interval) error {
    l.mu.Lock()
    defer l.mu.Unlock()
    if _, err := CheckBookable(l.template, l.busy, candidate); err != nil {
        return err
    }
    l.busy = append(l.busy, candidate)
    return nil
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
    ledger := &courtLedger{template: []model.AvailabilitySlot{slot(6*60, 22*60, 500)}}
    target := Interval{18 * 60, 19 * 60}

    const racers = 16
    var wg sync.WaitGroup
    errs := make([]error, racers)
    for i := 0; i < racers; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            errs[i] = ledger.book(target)
        }(i)
    }
    wg.Wait()

    winners := 0
    for _, err := range errs {
        if err == nil {
            winners++
        } else {
            assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
        }
    }
    assert.Equal(t, 1, winners, "exactly one racer may hold the slot")
    require.Len(t, ledger.busy, 1)
}
