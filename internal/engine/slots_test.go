package engine

import (
    "math/rand"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

func TestFreeWindows(t *testing.T) {
    window := Interval{6 * 60, 22 * 60}

    assert.Equal(t, []Interval{window}, FreeWindows(window, nil), "no bookings leaves the window whole")

    free := FreeWindows(window, []Interval{{18 * 60, 19 * 60}})
    assert.Equal(t, []Interval{{6 * 60, 18 * 60}, {19 * 60, 22 * 60}}, free)

    // Unsorted busy input and a booking clipped by the window edge.
    free = FreeWindows(window, []Interval{{20 * 60, 23 * 60}, {5 * 60, 7 * 60}})
    assert.Equal(t, []Interval{{7 * 60, 20 * 60}}, free)

    // Fully booked.
    assert.Empty(t, FreeWindows(window, []Interval{{6 * 60, 22 * 60}}))
}

func TestStartAndEndOptions(t *testing.T) {
    template := []model.AvailabilitySlot{slot(6*60, 12*60, 500)}
    busy := []Interval{{9 * 60, 10 * 60}}

    starts := StartOptions(template, busy, 60, 60)
    assert.Equal(t, []int{6 * 60, 7 * 60, 8 * 60, 10 * 60, 11 * 60}, starts)

    // From 07:00 the grid grows until it hits the 09:00 booking.
    ends := EndOptions(template, busy, 7*60, 60)
    assert.Equal(t, []int{8 * 60, 9 * 60}, ends)

    // From 10:00 it runs to the end of the window.
    ends = EndOptions(template, busy, 10*60, 60)
    assert.Equal(t, []int{11 * 60, 12 * 60}, ends)
}

// Property: no offered start or end option ever produces an interval
// overlapping an active booking or leaving the template.
func TestOptionsNeverCollide(t *testing.T) {
    rng := rand.New(rand.NewSource(7))
    for trial := 0; trial < 200; trial++ {
        template := []model.AvailabilitySlot{slot(6*60, 22*60, 500)}

        var busy []Interval
        cursor := 6 * 60
        for cursor < 21*60 && rng.Intn(3) > 0 {
            start := cursor + rng.Intn(3)*30
            end := start + 30 + rng.Intn(4)*30
            if end > 22*60 {
                break
            }
            busy = append(busy, Interval{start, end})
            cursor = end + rng.Intn(3)*30
        }

        step := 30
        for _, s := range StartOptions(template, busy, step, step) {
            _, err := CheckBookable(template, busy, Interval{s, s + step})
            require.NoError(t, err, "start option %s with busy %v", FormatClock(s), busy)
            for _, e := range EndOptions(template, busy, s, step) {
                _, err := CheckBookable(template, busy, Interval{s, e})
                require.NoError(t, err, "option %s-%s with busy %v", FormatClock(s), FormatClock(e), busy)
            }
        }
    }
}

func TestEditorHelpers(t *testing.T) {
    existing := []model.AvailabilitySlot{slot(6*60, 12*60, 500), slot(17*60, 22*60, 700)}

    assert.False(t, EditorStartAllowed(existing, 9*60), "inside first window")
    assert.True(t, EditorStartAllowed(existing, 12*60), "on a window end boundary")
    assert.True(t, EditorStartAllowed(existing, 14*60))
    assert.False(t, EditorStartAllowed(existing, -1))
    assert.False(t, EditorStartAllowed(existing, MinutesPerDay))

    assert.Equal(t, 17*60, EditorEndLimit(existing, 12*60), "capped by next window")
    assert.Equal(t, MinutesPerDay, EditorEndLimit(existing, 22*60), "nothing after the last window")
}

func courtDay(id uint64, template []model.AvailabilitySlot, busy []Interval) CourtDay {
    return CourtDay{
        Court:    model.Court{ID: id, Name: "Court", Sport: "badminton", IsActive: true},
        Template: template,
        Busy:     busy,
    }
}

func TestAggregateVenueSlots(t *testing.T) {
    // Two courts with identical pricing; one has an evening booking.
    rows := AggregateVenueSlots([]CourtDay{
        courtDay(1, []model.AvailabilitySlot{slot(17*60, 22*60, 700)}, []Interval{{18 * 60, 19 * 60}}),
        courtDay(2, []model.AvailabilitySlot{slot(17*60, 22*60, 700)}, nil),
    })
    assert.Equal(t, []VenueSlot{
        {Interval: Interval{17 * 60, 18 * 60}, AvailableCourts: 2, PricePerHour: 700},
        {Interval: Interval{18 * 60, 19 * 60}, AvailableCourts: 1, PricePerHour: 700},
        {Interval: Interval{19 * 60, 22 * 60}, AvailableCourts: 2, PricePerHour: 700},
    }, rows)
}

func TestAggregateVenueSlotsMixedPrices(t *testing.T) {
    // Differently priced courts yield one row per rate so the listing
    // never misquotes.
    rows := AggregateVenueSlots([]CourtDay{
        courtDay(1, []model.AvailabilitySlot{slot(9*60, 11*60, 500)}, nil),
        courtDay(2, []model.AvailabilitySlot{slot(9*60, 11*60, 800)}, nil),
    })
    assert.Equal(t, []VenueSlot{
        {Interval: Interval{9 * 60, 11 * 60}, AvailableCourts: 1, PricePerHour: 500},
        {Interval: Interval{9 * 60, 11 * 60}, AvailableCourts: 1, PricePerHour: 800},
    }, rows)
}

func TestAggregateVenueSlotsEmpty(t *testing.T) {
    assert.Nil(t, AggregateVenueSlots(nil))
    assert.Nil(t, AggregateVenueSlots([]CourtDay{courtDay(1, nil, nil)}), "closed day produces no rows")
}
