package engine

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

func slot(startMin, endMin int, price int64) model.AvailabilitySlot {
    return model.AvailabilitySlot{
        CourtID:      1,
        Weekday:      time.Monday,
        StartMin:     startMin,
        EndMin:       endMin,
        PricePerHour: price,
    }
}

func TestValidateWeeklySlotsSortsByStart(t *testing.T) {
    in := []model.AvailabilitySlot{
        slot(17*60, 22*60, 700),
        slot(6*60, 12*60, 500),
    }
    out, err := ValidateWeeklySlots(in)
    require.NoError(t, err)
    require.Len(t, out, 2)
    assert.Equal(t, 6*60, out[0].StartMin)
    assert.Equal(t, 17*60, out[1].StartMin)
    // input untouched
    assert.Equal(t, 17*60, in[0].StartMin)
}

func TestValidateWeeklySlotsRejectsOverlap(t *testing.T) {
    // 06:00-12:00 and 11:00-15:00 share an hour.
    _, err := ValidateWeeklySlots([]model.AvailabilitySlot{
        slot(6*60, 12*60, 500),
        slot(11*60, 15*60, 500),
    })
    require.Error(t, err)
    assert.ErrorIs(t, err, ErrOverlappingSlots)
}

func TestValidateWeeklySlotsAllowsAdjacent(t *testing.T) {
    // Windows touching at 12:00 are fine since intervals are half-open.
    out, err := ValidateWeeklySlots([]model.AvailabilitySlot{
        slot(6*60, 12*60, 500),
        slot(12*60, 18*60, 700),
    })
    require.NoError(t, err)
    assert.Len(t, out, 2)
}

func TestValidateWeeklySlotsRejectsBadWindows(t *testing.T) {
    cases := []struct {
        name string
        in   model.AvailabilitySlot
    }{
        {"start after end", slot(12*60, 6*60, 500)},
        {"empty", slot(9*60, 9*60, 500)},
        {"past midnight", slot(22*60, 25*60, 500)},
        {"zero price", slot(6*60, 12*60, 0)},
        {"negative price", slot(6*60, 12*60, -100)},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := ValidateWeeklySlots([]model.AvailabilitySlot{tc.in})
            require.Error(t, err)
            assert.ErrorIs(t, err, ErrInvalidSlot)
        })
    }
}

func TestValidateWeeklySlotsEmptyListClearsDay(t *testing.T) {
    out, err := ValidateWeeklySlots(nil)
    require.NoError(t, err)
    assert.Empty(t, out)
}
