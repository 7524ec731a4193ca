package engine

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestIntervalOverlaps(t *testing.T) {
    cases := []struct {
        name string
        a, b Interval
        want bool
    }{
        {"disjoint", Interval{60, 120}, Interval{180, 240}, false},
        {"touching boundaries do not overlap", Interval{60, 120}, Interval{120, 180}, false},
        {"partial overlap", Interval{60, 150}, Interval{120, 180}, true},
        {"contained", Interval{60, 240}, Interval{120, 180}, true},
        {"identical", Interval{60, 120}, Interval{60, 120}, true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
            assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
        })
    }
}

func TestIntervalContains(t *testing.T) {
    outer := Interval{Start: 6 * 60, End: 22 * 60}
    assert.True(t, outer.Contains(Interval{6 * 60, 7 * 60}))
    assert.True(t, outer.Contains(Interval{21 * 60, 22 * 60}))
    assert.True(t, outer.Contains(outer))
    assert.False(t, outer.Contains(Interval{5 * 60, 7 * 60}))
    assert.False(t, outer.Contains(Interval{21 * 60, 23 * 60}))
}

func TestIntervalValid(t *testing.T) {
    assert.True(t, Interval{0, MinutesPerDay}.Valid())
    assert.True(t, Interval{540, 600}.Valid())
    assert.False(t, Interval{600, 600}.Valid(), "empty interval")
    assert.False(t, Interval{600, 540}.Valid(), "reversed interval")
    assert.False(t, Interval{-10, 60}.Valid())
    assert.False(t, Interval{1380, MinutesPerDay + 60}.Valid())
}

func TestParseClock(t *testing.T) {
    cases := []struct {
        in   string
        want int
    }{
        {"00:00", 0},
        {"09:30", 570},
        {"18:00", 1080},
        {"23:59", 1439},
        {"24:00", MinutesPerDay},
        {"07:15:00", 435}, // seconds accepted and ignored
    }
    for _, tc := range cases {
        got, err := ParseClock(tc.in)
        require.NoError(t, err, tc.in)
        assert.Equal(t, tc.want, got, tc.in)
    }

    for _, bad := range []string{"", "25:00", "12:60", "24:01", "noon"} {
        _, err := ParseClock(bad)
        assert.Error(t, err, bad)
    }
}

func TestFormatClockRoundTrip(t *testing.T) {
    for min := 0; min < MinutesPerDay; min += 7 {
        got, err := ParseClock(FormatClock(min))
        require.NoError(t, err)
        assert.Equal(t, min, got)
    }
}

func TestMinuteOfDay(t *testing.T) {
    ts := time.Date(2025, 9, 1, 18, 30, 12, 0, time.UTC)
    assert.Equal(t, 18*60+30, MinuteOfDay(ts))
}
