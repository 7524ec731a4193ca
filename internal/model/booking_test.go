package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestBookingActive(t *testing.T) {
    assert.True(t, BookingActive(BookingStatusPending))
    assert.True(t, BookingActive(BookingStatusConfirmed))
    assert.False(t, BookingActive(BookingStatusCancelled))
    assert.False(t, BookingActive(BookingStatusCompleted))
    assert.False(t, BookingActive("UNKNOWN"))
}

func TestCanCancel(t *testing.T) {
    cases := []struct {
        status string
        want   error
    }{
        {BookingStatusPending, nil},
        {BookingStatusConfirmed, nil},
        {BookingStatusCancelled, ErrAlreadyCancelled},
        {BookingStatusCompleted, ErrInvalidTransition},
    }
    for _, tc := range cases {
        t.Run(tc.status, func(t *testing.T) {
            err := CanCancel(tc.status)
            if tc.want == nil {
                assert.NoError(t, err)
            } else {
                assert.ErrorIs(t, err, tc.want)
            }
        })
    }
}

func TestCanCancelIsIdempotentlyRejected(t *testing.T) {
    // A second cancel must keep reporting the same sentinel, never
    // flip to a different error or succeed.
    for i := 0; i < 3; i++ {
        assert.ErrorIs(t, CanCancel(BookingStatusCancelled), ErrAlreadyCancelled)
    }
}

func TestCanConfirm(t *testing.T) {
    assert.NoError(t, CanConfirm(BookingStatusPending))
    for _, status := range []string{BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted} {
        assert.ErrorIs(t, CanConfirm(status), ErrInvalidTransition, status)
    }
}

func TestCanComplete(t *testing.T) {
    now := time.Date(2025, 9, 1, 20, 0, 0, 0, time.UTC)
    past := now.Add(-time.Hour)
    future := now.Add(time.Hour)

    assert.NoError(t, CanComplete(BookingStatusConfirmed, past, now))
    assert.NoError(t, CanComplete(BookingStatusConfirmed, now, now), "end exactly now has elapsed")

    assert.ErrorIs(t, CanComplete(BookingStatusConfirmed, future, now), ErrInvalidTransition, "interval not finished")
    for _, status := range []string{BookingStatusPending, BookingStatusCancelled, BookingStatusCompleted} {
        assert.ErrorIs(t, CanComplete(status, past, now), ErrInvalidTransition, status)
    }
}

func TestTerminalStatusesStayTerminal(t *testing.T) {
    // Nothing leaves CANCELLED or COMPLETED through any transition.
    for _, status := range []string{BookingStatusCancelled, BookingStatusCompleted} {
        assert.Error(t, CanCancel(status), status)
        assert.Error(t, CanConfirm(status), status)
        assert.Error(t, CanComplete(status, time.Time{}, time.Now()), status)
    }
}
