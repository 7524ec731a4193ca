package engine

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestPriceQuoteOneHourSingleCourt(t *testing.T) {
    // 500/hour for one hour: fee 5% of 500, tax 18% of 525.
    q := PriceQuote(500, 60, 1)
    assert.Equal(t, Quote{Subtotal: 500, PlatformFee: 25, Tax: 95, Total: 620}, q)
}

func TestPriceQuoteFractionalHours(t *testing.T) {
    // 90 minutes at 500/hour: subtotal 750, fee 37.5 rounds up to 38,
    // tax 18% of 788 = 141.84 rounds to 142.
    q := PriceQuote(500, 90, 1)
    assert.Equal(t, Quote{Subtotal: 750, PlatformFee: 38, Tax: 142, Total: 930}, q)
}

func TestPriceQuoteMultiCourt(t *testing.T) {
    // Two courts double the hourly rate before any rounding happens.
    q := PriceQuote(500, 60, 2)
    assert.Equal(t, Quote{Subtotal: 1000, PlatformFee: 50, Tax: 189, Total: 1239}, q)
}

func TestPriceQuoteRatesMixed(t *testing.T) {
    // Courts priced differently sum their hourly rates first.
    q := PriceQuoteRates([]int64{400, 600}, 60)
    assert.Equal(t, Quote{Subtotal: 1000, PlatformFee: 50, Tax: 189, Total: 1239}, q)

    // Uniform rates reduce to the single-rate path.
    assert.Equal(t, PriceQuote(550, 120, 3), PriceQuoteRates([]int64{550, 550, 550}, 120))
}

func TestPriceQuoteTotalsAddUp(t *testing.T) {
    for _, rate := range []int64{100, 333, 500, 999, 1250} {
        for _, dur := range []int{30, 60, 90, 120, 180} {
            q := PriceQuote(rate, dur, 1)
            assert.Equal(t, q.Subtotal+q.PlatformFee+q.Tax, q.Total, "rate=%d dur=%d", rate, dur)
            assert.GreaterOrEqual(t, q.PlatformFee, int64(0))
            assert.GreaterOrEqual(t, q.Tax, int64(0))
        }
    }
}

func TestPriceQuoteDeterministic(t *testing.T) {
    first := PriceQuote(1337, 150, 2)
    for i := 0; i < 100; i++ {
        assert.Equal(t, first, PriceQuote(1337, 150, 2))
    }
}
