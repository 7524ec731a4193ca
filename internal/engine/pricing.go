package engine

import "math"

// Pricing percentages fixed by the platform.  Fee and tax are each
// computed on already-rounded amounts so the stored totals match the
// running totals a client displays.
const (
    PlatformFeePercent = 5
    TaxPercent         = 18
)

// Quote is the staged price breakdown for a candidate booking, in
// whole currency units.
type Quote struct {
    Subtotal    int64
    PlatformFee int64
    Tax         int64
    Total       int64
}

// PriceQuote prices a booking of courtCount courts for durationMin
// minutes at a uniform hourly rate:
//
//	subtotal = round(rate * hours * courts)
//	fee      = round(subtotal * 5%)
//	tax      = round((subtotal + fee) * 18%)
//	total    = subtotal + fee + tax
//
// Rounding is half-up to the nearest currency unit at every stage,
// which keeps the result deterministic for fixed inputs.
func PriceQuote(pricePerHour int64, durationMin, courtCount int) Quote {
    rates := make([]int64, courtCount)
    for i := range rates {
        rates[i] = pricePerHour
    }
    return PriceQuoteRates(rates, durationMin)
}

// PriceQuoteRates prices a multi-court booking where each court may
// carry its own hourly rate (courts of the same venue can be priced
// differently in their templates).  With uniform rates this reduces
// exactly to PriceQuote.
func PriceQuoteRates(pricesPerHour []int64, durationMin int) Quote {
    var hourly int64
    for _, p := range pricesPerHour {
        hourly += p
    }
    hours := float64(durationMin) / 60.0
    subtotal := roundHalfUp(float64(hourly) * hours)
    fee := roundHalfUp(float64(subtotal) * PlatformFeePercent / 100.0)
    tax := roundHalfUp(float64(subtotal+fee) * TaxPercent / 100.0)
    return Quote{
        Subtotal:    subtotal,
        PlatformFee: fee,
        Tax:         tax,
        Total:       subtotal + fee + tax,
    }
}

func roundHalfUp(x float64) int64 {
    return int64(math.Floor(x + 0.5))
}
