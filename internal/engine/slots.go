package engine

import (
    "sort"

    "github.com/JaiminV2r/quickcourt/internal/model"
)

// DefaultStepMinutes is the platform's minimum booking unit used when
// no granularity is configured.
const DefaultStepMinutes = 60

// FreeWindows subtracts the busy intervals from a template window and
// returns the remaining free sub-ranges ordered by start.  Busy
// intervals may arrive unsorted and may extend past the window; they
// are clipped.  An empty result means the window is fully booked.
func FreeWindows(window Interval, busy []Interval) []Interval {
    sorted := make([]Interval, len(busy))
    copy(sorted, busy)
    SortIntervals(sorted)

    var out []Interval
    cursor := window.Start
    for _, b := range sorted {
        if b.End <= cursor || b.Start >= window.End {
            continue
        }
        if b.Start > cursor {
            out = append(out, Interval{Start: cursor, End: b.Start})
        }
        if b.End > cursor {
            cursor = b.End
        }
    }
    if cursor < window.End {
        out = append(out, Interval{Start: cursor, End: window.End})
    }
    return out
}

// StartOptions enumerates the start times a player may pick on one
// court, scanning every template window at the given step and keeping
// only starts whose minimal-duration interval passes CheckBookable.
// The result is advisory: the booking transaction re-validates, so a
// start shown here can still lose a race.
func StartOptions(template []model.AvailabilitySlot, busy []Interval, step, minDuration int) []int {
    if step <= 0 || minDuration <= 0 {
        return nil
    }
    var out []int
    for _, s := range template {
        win := SlotInterval(s)
        for t := win.Start; t+minDuration <= win.End; t += step {
            if _, err := CheckBookable(template, busy, Interval{Start: t, End: t + minDuration}); err == nil {
                out = append(out, t)
            }
        }
    }
    sort.Ints(out)
    return out
}

// EndOptions enumerates the valid end times once a start has been
// chosen.  Candidates grow from the start in step increments and stop
// at the first conflict, so an end can never cross a booked sub-range
// or leave the containing window.
func EndOptions(template []model.AvailabilitySlot, busy []Interval, start, step int) []int {
    if step <= 0 {
        return nil
    }
    var out []int
    for e := start + step; e <= MinutesPerDay; e += step {
        if _, err := CheckBookable(template, busy, Interval{Start: start, End: e}); err != nil {
            break
        }
        out = append(out, e)
    }
    return out
}

// EditorStartAllowed reports whether a proposed new template entry may
// begin at start given the day's already-entered windows.  A start
// inside an existing window is rejected; a start on an existing
// window's end boundary is fine because windows are half-open.
func EditorStartAllowed(existing []model.AvailabilitySlot, start int) bool {
    for _, s := range existing {
        iv := SlotInterval(s)
        if start >= iv.Start && start < iv.End {
            return false
        }
    }
    return start >= 0 && start < MinutesPerDay
}

// EditorEndLimit returns the latest end a new template entry starting
// at start may have without overlapping the next window of the day.
func EditorEndLimit(existing []model.AvailabilitySlot, start int) int {
    limit := MinutesPerDay
    for _, s := range existing {
        if s.StartMin >= start && s.StartMin < limit {
            limit = s.StartMin
        }
    }
    return limit
}

// CourtDay bundles one court's template and busy intervals for a
// concrete date; the input to venue-level aggregation.
type CourtDay struct {
    Court    model.Court
    Template []model.AvailabilitySlot
    Busy     []Interval
}

// VenueSlot is one row of the venue slot listing: a window in which
// AvailableCourts courts can be booked at PricePerHour.
type VenueSlot struct {
    Interval
    AvailableCourts int
    PricePerHour    int64
}

// pricedWindow is a free sub-range of one court's template slot
// carrying that slot's hourly rate.
type pricedWindow struct {
    Interval
    price int64
}

// AggregateVenueSlots intersects each court's template with its active
// bookings and merges the per-court free windows into venue-level
// rows.  Courts whose templates price a window differently produce
// separate rows so the listing never misquotes a rate.  Rows are
// ordered by start time, then price, and adjacent rows with equal
// count and price are coalesced.
func AggregateVenueSlots(days []CourtDay) []VenueSlot {
    perCourt := make([][]pricedWindow, 0, len(days))
    boundarySet := make(map[int]struct{})
    for _, d := range days {
        var wins []pricedWindow
        for _, s := range d.Template {
            for _, free := range FreeWindows(SlotInterval(s), d.Busy) {
                wins = append(wins, pricedWindow{Interval: free, price: s.PricePerHour})
                boundarySet[free.Start] = struct{}{}
                boundarySet[free.End] = struct{}{}
            }
        }
        perCourt = append(perCourt, wins)
    }
    if len(boundarySet) == 0 {
        return nil
    }
    bounds := make([]int, 0, len(boundarySet))
    for b := range boundarySet {
        bounds = append(bounds, b)
    }
    sort.Ints(bounds)

    var out []VenueSlot
    for i := 0; i+1 < len(bounds); i++ {
        seg := Interval{Start: bounds[i], End: bounds[i+1]}
        counts := make(map[int64]int)
        for _, wins := range perCourt {
            for _, w := range wins {
                if w.Contains(seg) {
                    counts[w.price]++
                    break
                }
            }
        }
        prices := make([]int64, 0, len(counts))
        for p := range counts {
            prices = append(prices, p)
        }
        sort.Slice(prices, func(a, b int) bool { return prices[a] < prices[b] })
        for _, p := range prices {
            out = append(out, VenueSlot{Interval: seg, AvailableCourts: counts[p], PricePerHour: p})
        }
    }
    return coalesce(out)
}

// coalesce merges adjacent rows that share count and price and touch
// end to start.
func coalesce(rows []VenueSlot) []VenueSlot {
    var out []VenueSlot
    for _, r := range rows {
        n := len(out)
        if n > 0 && out[n-1].End == r.Start &&
            out[n-1].AvailableCourts == r.AvailableCourts &&
            out[n-1].PricePerHour == r.PricePerHour {
            out[n-1].End = r.End
            continue
        }
        out = append(out, r)
    }
    return out
}
