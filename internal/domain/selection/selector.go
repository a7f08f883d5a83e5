// Package selection drives the two-click check-in/check-out picking flow of
// the booking page. The selector is advisory UI logic over a reservation
// snapshot; the authoritative availability check happens again when the
// booking is committed server-side.
package selection

import (
	"fmt"
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/availability"
	"github.com/flori92/lokali-platform-sub000/internal/domain/properties"
	"github.com/flori92/lokali-platform-sub000/internal/domain/shared/dates"
)

type State string

const (
	Idle             State = "IDLE"
	AwaitingCheckout State = "AWAITING_CHECKOUT"
	Committed        State = "COMMITTED"
)

// StayUnit is the unit MinimumStay is read in. It is always derived from the
// property type at the call site so the shared number cannot be misread.
type StayUnit string

const (
	UnitNights StayUnit = "nights"
	UnitMonths StayUnit = "months"
)

// StayUnitFor maps a property type to its minimum-stay unit: guest houses
// count nights, long-term rentals count whole months.
func StayUnitFor(t properties.PropertyType) StayUnit {
	if t == properties.TypeLongTermRental {
		return UnitMonths
	}
	return UnitNights
}

// Constraints bound what the selector may commit.
type Constraints struct {
	MinimumStay int
	Unit        StayUnit
}

// Outcome classifies what a pick did. A rejected pick is a normal result,
// not an error: the selector stays where it was and the reason is surfaced
// to the user.
type Outcome string

const (
	OutcomeCheckInSet Outcome = "CHECK_IN_SET"
	OutcomeCommitted  Outcome = "COMMITTED"
	OutcomeRejected   Outcome = "REJECTED"
)

const (
	ReasonPastDate    = "date is in the past"
	ReasonDateBlocked = "date is unavailable"
	ReasonRangeTaken  = "selected range includes unavailable dates"
	ReasonMinimumStay = "stay is shorter than the minimum"
)

type Result struct {
	Outcome Outcome
	Reason  string
}

// Selector is the in-progress date choice for one property. The zero time
// means "not picked yet". Intervals is the current reservation snapshot; the
// caller refreshes it as the availability feed updates.
type Selector struct {
	Constraints Constraints
	Intervals   []availability.ReservationInterval

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	// OnCommit fires once per transition into Committed with the final pair.
	OnCommit func(checkIn, checkOut time.Time)

	checkIn  time.Time
	checkOut time.Time
	hovered  time.Time
}

func (s *Selector) State() State {
	switch {
	case s.checkIn.IsZero():
		return Idle
	case s.checkOut.IsZero():
		return AwaitingCheckout
	default:
		return Committed
	}
}

func (s *Selector) CheckIn() (time.Time, bool)  { return s.checkIn, !s.checkIn.IsZero() }
func (s *Selector) CheckOut() (time.Time, bool) { return s.checkOut, !s.checkOut.IsZero() }

// Select advances the state machine with a picked day.
func (s *Selector) Select(day time.Time) Result {
	day = dates.StartOfDay(day)
	switch s.State() {
	case Idle:
		return s.pickCheckIn(day)
	case AwaitingCheckout:
		if !day.After(s.checkIn) {
			// An earlier or equal pick restarts the selection rather than
			// completing it.
			s.checkIn = day
			s.hovered = time.Time{}
			return Result{Outcome: OutcomeCheckInSet}
		}
		if !availability.IsRangeFree(s.checkIn, day, s.Intervals) {
			return Result{Outcome: OutcomeRejected, Reason: ReasonRangeTaken}
		}
		if reason, ok := s.minimumStayViolation(day); ok {
			return Result{Outcome: OutcomeRejected, Reason: reason}
		}
		s.checkOut = day
		s.hovered = time.Time{}
		if s.OnCommit != nil {
			s.OnCommit(s.checkIn, s.checkOut)
		}
		return Result{Outcome: OutcomeCommitted}
	default:
		// Any pick on a completed pair starts the flow over.
		s.checkIn = time.Time{}
		s.checkOut = time.Time{}
		s.hovered = time.Time{}
		return s.pickCheckIn(day)
	}
}

func (s *Selector) pickCheckIn(day time.Time) Result {
	if dates.IsPast(day, s.now()) {
		return Result{Outcome: OutcomeRejected, Reason: ReasonPastDate}
	}
	if availability.IsBlocked(day, s.Intervals) {
		return Result{Outcome: OutcomeRejected, Reason: ReasonDateBlocked}
	}
	s.checkIn = day
	return Result{Outcome: OutcomeCheckInSet}
}

// Hover records the transiently previewed check-out day. It is accepted only
// while a check-in is pending and the day is after it; it never touches the
// committed pair and carries no further validation.
func (s *Selector) Hover(day time.Time) {
	if s.State() != AwaitingCheckout {
		return
	}
	day = dates.StartOfDay(day)
	if day.After(s.checkIn) {
		s.hovered = day
	}
}

func (s *Selector) ClearHover() {
	s.hovered = time.Time{}
}

func (s *Selector) Hovered() (time.Time, bool) {
	return s.hovered, !s.hovered.IsZero()
}

// Reset clears the whole selection including the hover preview.
func (s *Selector) Reset() {
	s.checkIn = time.Time{}
	s.checkOut = time.Time{}
	s.hovered = time.Time{}
}

func (s *Selector) minimumStayViolation(checkOut time.Time) (string, bool) {
	min := s.Constraints.MinimumStay
	if min <= 0 {
		return "", false
	}
	var duration int
	switch s.Constraints.Unit {
	case UnitMonths:
		duration = dates.WholeMonthsBetween(s.checkIn, checkOut)
	default:
		duration = dates.DaysBetween(s.checkIn, checkOut)
	}
	if duration < min {
		return fmt.Sprintf("%s (%d %s required)", ReasonMinimumStay, min, s.Constraints.Unit), true
	}
	return "", false
}

func (s *Selector) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
