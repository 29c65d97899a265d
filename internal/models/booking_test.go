package models

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusRequested, BookingStatusPickedUp, true},
		{BookingStatusRequested, BookingStatusCancelled, true},
		{BookingStatusRequested, BookingStatusReturned, false},
		{BookingStatusPickedUp, BookingStatusReturned, true},
		{BookingStatusPickedUp, BookingStatusCancelled, false},
		{BookingStatusPickedUp, BookingStatusRequested, false},
		{BookingStatusReturned, BookingStatusRequested, false},
		{BookingStatusReturned, BookingStatusPickedUp, false},
		{BookingStatusReturned, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusRequested, false},
		{BookingStatusCancelled, BookingStatusPickedUp, false},
		{BookingStatusCancelled, BookingStatusReturned, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	if BookingStatusRequested.IsTerminal() {
		t.Error("requested must not be terminal")
	}
	if BookingStatusPickedUp.IsTerminal() {
		t.Error("picked_up must not be terminal")
	}
	if !BookingStatusReturned.IsTerminal() {
		t.Error("returned must be terminal")
	}
	if !BookingStatusCancelled.IsTerminal() {
		t.Error("cancelled must be terminal")
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusRequested, BookingStatusPickedUp, BookingStatusReturned, BookingStatusCancelled} {
		if !s.IsValid() {
			t.Errorf("%s must be valid", s)
		}
	}
	if BookingStatus("confirmed").IsValid() {
		t.Error("unknown status must not be valid")
	}
	if BookingStatus("").IsValid() {
		t.Error("empty status must not be valid")
	}
}
