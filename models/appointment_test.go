package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	booked := &Appointment{Status: StatusBooked}
	if err := booked.CanTransitionTo(StatusCancelled); err != nil {
		t.Fatalf("booked -> cancelled should be allowed: %v", err)
	}
	if err := booked.CanTransitionTo(StatusBooked); err == nil {
		t.Fatal("booked -> booked should be rejected")
	}

	cancelled := &Appointment{Status: StatusCancelled}
	if err := cancelled.CanTransitionTo(StatusBooked); err == nil {
		t.Fatal("cancelled is terminal; cancelled -> booked should be rejected")
	}
	if err := cancelled.CanTransitionTo(StatusCancelled); err == nil {
		t.Fatal("cancelled is terminal; cancelled -> cancelled should be rejected")
	}
}

func TestTimeSlotsNormalize(t *testing.T) {
	got := TimeSlots{"10:00", "09:00", "10:00", "08:30"}.Normalize()
	want := TimeSlots{"08:30", "09:00", "10:00"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if !got.Contains("09:00") || got.Contains("11:00") {
		t.Fatal("Contains misreports membership")
	}
}
