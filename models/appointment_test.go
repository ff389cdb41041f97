package models

import "testing"

func TestAppointmentTransitions(t *testing.T) {
	allStatuses := []AppointmentStatus{
		StatusPending, StatusUpcoming, StatusCompleted, StatusCancelled, StatusRejected,
	}

	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusPending:  {StatusUpcoming, StatusRejected},
		StatusUpcoming: {StatusCompleted, StatusCancelled},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			a := Appointment{Status: from}
			err := a.CanTransition(to)

			permitted := false
			for _, next := range allowed[from] {
				if next == to {
					permitted = true
				}
			}

			if permitted && err != nil {
				t.Errorf("expected %s -> %s to be allowed, got error: %v", from, to, err)
			}
			if !permitted && err == nil {
				t.Errorf("expected %s -> %s to be rejected but it was allowed", from, to)
			}
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	a := Appointment{Status: "archived"}
	if err := a.CanTransition(StatusUpcoming); err == nil {
		t.Fatalf("expected error transitioning out of unknown status")
	}
}

func TestGroupAppointments(t *testing.T) {
	appointments := []Appointment{
		{ID: "a1", Status: StatusPending},
		{ID: "a2", Status: StatusUpcoming},
		{ID: "a3", Status: StatusCompleted},
		{ID: "a4", Status: StatusCancelled},
		{ID: "a5", Status: StatusRejected},
		{ID: "a6", Status: StatusPending},
	}

	groups := GroupAppointments(appointments)

	if len(groups.Requests) != 2 {
		t.Errorf("expected 2 requests, got %d", len(groups.Requests))
	}
	if len(groups.Upcoming) != 1 {
		t.Errorf("expected 1 upcoming, got %d", len(groups.Upcoming))
	}
	if len(groups.Completed) != 1 {
		t.Errorf("expected 1 completed, got %d", len(groups.Completed))
	}
	if len(groups.Cancelled) != 1 {
		t.Errorf("expected 1 cancelled, got %d", len(groups.Cancelled))
	}
	if len(groups.Rejected) != 1 {
		t.Errorf("expected 1 rejected, got %d", len(groups.Rejected))
	}

	// Input order is preserved within a group
	if groups.Requests[0].ID != "a1" || groups.Requests[1].ID != "a6" {
		t.Errorf("expected request order a1, a6, got %s, %s", groups.Requests[0].ID, groups.Requests[1].ID)
	}
}

// Accepting a pending request moves the row out of the requests group and
// into upcoming with its schedule intact.
func TestAcceptMovesRequestToUpcoming(t *testing.T) {
	appointments := []Appointment{
		{ID: "req-1", DoctorName: "Devon Lane", Date: "2025-03-25", Time: "4:00pm", Status: StatusPending},
		{ID: "req-2", Status: StatusPending},
	}

	before := GroupAppointments(appointments)
	if len(before.Requests) != 2 || len(before.Upcoming) != 0 {
		t.Fatalf("unexpected starting groups: %d requests, %d upcoming", len(before.Requests), len(before.Upcoming))
	}

	if err := appointments[0].CanTransition(StatusUpcoming); err != nil {
		t.Fatalf("accept should be a legal transition: %v", err)
	}
	appointments[0].Status = StatusUpcoming

	after := GroupAppointments(appointments)
	if len(after.Requests) != 1 || after.Requests[0].ID != "req-2" {
		t.Fatalf("expected req-1 to leave the requests group")
	}
	if len(after.Upcoming) != 1 {
		t.Fatalf("expected req-1 in the upcoming group")
	}
	accepted := after.Upcoming[0]
	if accepted.ID != "req-1" || accepted.Date != "2025-03-25" || accepted.Time != "4:00pm" {
		t.Errorf("accepted appointment lost its schedule: %+v", accepted)
	}
}
