package domain

import "testing"

func TestStatus_Next(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected Status
		ok       bool
	}{
		{name: "received advances to in_process", status: StatusReceived, expected: StatusInProcess, ok: true},
		{name: "in_process advances to resolved", status: StatusInProcess, expected: StatusResolved, ok: true},
		{name: "resolved is terminal", status: StatusResolved, expected: "", ok: false},
		{name: "unknown status has no next", status: Status("cancelled"), expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.status.Next()
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if next != tt.expected {
				t.Errorf("expected next %q, got %q", tt.expected, next)
			}
		})
	}
}

func TestStatus_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{name: "received to in_process", from: StatusReceived, to: StatusInProcess, allowed: true},
		{name: "in_process to resolved", from: StatusInProcess, to: StatusResolved, allowed: true},
		{name: "no skip from received to resolved", from: StatusReceived, to: StatusResolved, allowed: false},
		{name: "no backward move", from: StatusResolved, to: StatusInProcess, allowed: false},
		{name: "no self transition", from: StatusInProcess, to: StatusInProcess, allowed: false},
		{name: "unknown target", from: StatusReceived, to: Status("archived"), allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanAdvanceTo(tt.to); got != tt.allowed {
				t.Errorf("CanAdvanceTo(%q -> %q) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusReceived, StatusInProcess, StatusResolved} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []Status{"", "pending", "recibido"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestStatus_Before(t *testing.T) {
	if !StatusReceived.Before(StatusResolved) {
		t.Error("received should precede resolved")
	}
	if StatusResolved.Before(StatusReceived) {
		t.Error("resolved should not precede received")
	}
	if StatusInProcess.Before(StatusInProcess) {
		t.Error("a status should not precede itself")
	}
	if Status("unknown").Before(StatusResolved) {
		t.Error("unknown statuses precede nothing")
	}
}
