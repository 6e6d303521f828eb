package domain

import (
	"testing"
	"time"
)

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		expected bool
	}{
		{name: "admin satisfies admin", role: RoleAdmin, required: RoleAdmin, expected: true},
		{name: "admin satisfies user", role: RoleAdmin, required: RoleUser, expected: true},
		{name: "admin satisfies visitor", role: RoleAdmin, required: RoleVisitor, expected: true},
		{name: "user satisfies visitor", role: RoleUser, required: RoleVisitor, expected: true},
		{name: "user does not satisfy admin", role: RoleUser, required: RoleAdmin, expected: false},
		{name: "visitor satisfies visitor", role: RoleVisitor, required: RoleVisitor, expected: true},
		{name: "visitor does not satisfy user", role: RoleVisitor, required: RoleUser, expected: false},
		{name: "visitor does not satisfy admin", role: RoleVisitor, required: RoleAdmin, expected: false},
		{name: "unknown role satisfies nothing", role: Role("superadmin"), required: RoleVisitor, expected: false},
		{name: "unknown requirement is never met", role: RoleAdmin, required: Role("owner"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.AtLeast(tt.required); got != tt.expected {
				t.Errorf("%q.AtLeast(%q) = %v, want %v", tt.role, tt.required, got, tt.expected)
			}
		})
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	window := 24 * time.Hour

	fresh := &Session{LoginTime: now.Add(-time.Hour)}
	if fresh.Expired(window, now) {
		t.Error("session one hour old should not be expired")
	}

	stale := &Session{LoginTime: now.Add(-25 * time.Hour)}
	if !stale.Expired(window, now) {
		t.Error("session 25 hours old should be expired")
	}

	boundary := &Session{LoginTime: now.Add(-window)}
	if boundary.Expired(window, now) {
		t.Error("session exactly at the window should still be valid")
	}
}

func TestSession_HasRole(t *testing.T) {
	var nilSession *Session
	if nilSession.HasRole(RoleVisitor) {
		t.Error("nil session should hold no role")
	}

	admin := &Session{User: User{Role: RoleAdmin}}
	if !admin.HasRole(RoleAdmin) || !admin.HasRole(RoleVisitor) {
		t.Error("admin session should satisfy admin and visitor")
	}

	visitor := &Session{User: User{Role: RoleVisitor}}
	if visitor.HasRole(RoleAdmin) {
		t.Error("visitor session should not satisfy admin")
	}
}
