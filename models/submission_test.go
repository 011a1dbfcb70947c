package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{"", StatusApproved, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusTerminal(StatusPending) {
		t.Error("pending must not be terminal")
	}
	if !StatusTerminal(StatusApproved) || !StatusTerminal(StatusRejected) {
		t.Error("approved and rejected must be terminal")
	}
}

func TestTaskStatusDerived(t *testing.T) {
	task := Task{RequiredWorkers: 3}
	if task.Status() != TaskStatusOpen {
		t.Fatalf("expected open with slots, got %s", task.Status())
	}
	task.RequiredWorkers = 0
	if task.Status() != TaskStatusFull {
		t.Fatalf("expected full with no slots, got %s", task.Status())
	}
}

func TestFindCoinPackage(t *testing.T) {
	pkg, ok := FindCoinPackage(150)
	if !ok || pkg.AmountCents != 1000 {
		t.Fatalf("expected 150-coin package at 1000 cents, got %+v ok=%v", pkg, ok)
	}
	if _, ok := FindCoinPackage(7); ok {
		t.Fatal("expected no package for 7 coins")
	}
}

func TestAdminPasswordHashing(t *testing.T) {
	admin := Admin{Username: "ops", Password: "s3cret"}
	if err := admin.HashPassword(); err != nil {
		t.Fatalf("hash: %v", err)
	}
	if admin.Password == "s3cret" {
		t.Fatal("password was not hashed")
	}
	if !admin.ValidatePassword("s3cret") {
		t.Fatal("correct password rejected")
	}
	if admin.ValidatePassword("wrong") {
		t.Fatal("wrong password accepted")
	}
}
