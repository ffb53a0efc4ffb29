package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"gullak/internal/ledger"
)

func TestVerbOf(t *testing.T) {
	cases := []struct{ in, want string }{
		{"set budget March Food 100", "set budget"},
		{"EDIT BUDGET March Food 100", "edit budget"},
		{"delete budget March Food", "delete budget"},
		{"spent 100 on food", "spent"},
		{"owe Raj 100", "owe"},
		{"bill X 100 due 2025-01-01", "bill"},
		{"summary", "summary"},
		{"set menu", "unknown"},
		{"", "unknown"},
		{"hello there", "unknown"},
	}
	for _, tc := range cases {
		if got := verbOf(tc.in); got != tc.want {
			t.Errorf("verbOf(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExecuteWithoutBroker(t *testing.T) {
	store := ledger.NewStore(10, time.Hour)
	svc := NewCommandService(ledger.NewInterpreter(store), nil)

	resp, err := svc.Execute(context.Background(), "u", "set budget March Food 5000")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(resp, "Budget set for March") {
		t.Errorf("response: %q", resp)
	}
	// a nil AMQP client must never fail the command
	if _, err := svc.Execute(context.Background(), "u", "spent 100 on food"); err != nil {
		t.Fatalf("Execute with nil broker: %v", err)
	}
}

func TestCloseWithNilComponents(t *testing.T) {
	svc := NewCommandService(nil, nil)
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
