package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("test-checker", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "test passed"}
	})

	if checker.Name() != "test-checker" {
		t.Errorf("Name() = %v, want test-checker", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}
}

func TestFromError(t *testing.T) {
	ok := FromError("ok", StatusUnhealthy, func(ctx context.Context) error { return nil })
	if r := ok.Check(context.Background()); r.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", r.Status)
	}

	bad := FromError("bad", StatusDegraded, func(ctx context.Context) error { return errors.New("journal locked") })
	r := bad.Check(context.Background())
	if r.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", r.Status)
	}
	if r.Message != "journal locked" {
		t.Errorf("Message = %v, want 'journal locked'", r.Message)
	}
}

func TestMonitor_Check(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		expected Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unknown counts as degraded", []Status{StatusHealthy, ""}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor("throwables", "0.1.0")
			for i, s := range tt.statuses {
				s := s
				name := string(rune('a' + i))
				m.Register(NewChecker(name, func(ctx context.Context) CheckResult {
					return CheckResult{Status: s}
				}))
			}

			report := m.Check(context.Background())
			if report.Status != tt.expected {
				t.Errorf("Status = %v, want %v", report.Status, tt.expected)
			}
			if len(report.Checks) != len(tt.statuses) {
				t.Fatalf("len(Checks) = %d, want %d", len(report.Checks), len(tt.statuses))
			}
			for i, c := range report.Checks {
				if want := string(rune('a' + i)); c.Name != want {
					t.Errorf("Checks[%d].Name = %v, want %v", i, c.Name, want)
				}
				if c.Timestamp.IsZero() {
					t.Errorf("Checks[%d].Timestamp not set", i)
				}
			}
		})
	}
}

func TestMonitor_RegisterReplaces(t *testing.T) {
	m := NewMonitor("throwables", "0.1.0")
	m.Register(NewChecker("x", func(ctx context.Context) CheckResult { return CheckResult{Status: StatusUnhealthy} }))
	m.Register(NewChecker("x", func(ctx context.Context) CheckResult { return CheckResult{Status: StatusHealthy} }))

	report := m.Check(context.Background())
	if len(report.Checks) != 1 || report.Status != StatusHealthy {
		t.Errorf("report = %v, want one healthy check", report)
	}
}

func TestMonitor_CheckWithTimeout(t *testing.T) {
	m := NewMonitor("throwables", "0.1.0")
	m.Register(NewChecker("slow", func(ctx context.Context) CheckResult {
		select {
		case <-ctx.Done():
			return CheckResult{Status: StatusUnhealthy, Message: ctx.Err().Error()}
		case <-time.After(5 * time.Second):
			return CheckResult{Status: StatusHealthy}
		}
	}))

	report := m.CheckWithTimeout(20 * time.Millisecond)
	if report.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", report.Status)
	}
}

func TestReport_String(t *testing.T) {
	r := &Report{Service: "throwables", Status: StatusHealthy}
	if got := r.String(); got != "Service: throwables, Status: healthy, Checks: 0" {
		t.Errorf("String() = %q", got)
	}
}
