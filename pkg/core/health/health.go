package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is an interface for health checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type namedCheck struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &namedCheck{name: name, fn: fn}
}

func (c *namedCheck) Name() string {
	return c.name
}

func (c *namedCheck) Check(ctx context.Context) CheckResult {
	return c.fn(ctx)
}

// FromError builds a checker that is healthy when fn returns nil and
// reports failure as the given status
func FromError(name string, failure Status, fn func(ctx context.Context) error) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		if err := fn(ctx); err != nil {
			return CheckResult{Name: name, Status: failure, Message: err.Error()}
		}
		return CheckResult{Name: name, Status: StatusHealthy}
	})
}

// Monitor runs a set of checkers
type Monitor struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	service  string
	version  string
}

// NewMonitor creates an empty monitor
func NewMonitor(service, version string) *Monitor {
	return &Monitor{
		checkers: make(map[string]Checker),
		service:  service,
		version:  version,
	}
}

// Register adds a checker, replacing one with the same name
func (m *Monitor) Register(checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers[checker.Name()] = checker
}

// Check runs all checks concurrently. The report lists results by name;
// any unhealthy check makes the report unhealthy, any degraded one
// degraded.
func (m *Monitor) Check(ctx context.Context) *Report {
	m.mu.RLock()
	checkers := make([]Checker, 0, len(m.checkers))
	for _, c := range m.checkers {
		checkers = append(checkers, c)
	}
	m.mu.RUnlock()

	report := &Report{
		Service:   m.service,
		Version:   m.version,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, len(checkers)),
	}

	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			result.Timestamp = time.Now()
			if result.Name == "" {
				result.Name = c.Name()
			}
			if result.Status == "" {
				result.Status = StatusUnknown
			}
			report.Checks[i] = result
		}(i, checker)
	}
	wg.Wait()

	sort.Slice(report.Checks, func(a, b int) bool {
		return report.Checks[a].Name < report.Checks[b].Name
	})

	report.Status = StatusHealthy
	for _, result := range report.Checks {
		switch result.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			if report.Status != StatusUnhealthy {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

// CheckWithTimeout runs all health checks with a timeout
func (m *Monitor) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return m.Check(ctx)
}

// Report represents the overall health report
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("Service: %s, Status: %s, Checks: %d", r.Service, r.Status, len(r.Checks))
}
