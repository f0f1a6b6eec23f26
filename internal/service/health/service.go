package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

const checkTimeout = 2 * time.Second

// CheckResult is the outcome of probing one dependency
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse lists every dependency check. Degraded dependencies keep the
// service ready: the skill still answers, with an apology, when the classifier is down.
type ReadyResponse struct {
	Ready     bool          `json:"ready"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Checker probes one dependency
type Checker func(ctx context.Context) CheckResult

// BreakerReporter is anything exposing a circuit breaker state
type BreakerReporter interface {
	BreakerState() string
}

type Service struct {
	started time.Time
	version string
	log     *zap.Logger

	mu       sync.RWMutex
	checkers map[string]Checker
}

func NewService(version string, log *zap.Logger) *Service {
	return &Service{
		started:  time.Now(),
		version:  version,
		log:      log,
		checkers: make(map[string]Checker),
	}
}

// RegisterChecker adds or replaces the checker for a dependency
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	s.checkers[name] = checker
	s.mu.Unlock()
	s.log.Debug("Registered health checker", zap.String("name", name))
}

// Health is the liveness answer; it never consults dependencies.
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now(),
	}
}

// Ready probes every dependency concurrently. Results are sorted by name.
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	results := s.runChecks(ctx)

	resp := &ReadyResponse{
		Ready:     true,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    results,
	}
	for _, r := range results {
		switch r.Status {
		case StatusUnhealthy:
			resp.Ready = false
			resp.Status = StatusUnhealthy
		case StatusDegraded:
			if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
		}
	}
	if !resp.Ready {
		s.log.Warn("Readiness check failed", zap.Any("checks", results))
	}
	return resp
}

func (s *Service) runChecks(ctx context.Context) []CheckResult {
	s.mu.RLock()
	names := make([]string, 0, len(s.checkers))
	checkers := make([]Checker, 0, len(s.checkers))
	for name, checker := range s.checkers {
		names = append(names, name)
		checkers = append(checkers, checker)
	}
	s.mu.RUnlock()

	results := make([]CheckResult, len(checkers))
	var wg sync.WaitGroup
	for i := range checkers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			result := checkers[i](checkCtx)
			if result.Name == "" {
				result.Name = names[i]
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	sort.Slice(results, func(a, b int) bool { return results[a].Name < results[b].Name })
	return results
}

// BreakerChecker reports an open or half-open breaker as degraded
func BreakerChecker(name string, reporter BreakerReporter) Checker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		state := reporter.BreakerState()

		status := StatusHealthy
		if state != "closed" {
			status = StatusDegraded
		}
		return CheckResult{
			Name:      name,
			Status:    status,
			Message:   "circuit " + state,
			Duration:  time.Since(start),
			Timestamp: start,
		}
	}
}
