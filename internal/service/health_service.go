package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	probes  map[string]Pinger
	timeout time.Duration
}

// NewHealthService probes each named dependency. Nil probes are ignored.
func NewHealthService(probes map[string]Pinger, timeout time.Duration) *HealthService {
	live := make(map[string]Pinger, len(probes))
	for name, p := range probes {
		if p != nil {
			live[name] = p
		}
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HealthService{probes: live, timeout: timeout}
}

type HealthReport struct {
	Healthy    bool              `json:"-"`
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Check pings every dependency concurrently. One failing probe does not
// cancel the others.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names := make([]string, 0, len(s.probes))
	results := make([]error, 0, len(s.probes))
	for name := range s.probes {
		names = append(names, name)
		results = append(results, nil)
	}

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			results[i] = s.probes[name].Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	report := HealthReport{Healthy: true, Status: "healthy", Components: make(map[string]string, len(names))}
	for i, name := range names {
		if results[i] != nil {
			log.Warn().Err(results[i]).Str("component", name).Msg("health probe failed")
			report.Components[name] = "unavailable"
			report.Healthy = false
			continue
		}
		report.Components[name] = "ok"
	}
	if !report.Healthy {
		report.Status = "unhealthy"
	}
	return report
}
