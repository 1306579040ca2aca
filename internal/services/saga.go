package services

import (
	"context"
	"fmt"

	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/metrics"
)

// SagaStep is one forward action of a multi-step write and, optionally, its undo
type SagaStep struct {
	Name       string
	Do         func(ctx context.Context) error
	Compensate func(ctx context.Context) error
	// Residual describes what stays behind when this completed step is not undone.
	// Evaluated lazily so it can mention ids produced by Do.
	Residual func() string
}

func (s SagaStep) residual() string {
	if s.Residual != nil {
		return s.Residual()
	}
	return "effects of " + s.Name
}

// Saga runs steps in order. When step k fails the compensations of steps k-1..0 run once
// each, newest first.
type Saga struct {
	Operation string
	Steps     []SagaStep
	Metrics   *metrics.MetricsRegistry
}

// Run executes the saga. The returned error wraps the failing step's error, and is a
// *PartialFailureError when anything could not be undone.
func (s *Saga) Run(ctx context.Context) error {
	for k, step := range s.Steps {
		err := step.Do(ctx)
		if err == nil {
			continue
		}

		logging.Warn("Saga step failed",
			"operation", s.Operation,
			"step", step.Name,
			"error", err,
		)

		residual := s.compensate(ctx, k)
		if len(residual) == 0 {
			return fmt.Errorf("%s: %w", step.Name, err)
		}

		if s.Metrics != nil {
			s.Metrics.PartialFailuresTotal.WithLabelValues(s.Operation).Inc()
		}
		pfe := &PartialFailureError{
			Operation: s.Operation,
			Step:      step.Name,
			Err:       err,
			Residual:  residual,
		}
		logging.Error("Saga left residual state",
			"operation", s.Operation,
			"step", step.Name,
			"residual", pfe.ResidualSummary(),
		)
		return pfe
	}
	return nil
}

// compensate undoes steps[0:failed] in reverse and returns what could not be undone
func (s *Saga) compensate(ctx context.Context, failed int) []string {
	// compensation must still run if the caller went away
	ctx = context.WithoutCancel(ctx)

	var residual []string
	for i := failed - 1; i >= 0; i-- {
		step := s.Steps[i]
		if step.Compensate == nil {
			residual = append(residual, step.residual())
			continue
		}

		outcome := "success"
		if err := step.Compensate(ctx); err != nil {
			outcome = "error"
			residual = append(residual, step.residual())
			logging.Error("Compensation failed",
				"operation", s.Operation,
				"step", step.Name,
				"error", err,
			)
		}
		if s.Metrics != nil {
			s.Metrics.CompensationsTotal.WithLabelValues(step.Name, outcome).Inc()
		}
	}
	return residual
}
