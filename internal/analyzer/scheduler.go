package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
)

// ErrEmptyHierarchy is the pipeline's only fatal condition: not a single
// window produced usable structure.
var ErrEmptyHierarchy = errors.New("no window produced any document structure")

// Scheduler drives the windowed analysis of one document: it plans the
// windows, asks the provider about each one over a single conversational
// session, and reconciles the partial answers into one validated
// hierarchy. Windows run strictly one at a time; the backend is shared and
// rate-limited, and the session context cannot be fanned out.
type Scheduler struct {
	WindowSize int
	Overlap    int
	MaxRetries int

	provider Provider
	limiter  *RateLimiter
	logger   *slog.Logger

	// backoff is swappable in tests to avoid real sleeps.
	backoff func(attempt int) time.Duration
}

// NewScheduler creates a scheduler with default window geometry and a
// 2-second base inter-window delay.
func NewScheduler(provider Provider, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		WindowSize: DefaultWindowSize,
		Overlap:    DefaultOverlap,
		MaxRetries: 3,
		provider:   provider,
		limiter:    NewRateLimiter(2 * time.Second),
		logger:     logger,
		backoff:    Backoff,
	}
}

// Limiter exposes the scheduler's rate limiter for configuration.
func (s *Scheduler) Limiter() *RateLimiter {
	return s.limiter
}

// Run analyzes the whole document and returns the reconciled hierarchy.
// Individual window failures degrade to empty contributions; only a fully
// empty result is an error.
func (s *Scheduler) Run(ctx context.Context, doc DocumentPayload, totalPages int) (hierarchy.Hierarchy, error) {
	windows := PlanWindows(totalPages, s.WindowSize, s.Overlap)
	if len(windows) == 0 {
		return nil, fmt.Errorf("no windows to analyze for %d pages", totalPages)
	}

	session, err := s.provider.StartSession(ctx, doc, SystemInstruction)
	if err != nil {
		return nil, fmt.Errorf("starting analysis session: %w", err)
	}

	s.logger.Info("starting windowed analysis",
		"model", s.provider.Model(),
		"pages", totalPages,
		"windows", len(windows),
		"window_size", s.WindowSize,
		"overlap", s.Overlap)

	// Prime the session with a whole-document survey. Its answer is not
	// parsed; it anchors the conversation before the detailed questions.
	if _, err := s.sendWithRetry(ctx, session, InitialSurveyPrompt(totalPages)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("initial survey failed, continuing without it", "error", err)
		s.limiter.Failure()
	}

	var fragments []hierarchy.Hierarchy
	for i, w := range windows {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		s.logger.Info("analyzing window",
			"window", i+1, "of", len(windows),
			"start", w.Start, "end", w.End,
			"delay_multiplier", s.limiter.Multiplier())

		response, err := s.sendWithRetry(ctx, session, WindowPrompt(w, i, len(windows)))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.limiter.Failure()
			s.logger.Warn("window analysis failed, dropping its contribution",
				"window", i+1, "start", w.Start, "end", w.End, "error", err)
			continue
		}
		s.limiter.Success()

		fragment, err := ParseHierarchy(response)
		if err != nil {
			s.logger.Warn("malformed structure response, treating window as empty",
				"window", i+1, "start", w.Start, "end", w.End, "error", err)
			continue
		}
		if len(fragment) == 0 {
			s.logger.Info("no structure found in window", "window", i+1, "start", w.Start, "end", w.End)
			continue
		}

		s.logger.Info("window contributed structure", "window", i+1, "chapters", len(fragment))
		fragments = append(fragments, fragment)
	}

	merged := hierarchy.Merge(fragments)
	hierarchy.Repair(merged, s.logger)
	valid := hierarchy.Validate(merged, s.logger)
	if len(valid) == 0 {
		return nil, ErrEmptyHierarchy
	}
	return valid, nil
}

// sendWithRetry retries transient call failures with exponential backoff
// and jitter, bounded by MaxRetries.
func (s *Scheduler) sendWithRetry(ctx context.Context, session Session, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.backoff(attempt - 1)
			s.logger.Debug("retrying external call", "attempt", attempt+1, "delay", delay)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}

		response, err := session.Send(ctx, prompt)
		if err == nil {
			return response, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", s.MaxRetries, lastErr)
}
