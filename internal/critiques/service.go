package critiques

import (
	"context"
	"strings"
	"sync"
	"time"

	"resume-critiquer/internal/llm"
	"resume-critiquer/internal/shared/metrics"
	"resume-critiquer/internal/shared/telemetry"
)

const (
	persistAttempts = 3
	persistTimeout  = 10 * time.Second
)

// Service contains the critique workflow: validate input, call the LLM,
// validate the reply shape, and persist the record as a detached side effect.
type Service struct {
	Repo Repo
	LLM  llm.Client

	now     func() time.Time
	pending sync.WaitGroup
}

// NewService constructs a Service.
func NewService(repo Repo, client llm.Client) *Service {
	return &Service{
		Repo: repo,
		LLM:  client,
		now:  time.Now,
	}
}

// Analyze produces a critique for the given resume text. The returned record
// is handed to the caller as soon as the critique is computed; persistence
// runs in the background and its failure never discards the critique.
func (s *Service) Analyze(ctx context.Context, userID, userEmail, resumeText, jobDescription string) (CritiqueRecord, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return CritiqueRecord{}, ErrEmptyResume
	}

	metrics.IncCritiqueStarted()
	started := time.Now()
	raw, err := s.LLM.CritiqueResume(ctx, llm.CritiqueInput{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	metrics.ObserveCritiqueDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncCritiqueFailed()
		return CritiqueRecord{}, err
	}

	jobMatchExpected := strings.TrimSpace(jobDescription) != ""
	result, err := ParseResult(raw, jobMatchExpected)
	if err != nil {
		metrics.IncCritiqueFailed()
		return CritiqueRecord{}, err
	}
	metrics.IncCritiqueCompleted()

	record := NewRecord(userID, userEmail, resumeText, jobDescription, result, s.now())

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.persist(record)
	}()

	return record, nil
}

// persist saves the record with bounded retry. It runs detached from the
// request so a slow or failing store cannot block the response path.
func (s *Service) persist(record CritiqueRecord) {
	var lastErr error
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		lastErr = s.Repo.Save(ctx, record)
		cancel()
		if lastErr == nil {
			telemetry.Info("critique.saved", map[string]any{
				"record_id": record.ID,
				"user_id":   record.UserID,
				"attempt":   attempt,
			})
			return
		}
		telemetry.Warn("critique.save_failed", map[string]any{
			"record_id": record.ID,
			"user_id":   record.UserID,
			"attempt":   attempt,
			"error":     lastErr.Error(),
		})
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	telemetry.Error("critique.save_abandoned", map[string]any{
		"record_id": record.ID,
		"user_id":   record.UserID,
		"error":     lastErr.Error(),
	})
}

// Flush blocks until all background persistence has finished. Used on
// shutdown and by tests.
func (s *Service) Flush() {
	s.pending.Wait()
}

// Get returns a record scoped to its owner. Records belonging to another user
// are reported as not found.
func (s *Service) Get(ctx context.Context, userID, recordID string) (CritiqueRecord, error) {
	record, err := s.Repo.GetByID(ctx, recordID)
	if err != nil {
		return CritiqueRecord{}, err
	}
	if record.UserID != userID {
		return CritiqueRecord{}, ErrNotFound
	}
	return record, nil
}

// List returns the user's records, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]CritiqueRecord, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a record after verifying the requester owns it. The store
// level delete itself is unconditional by id.
func (s *Service) Delete(ctx context.Context, userID, recordID string) error {
	if _, err := s.Get(ctx, userID, recordID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, recordID)
}
