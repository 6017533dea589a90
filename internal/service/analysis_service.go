package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"specanalyzer/internal/analyzer"
	"specanalyzer/internal/cache"
	"specanalyzer/internal/model"
	"specanalyzer/internal/repository"
)

var (
	// ErrEmptyInput is a boundary validation failure; it never reaches
	// the core decision logic
	ErrEmptyInput = errors.New("document text and user query must not be empty")

	// ErrDocumentTooLarge rejects documents above the configured size
	// ceiling before extraction begins
	ErrDocumentTooLarge = errors.New("document exceeds the maximum allowed size")

	// ErrAnalysisTimeout is returned when the analysis exceeds its
	// wall-clock budget; the in-flight computation is abandoned
	ErrAnalysisTimeout = errors.New("analysis timed out")
)

// AnalysisService runs one analysis end to end: boundary validation,
// the core engine, session persistence and statistics
type AnalysisService struct {
	engine   *analyzer.Analyzer
	sessions repository.SessionRepo
	stats    cache.StatsCache

	maxDocumentSize int
	timeout         time.Duration
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(engine *analyzer.Analyzer, sessions repository.SessionRepo, stats cache.StatsCache, maxDocumentSize int, timeout time.Duration) *AnalysisService {
	return &AnalysisService{
		engine:          engine,
		sessions:        sessions,
		stats:           stats,
		maxDocumentSize: maxDocumentSize,
		timeout:         timeout,
	}
}

// Analyze validates the inputs, runs the core under the configured
// timeout and records the session. Persistence failures are logged,
// never surfaced: the caller still gets the analysis result.
func (s *AnalysisService) Analyze(ctx context.Context, documentText, userQuery string) (*model.AnalysisResult, string, error) {
	if strings.TrimSpace(documentText) == "" || strings.TrimSpace(userQuery) == "" {
		return nil, "", ErrEmptyInput
	}
	if len(documentText) > s.maxDocumentSize {
		return nil, "", ErrDocumentTooLarge
	}

	start := time.Now()
	result, err := s.runWithTimeout(ctx, documentText, userQuery)
	if err != nil {
		return nil, "", err
	}
	elapsed := time.Since(start)

	sessionID := uuid.NewString()
	session := &model.AnalysisSession{
		SessionID:        sessionID,
		DocumentText:     documentText,
		UserQuery:        userQuery,
		Result:           result,
		Decision:         result.Decision,
		ConfidenceScore:  result.ConfidenceScore,
		DocumentSize:     len(documentText),
		ProcessingTimeMS: elapsed.Milliseconds(),
		CreatedAt:        start,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		log.Printf("failed to persist analysis session %s: %v", sessionID, err)
	}
	if err := s.stats.RecordAnalysis(ctx, result.Decision, elapsed.Milliseconds()); err != nil {
		log.Printf("failed to record analysis stats: %v", err)
	}

	return result, sessionID, nil
}

// runWithTimeout applies a best-effort wall-clock bound around the
// core. The core has no internal cancellation; on timeout the call is
// abandoned, which is safe because the core holds no mutable state.
func (s *AnalysisService) runWithTimeout(ctx context.Context, documentText, userQuery string) (*model.AnalysisResult, error) {
	done := make(chan *model.AnalysisResult, 1)
	go func() {
		done <- s.engine.Analyze(documentText, userQuery)
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case result := <-done:
		return result, nil
	case <-timer.C:
		return nil, ErrAnalysisTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetSession returns one stored session, or nil when unknown
func (s *AnalysisService) GetSession(ctx context.Context, sessionID string) (*model.AnalysisSession, error) {
	return s.sessions.GetBySessionID(ctx, sessionID)
}

// ListSessions returns the most recent sessions, newest first
func (s *AnalysisService) ListSessions(ctx context.Context, limit int) ([]*model.AnalysisSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.sessions.List(ctx, limit)
}

// DeleteSession removes one stored session
func (s *AnalysisService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Stats reads the dashboard counters from the cache, falling back to
// the session store when the cache is empty
func (s *AnalysisService) Stats(ctx context.Context) (*model.StatsSnapshot, error) {
	snapshot, err := s.stats.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot.TotalAnalyses > 0 {
		return snapshot, nil
	}

	// Cold cache: rebuild the breakdown from persisted sessions
	counts, err := s.sessions.CountByDecision(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return &model.StatsSnapshot{TotalAnalyses: total, DecisionCounts: counts}, nil
}
