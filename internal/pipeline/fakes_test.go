package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
)

// fakeProvider serves canned metrics per ticker and records fetch order
type fakeProvider struct {
	mu      sync.Mutex
	metrics map[string]models.SentimentMetrics
	errs    map[string]error
	fetched []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		metrics: make(map[string]models.SentimentMetrics),
		errs:    make(map[string]error),
	}
}

func (p *fakeProvider) withMetrics(ticker string, mentions int, sentiment float64) *fakeProvider {
	p.metrics[ticker] = models.SentimentMetrics{
		Ticker:         ticker,
		Mentions:       mentions,
		Upvotes:        mentions * 3,
		Comments:       mentions * 2,
		UniqueUsers:    mentions,
		SentimentScore: sentiment,
		FetchedAt:      time.Now(),
	}
	return p
}

func (p *fakeProvider) withEmptyMetrics(ticker string) *fakeProvider {
	p.metrics[ticker] = models.SentimentMetrics{Ticker: ticker}
	return p
}

func (p *fakeProvider) withError(ticker string, err error) *fakeProvider {
	p.errs[ticker] = err
	return p
}

func (p *fakeProvider) FetchMetrics(ctx context.Context, candidate models.Candidate) (models.SentimentMetrics, error) {
	p.mu.Lock()
	p.fetched = append(p.fetched, candidate.Ticker)
	p.mu.Unlock()

	if err, ok := p.errs[candidate.Ticker]; ok {
		return models.SentimentMetrics{}, err
	}
	if m, ok := p.metrics[candidate.Ticker]; ok {
		return m, nil
	}
	return models.SentimentMetrics{Ticker: candidate.Ticker}, nil
}

// fakeScorer returns a fixed decision per ticker, optionally failing some
type fakeScorer struct {
	decisions   map[string]models.Decision
	confidences map[string]int
	errs        map[string]error
	panics      map[string]bool
	delay       time.Duration
}

func newFakeScorer() *fakeScorer {
	return &fakeScorer{
		decisions:   make(map[string]models.Decision),
		confidences: make(map[string]int),
		errs:        make(map[string]error),
		panics:      make(map[string]bool),
	}
}

func (s *fakeScorer) withSignal(ticker string, decision models.Decision, confidence int) *fakeScorer {
	s.decisions[ticker] = decision
	s.confidences[ticker] = confidence
	return s
}

func (s *fakeScorer) withError(ticker string, err error) *fakeScorer {
	s.errs[ticker] = err
	return s
}

func (s *fakeScorer) withPanic(ticker string) *fakeScorer {
	s.panics[ticker] = true
	return s
}

func (s *fakeScorer) ScoreSignal(ctx context.Context, ticker string, metrics models.SentimentMetrics) (*models.TradeSignal, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panics[ticker] {
		var missing *models.TradeSignal
		return missing, fmt.Errorf("confidence %d", missing.Confidence)
	}
	if err, ok := s.errs[ticker]; ok {
		return nil, err
	}

	decision, ok := s.decisions[ticker]
	if !ok {
		decision = models.DecisionHold
	}
	confidence, ok := s.confidences[ticker]
	if !ok {
		confidence = 50
	}

	return &models.TradeSignal{
		ID:         fmt.Sprintf("sig_%s_test", ticker),
		Ticker:     ticker,
		Decision:   decision,
		Confidence: confidence,
		Rationale:  "test signal",
		Metrics:    metrics,
		CreatedAt:  time.Now(),
	}, nil
}

// memoryJobStorage is an in-memory JobStorage
type memoryJobStorage struct {
	mu        sync.Mutex
	jobs      map[string]models.AnalysisJob
	failOn    map[string]bool // operation names that should fail
	createErr error
}

func newMemoryJobStorage() *memoryJobStorage {
	return &memoryJobStorage{
		jobs:   make(map[string]models.AnalysisJob),
		failOn: make(map[string]bool),
	}
}

func (s *memoryJobStorage) CreateJob(ctx context.Context, job *models.AnalysisJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job already exists: %s", job.ID)
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *memoryJobStorage) UpdateJob(ctx context.Context, job *models.AnalysisJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn["update"] {
		return fmt.Errorf("simulated update failure")
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *memoryJobStorage) GetJob(ctx context.Context, jobID string) (*models.AnalysisJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	copied := job
	return &copied, nil
}

func (s *memoryJobStorage) ListJobs(ctx context.Context, opts *interfaces.JobListOptions) ([]*models.AnalysisJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.AnalysisJob, 0, len(s.jobs))
	for id := range s.jobs {
		job := s.jobs[id]
		out = append(out, &job)
	}
	return out, nil
}

func (s *memoryJobStorage) DeleteJob(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
	return nil
}

// memorySignalStorage is an in-memory SignalStorage with per-ticker failures
type memorySignalStorage struct {
	mu      sync.Mutex
	signals []models.TradeSignal
	failFor map[string]bool
}

func newMemorySignalStorage() *memorySignalStorage {
	return &memorySignalStorage{failFor: make(map[string]bool)}
}

func (s *memorySignalStorage) SaveSignal(ctx context.Context, signal *models.TradeSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[signal.Ticker] {
		return fmt.Errorf("simulated write failure for %s", signal.Ticker)
	}
	s.signals = append(s.signals, *signal)
	return nil
}

func (s *memorySignalStorage) GetSignal(ctx context.Context, id string) (*models.TradeSignal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.signals {
		if s.signals[i].ID == id {
			copied := s.signals[i]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("signal not found: %s", id)
}

func (s *memorySignalStorage) ListSignals(ctx context.Context, ticker string, limit int) ([]*models.TradeSignal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.TradeSignal, 0, len(s.signals))
	for i := range s.signals {
		if ticker != "" && s.signals[i].Ticker != ticker {
			continue
		}
		copied := s.signals[i]
		out = append(out, &copied)
	}
	return out, nil
}

// recordingNotifier captures delivered signals, optionally failing some tickers
type recordingNotifier struct {
	mu        sync.Mutex
	delivered []string
	failFor   map[string]bool
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{failFor: make(map[string]bool)}
}

func (n *recordingNotifier) Notify(ctx context.Context, signal *models.TradeSignal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[signal.Ticker] {
		return fmt.Errorf("simulated delivery failure")
	}
	n.delivered = append(n.delivered, signal.Ticker)
	return nil
}

func candidates(tickers ...string) []models.Candidate {
	out := make([]models.Candidate, len(tickers))
	for i, t := range tickers {
		out[i] = models.Candidate{Ticker: t, Rank: i + 1, Source: "test"}
	}
	return out
}
