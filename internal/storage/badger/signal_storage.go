package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/augur/internal/interfaces"
	"github.com/ternarybob/augur/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// SignalStorage implements the SignalStorage interface for Badger
type SignalStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSignalStorage creates a new SignalStorage instance
func NewSignalStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SignalStorage {
	return &SignalStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SignalStorage) SaveSignal(ctx context.Context, signal *models.TradeSignal) error {
	if signal.ID == "" {
		return fmt.Errorf("signal ID is required")
	}

	if err := s.db.Store().Upsert(signal.ID, signal); err != nil {
		return fmt.Errorf("failed to save signal: %w", err)
	}
	return nil
}

func (s *SignalStorage) GetSignal(ctx context.Context, id string) (*models.TradeSignal, error) {
	var signal models.TradeSignal
	if err := s.db.Store().Get(id, &signal); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("signal not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get signal: %w", err)
	}
	return &signal, nil
}

func (s *SignalStorage) ListSignals(ctx context.Context, ticker string, limit int) ([]*models.TradeSignal, error) {
	var query *badgerhold.Query
	if ticker != "" {
		query = badgerhold.Where("Ticker").Eq(ticker).Index("Ticker")
	} else {
		query = badgerhold.Where("ID").Ne("")
	}
	query = query.SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var signals []models.TradeSignal
	if err := s.db.Store().Find(&signals, query); err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}

	result := make([]*models.TradeSignal, len(signals))
	for i := range signals {
		result[i] = &signals[i]
	}
	return result, nil
}
