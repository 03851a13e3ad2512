package postgres

import (
	"context"
	"fmt"
)

// SequenceStore implements numerator.Source on top of an UPSERT counter
// table. The increment and the returned value are atomic, so concurrent
// callers never see the same number.
type SequenceStore struct {
	txm *TxManager
}

func NewSequenceStore(txm *TxManager) *SequenceStore {
	return &SequenceStore{txm: txm}
}

func (s *SequenceStore) NextValue(ctx context.Context, key string, increment int64) (int64, error) {
	var value int64
	err := s.txm.GetQuerier(ctx).QueryRow(ctx, `
		INSERT INTO app_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = app_sequences.current_val + $2
		RETURNING current_val
	`, key, increment).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence value: %w", err)
	}
	return value, nil
}
