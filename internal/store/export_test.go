package store

import "time"

// SetNowFunc overrides the store's clock so tests control timestamps.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.now = now
}
