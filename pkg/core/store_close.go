package core

// Close closes the database connection and releases resources. Closing an
// already-closed store is a no-op.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
	}

	s.logger.Info("database connection closed")

	return nil
}
