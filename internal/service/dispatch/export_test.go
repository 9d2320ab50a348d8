package dispatch

import "time"

// SetNow replaces the clock.
func (s *Service) SetNow(fn func() time.Time) { s.now = fn }
