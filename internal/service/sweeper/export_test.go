package sweeper

import "time"

// SetNow replaces the clock.
func (s *Sweeper) SetNow(fn func() time.Time) { s.now = fn }
