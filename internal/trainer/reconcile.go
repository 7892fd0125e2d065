package trainer

import "time"

// Reconciliation describes what catching up on time away did to a session.
type Reconciliation struct {
	Gap          time.Duration
	ElapsedAdded int
	ForcePaused  bool
	RestExpired  bool
	RestResumed  bool
}

// Reconcile catches a session up to now after time away. The reference
// instant is BackgroundedAt when set, else the last save, which is what a
// cold start has. A running clock gains the gap unless the gap reaches
// StaleGap, in which case it is paused instead. A running rest timer loses
// the gap and ends at zero. Paused timers keep their values.
func Reconcile(s *SessionState, now time.Time) Reconciliation {
	since := s.LastSaved
	if s.BackgroundedAt != nil {
		since = *s.BackgroundedAt
	}
	s.BackgroundedAt = nil

	var r Reconciliation
	if !s.Active || since.IsZero() {
		return r
	}

	r.Gap = now.Sub(since)
	if r.Gap < 0 {
		r.Gap = 0
	}
	gapSeconds := int(r.Gap / time.Second)

	if !s.TimerPaused {
		if r.Gap >= StaleGap {
			s.TimerPaused = true
			r.ForcePaused = true
		} else {
			s.ElapsedSeconds += gapSeconds
			r.ElapsedAdded = gapSeconds
		}
	}

	if s.Rest.Active && !s.Rest.Paused {
		remaining := s.Rest.Remaining - gapSeconds
		if remaining <= 0 {
			s.Rest = RestTimer{}
			r.RestExpired = true
		} else {
			s.Rest.Remaining = remaining
			r.RestResumed = true
		}
	}
	return r
}
