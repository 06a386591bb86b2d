package id

import "sync/atomic"

// Sequence hands out monotonically increasing int64 ids starting at 1.
// Each owning service holds its own instance, so independent services
// (and independent test fixtures) never share sequence state.
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}
