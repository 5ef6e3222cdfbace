// Package policy holds the random distributions a run draws from.
//
// Every random decision in a run goes through one of these small interfaces
// so tests can replace uniform draws with fixed or scripted values.
package policy

import (
	"fmt"
	"math/rand/v2"
)

// Source is the randomness a policy draws from. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// GlobalSource draws from the process-wide generator in math/rand/v2
var GlobalSource Source = globalSource{}

// IntPolicy produces one integer per draw
type IntPolicy interface {
	Draw() int
}

// Picker selects an index in [0, n)
type Picker interface {
	Pick(n int) int
}

// Uniform draws integers uniformly from the closed range [Min, Max]
type Uniform struct {
	Min int
	Max int
	src Source
}

// NewUniform creates a Uniform policy. Min must not exceed Max.
func NewUniform(min, max int, src Source) (*Uniform, error) {
	if min > max {
		return nil, fmt.Errorf("invalid range [%d, %d]: min exceeds max", min, max)
	}
	if src == nil {
		src = GlobalSource
	}
	return &Uniform{Min: min, Max: max, src: src}, nil
}

// Draw implements IntPolicy
func (u *Uniform) Draw() int {
	return u.Min + u.src.IntN(u.Max-u.Min+1)
}

// Fixed always draws the same value
type Fixed int

// Draw implements IntPolicy
func (f Fixed) Draw() int { return int(f) }

// Sequence draws its values in order and repeats the last one once exhausted.
// An empty Sequence draws 0.
type Sequence struct {
	Values []int
	next   int
}

// Draw implements IntPolicy
func (s *Sequence) Draw() int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next]
	if s.next < len(s.Values)-1 {
		s.next++
	}
	return v
}

// UniformPicker picks every index with equal probability
type UniformPicker struct {
	src Source
}

// NewUniformPicker creates a UniformPicker over src
func NewUniformPicker(src Source) *UniformPicker {
	if src == nil {
		src = GlobalSource
	}
	return &UniformPicker{src: src}
}

// Pick implements Picker
func (p *UniformPicker) Pick(n int) int {
	return p.src.IntN(n)
}

// FixedPicker always picks the same index, clamped to the last valid one
type FixedPicker int

// Pick implements Picker
func (f FixedPicker) Pick(n int) int {
	if int(f) >= n {
		return n - 1
	}
	if f < 0 {
		return 0
	}
	return int(f)
}

// Ranges are the closed bounds of the per-run draws
type Ranges struct {
	MinCommits      int
	MaxCommits      int
	MinDelaySeconds int
	MaxDelaySeconds int
}

// DefaultRanges returns the stock bounds: 1-3 commits, 30-180 seconds apart
func DefaultRanges() Ranges {
	return Ranges{
		MinCommits:      1,
		MaxCommits:      3,
		MinDelaySeconds: 30,
		MaxDelaySeconds: 180,
	}
}

// Policies groups every random decision a run makes
type Policies struct {
	CommitCount  IntPolicy
	DelaySeconds IntPolicy
	Hour         IntPolicy
	Minute       IntPolicy
	Action       Picker
	Message      Picker
}

// New builds uniform policies over the given ranges. The next-run time is
// always drawn from the full day.
func New(r Ranges, src Source) (Policies, error) {
	count, err := NewUniform(r.MinCommits, r.MaxCommits, src)
	if err != nil {
		return Policies{}, fmt.Errorf("commit count: %w", err)
	}
	delay, err := NewUniform(r.MinDelaySeconds, r.MaxDelaySeconds, src)
	if err != nil {
		return Policies{}, fmt.Errorf("delay: %w", err)
	}
	hour, _ := NewUniform(0, 23, src)
	minute, _ := NewUniform(0, 59, src)
	picker := NewUniformPicker(src)

	return Policies{
		CommitCount:  count,
		DelaySeconds: delay,
		Hour:         hour,
		Minute:       minute,
		Action:       picker,
		Message:      picker,
	}, nil
}
