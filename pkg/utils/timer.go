package utils

import "time"

// Phase is one completed timing phase.
type Phase struct {
	Name     string
	Duration time.Duration
}

// Timer records named phases of a pipeline run in insertion order.
// It is not safe for concurrent use; the pipeline is single-threaded.
type Timer struct {
	name      string
	startTime time.Time
	phases    []Phase
}

// NewTimer creates a new Timer with the given name.
func NewTimer(name string) *Timer {
	return &Timer{
		name:      name,
		startTime: time.Now(),
	}
}

// TimeFunc times the execution of fn and records it as a phase.
func (t *Timer) TimeFunc(phaseName string, fn func() error) error {
	start := time.Now()
	err := fn()
	t.phases = append(t.phases, Phase{Name: phaseName, Duration: time.Since(start)})
	return err
}

// Phases returns all completed phases in insertion order.
func (t *Timer) Phases() []Phase {
	return t.phases
}

// TotalDuration returns the total duration since the timer was created.
func (t *Timer) TotalDuration() time.Duration {
	return time.Since(t.startTime)
}

// PrintSummary logs one line per phase plus the total.
func (t *Timer) PrintSummary(log Logger) {
	if log == nil {
		return
	}
	log.Debug("=== %s timing ===", t.name)
	for _, p := range t.phases {
		log.Debug("  %-12s %v", p.Name, p.Duration)
	}
	log.Debug("  total        %v", t.TotalDuration())
}
