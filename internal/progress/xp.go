package progress

import "math"

const (
	// BaseXP scales the per-level requirement: Requirement(level) = BaseXP * level.
	BaseXP = 100.0

	// XPPerStudyHour is awarded per hour of a completed study task.
	XPPerStudyHour = 20.0

	// XPPerDeadline is the flat award for a completed deadline task.
	XPPerDeadline = 50.0
)

// Requirement returns the XP needed to advance past the given level.
func Requirement(level int) float64 {
	return BaseXP * float64(level)
}

// Normalize rolls surplus XP into level-ups until XP is below the requirement of
// the current level. Level is never reduced.
func Normalize(p Progress) Progress {
	if p.Level < 1 {
		p.Level = 1
	}
	if math.IsNaN(p.XP) || math.IsInf(p.XP, 0) || p.XP < 0 {
		p.XP = 0
	}
	for p.XP >= Requirement(p.Level) {
		p.XP -= Requirement(p.Level)
		p.Level++
	}
	return p
}

// taskXP is the XP a task is worth when completed. Unknown types, missing or
// invalid durations are worth nothing.
func taskXP(t Task) float64 {
	switch t.Type {
	case TaskTypeStudy:
		return studyHours(t) * XPPerStudyHour
	case TaskTypeDeadline:
		return XPPerDeadline
	default:
		return 0
	}
}

func studyHours(t Task) float64 {
	if t.Duration == nil {
		return 0
	}
	d := *t.Duration
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0
	}
	return d
}

// ToggleCompletion returns the XP delta for flipping t's completion flag, computed
// from the state before the flip. Un-completing reverses the award.
func ToggleCompletion(t Task, wasCompleted bool) float64 {
	xp := taskXP(t)
	if wasCompleted {
		return -xp
	}
	return xp
}

// ApplyDelta adds delta to the progress XP, flooring at zero. It does not level
// up; run Recompute afterwards.
func ApplyDelta(p Progress, delta float64) Progress {
	out := p.Clone()
	out.XP = math.Max(0, out.XP+delta)
	return out
}
