package progress

import "strings"

type TaskType string

const (
	TaskTypeStudy    TaskType = "STUDY"
	TaskTypeDeadline TaskType = "DEADLINE"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeStudy, TaskTypeDeadline:
		return true
	default:
		return false
	}
}

// ParseTaskType accepts the stored form as well as short user input (study|deadline|s|d).
func ParseTaskType(input string) (TaskType, bool) {
	s := strings.TrimSpace(strings.ToUpper(input))
	switch s {
	case "STUDY", "S":
		return TaskTypeStudy, true
	case "DEADLINE", "D", "SUBMISSION":
		return TaskTypeDeadline, true
	default:
		return "", false
	}
}

// Task is the slice of a stored task the engine reads.
type Task struct {
	ID          string
	Type        TaskType
	Duration    *float64 // hours, study tasks only
	IsCompleted bool
}

// Badge is a one-shot achievement. Achieved only ever goes from false to true.
type Badge struct {
	ID          string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Icon        string `json:"icon" mapstructure:"icon"`
	XPReward    int    `json:"xpReward" mapstructure:"xp_reward"`
	Achieved    bool   `json:"achieved" mapstructure:"-"`
}

// Progress is the player state: level, XP inside the level, and badge set.
type Progress struct {
	Level  int     `json:"level"`
	XP     float64 `json:"xp"`
	Badges []Badge `json:"badges"`
}

// NewProgress returns the first-run record for the given badge definitions.
func NewProgress(defs []Badge) Progress {
	badges := make([]Badge, len(defs))
	copy(badges, defs)
	for i := range badges {
		badges[i].Achieved = false
	}
	return Progress{Level: 1, XP: 0, Badges: badges}
}

// Clone returns a copy whose badge slice does not alias p's.
func (p Progress) Clone() Progress {
	out := p
	out.Badges = make([]Badge, len(p.Badges))
	copy(out.Badges, p.Badges)
	return out
}

// Badge looks up a badge by id.
func (p Progress) Badge(id string) (Badge, bool) {
	for _, b := range p.Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// CountAchieved returns how many badges have been achieved.
func (p Progress) CountAchieved() int {
	n := 0
	for _, b := range p.Badges {
		if b.Achieved {
			n++
		}
	}
	return n
}
