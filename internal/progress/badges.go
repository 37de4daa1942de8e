package progress

const (
	BadgeFirstStep      = "first_step"
	BadgeStudy10h       = "study_10h"
	BadgeStudy50h       = "study_50h"
	BadgePerfectWeek    = "perfect_week"
	BadgeDeadlineMaster = "deadline_master"
)

const (
	StudyHoursTier1    = 10.0
	StudyHoursTier2    = 50.0
	DeadlineMasterGoal = 5
)

// DefaultBadges returns fresh copies of the built-in badge table.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: BadgeFirstStep, Name: "First Step", Description: "Complete your first task", Icon: "check", XPReward: 50},
		{ID: BadgeStudy10h, Name: "Studious", Description: "Study 10 hours in total", Icon: "book", XPReward: 100},
		{ID: BadgeStudy50h, Name: "Diligent", Description: "Study 50 hours in total", Icon: "book", XPReward: 500},
		{ID: BadgePerfectWeek, Name: "Perfect Week", Description: "Complete every task in a week", Icon: "calendar", XPReward: 300},
		{ID: BadgeDeadlineMaster, Name: "Deadline Master", Description: "Complete 5 deadline tasks", Icon: "flag", XPReward: 200},
	}
}

// TaskStats aggregates the completed-task figures badge rules read.
type TaskStats struct {
	AnyCompleted       bool
	StudyHours         float64
	DeadlinesCompleted int
}

// Stats computes TaskStats over the full task list.
func Stats(tasks []Task) TaskStats {
	var s TaskStats
	for _, t := range tasks {
		if !t.IsCompleted {
			continue
		}
		s.AnyCompleted = true
		switch t.Type {
		case TaskTypeStudy:
			s.StudyHours += studyHours(t)
		case TaskTypeDeadline:
			s.DeadlinesCompleted++
		}
	}
	return s
}

// rule is an unlock predicate. Rules must be monotone in completion state so
// that evaluating them in any order gives the same result.
type rule func(s TaskStats) bool

// perfect_week has no rule: its condition is not defined yet and it stays locked.
var rules = map[string]rule{
	BadgeFirstStep:      func(s TaskStats) bool { return s.AnyCompleted },
	BadgeStudy10h:       func(s TaskStats) bool { return s.StudyHours >= StudyHoursTier1 },
	BadgeStudy50h:       func(s TaskStats) bool { return s.StudyHours >= StudyHoursTier2 },
	BadgeDeadlineMaster: func(s TaskStats) bool { return s.DeadlinesCompleted >= DeadlineMasterGoal },
}

// HasRule reports whether a badge id has an unlock rule wired.
func HasRule(id string) bool {
	_, ok := rules[id]
	return ok
}

// Unreachable returns the ids in defs that have no unlock rule.
func Unreachable(defs []Badge) []string {
	var out []string
	for _, b := range defs {
		if !HasRule(b.ID) {
			out = append(out, b.ID)
		}
	}
	return out
}

// MergeBadges applies configured overrides onto defs. Entries with a known id
// replace its display fields and reward; unknown ids are appended.
func MergeBadges(defs []Badge, overrides []Badge) []Badge {
	out := make([]Badge, len(defs))
	copy(out, defs)
	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.ID] = i
	}
	for _, o := range overrides {
		if o.ID == "" {
			continue
		}
		o.Achieved = false
		if i, ok := index[o.ID]; ok {
			cur := out[i]
			if o.Name != "" {
				cur.Name = o.Name
			}
			if o.Description != "" {
				cur.Description = o.Description
			}
			if o.Icon != "" {
				cur.Icon = o.Icon
			}
			if o.XPReward > 0 {
				cur.XPReward = o.XPReward
			}
			out[i] = cur
			continue
		}
		if o.XPReward < 0 {
			o.XPReward = 0
		}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	return out
}

// EnsureBadges appends definitions missing from p and refreshes display fields
// of existing ones. Achieved flags are kept as stored.
func EnsureBadges(p Progress, defs []Badge) Progress {
	out := p.Clone()
	index := make(map[string]int, len(out.Badges))
	for i, b := range out.Badges {
		index[b.ID] = i
	}
	for _, d := range defs {
		if i, ok := index[d.ID]; ok {
			achieved := out.Badges[i].Achieved
			out.Badges[i] = d
			out.Badges[i].Achieved = achieved
			continue
		}
		d.Achieved = false
		index[d.ID] = len(out.Badges)
		out.Badges = append(out.Badges, d)
	}
	return out
}
