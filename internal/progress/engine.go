package progress

// Result is the outcome of Recompute.
type Result struct {
	Progress     Progress
	Unlocked     []Badge
	LevelsGained int
	Changed      bool
}

// Recompute evaluates badge rules over the complete task list, grants the reward
// of every newly achieved badge, and rolls surplus XP into level-ups. p is not
// modified. Calling it again with the same tasks on its output changes nothing.
func Recompute(tasks []Task, p Progress) Result {
	stats := Stats(tasks)
	out := p.Clone()

	var unlocked []Badge
	pending := 0
	for i := range out.Badges {
		b := &out.Badges[i]
		if b.Achieved {
			continue
		}
		holds, ok := rules[b.ID]
		if !ok || !holds(stats) {
			continue
		}
		b.Achieved = true
		if b.XPReward > 0 {
			pending += b.XPReward
		}
		unlocked = append(unlocked, *b)
	}

	levelBefore := max(out.Level, 1)
	out.XP += float64(pending)
	out = Normalize(out)

	return Result{
		Progress:     out,
		Unlocked:     unlocked,
		LevelsGained: out.Level - levelBefore,
		Changed:      len(unlocked) > 0 || out.Level != p.Level || out.XP != p.XP,
	}
}
