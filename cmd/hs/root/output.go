package root

import (
	"fmt"
	"io"
	"time"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func printTask(w io.Writer, t storage.Task, subjects map[string]string) {
	line := fmt.Sprintf("%s %s %s %s", ui.CheckBox(t.IsCompleted), ui.Muted.Render(shortID(t.ID)), ui.TypeIcon(t.Type), t.Title)
	if name, ok := subjects[t.SubjectID]; ok {
		line += " " + ui.Muted.Render("["+name+"]")
	}
	if t.Duration != nil {
		line += " " + ui.Muted.Render(fmt.Sprintf("%gh", *t.Duration))
	}
	if t.StartTime != nil {
		line += " " + ui.Muted.Render("@"+*t.StartTime)
	}
	fmt.Fprintln(w, line)
}

// printOutcome reports level-ups and badge unlocks after a mutation.
func printOutcome(w io.Writer, o planner.Outcome) {
	if o.LevelUp {
		fmt.Fprintf(w, "%s %s level %d → %d\n", ui.IconBolt, ui.LevelUpBanner, o.LevelBefore, o.LevelAfter)
	}
	for _, b := range o.Unlocked {
		fmt.Fprintf(w, "%s %s %s %s\n", ui.IconTrophy, ui.Gold.Render("Badge unlocked:"), b.Name, ui.Muted.Render(fmt.Sprintf("(+%d XP)", b.XPReward)))
	}
}

func badgeLine(b planner.BadgeStatus) string {
	switch {
	case b.Achieved:
		line := fmt.Sprintf("- %s %s %s", ui.BadgeIcon(b.Icon), ui.Gold.Render(b.Name), ui.Muted.Render(b.Description))
		if b.AchievedAt != nil {
			line += " " + ui.Muted.Render("earned "+b.AchievedAt.Local().Format(time.DateOnly))
		}
		return line
	case !b.Available:
		return fmt.Sprintf("- %s %s %s", ui.IconLock, ui.Muted.Render(b.Name), ui.Warn.Render("(not yet available)"))
	default:
		return fmt.Sprintf("- %s %s %s", ui.IconLock, b.Name, ui.Muted.Render(fmt.Sprintf("%s (+%d XP)", b.Description, b.XPReward)))
	}
}

func subjectNames(subs []storage.Subject) map[string]string {
	out := make(map[string]string, len(subs))
	for _, s := range subs {
		out[s.ID] = s.Name
	}
	return out
}
