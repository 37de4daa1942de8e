package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
)

// resolveTaskID expands a unique id prefix to a full task id.
func resolveTaskID(ctx context.Context, svc *planner.Service, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("task id is required")
	}
	all, err := svc.ListTasks(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, t := range all {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %s: %w", ref, planner.ErrTaskNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveSubjectID accepts a subject id, a unique id prefix or a name.
func resolveSubjectID(ctx context.Context, svc *planner.Service, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("subject is required (--subject)")
	}
	subs, err := svc.ListSubjects(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, s := range subs {
		if s.ID == ref || strings.EqualFold(s.Name, ref) {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("subject %s: %w", ref, planner.ErrSubjectNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("subject %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
