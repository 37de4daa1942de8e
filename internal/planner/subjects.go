package planner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

// SubjectColors is the palette new subjects cycle through when no color is given.
var SubjectColors = []string{
	"#F87171", "#FB923C", "#FBBF24", "#A3E635", "#4ADE80", "#34D399",
	"#2DD4BF", "#60A5FA", "#818CF8", "#A78BFA", "#F472B6",
}

type SubjectInput struct {
	Name  string
	Goal  string
	Color string
}

// SubjectPatch edits a subject; nil fields are left unchanged.
type SubjectPatch struct {
	Name  *string
	Goal  *string
	Color *string
}

type DeleteSubjectResult struct {
	SubjectID    string
	TasksDeleted int64
	Outcome
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", invalid("name", "name is required")
	}
	return n, nil
}

func normalizeColor(color string) (string, error) {
	c := strings.TrimSpace(color)
	if len(c) != 7 || c[0] != '#' {
		return "", invalid("color", "%q is not a #RRGGBB color", color)
	}
	for _, r := range c[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", invalid("color", "%q is not a #RRGGBB color", color)
		}
	}
	return strings.ToUpper(c), nil
}

func (s *Service) CreateSubject(ctx context.Context, in SubjectInput) (*storage.Subject, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	repo := storage.NewSubjectRepo(s.db)

	color := strings.TrimSpace(in.Color)
	if color == "" {
		n, err := repo.Count(ctx)
		if err != nil {
			return nil, err
		}
		color = SubjectColors[n%len(SubjectColors)]
	}
	if color, err = normalizeColor(color); err != nil {
		return nil, err
	}

	sub := storage.Subject{
		ID:        s.newID(),
		Name:      name,
		Color:     color,
		Goal:      strings.TrimSpace(in.Goal),
		CreatedAt: s.stamp(),
	}
	if err := repo.Insert(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Debug("subject created", zap.String("subject_id", sub.ID), zap.String("name", sub.Name))
	return &sub, nil
}

func (s *Service) GetSubject(ctx context.Context, id string) (*storage.Subject, error) {
	sub, err := storage.NewSubjectRepo(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("subject %s: %w", id, ErrSubjectNotFound)
	}
	return sub, nil
}

func (s *Service) ListSubjects(ctx context.Context) ([]storage.Subject, error) {
	return storage.NewSubjectRepo(s.db).List(ctx)
}

func (s *Service) UpdateSubject(ctx context.Context, id string, patch SubjectPatch) (*storage.Subject, error) {
	sub, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if sub.Name, err = normalizeName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Goal != nil {
		sub.Goal = strings.TrimSpace(*patch.Goal)
	}
	if patch.Color != nil {
		if sub.Color, err = normalizeColor(*patch.Color); err != nil {
			return nil, err
		}
	}
	if err := storage.NewSubjectRepo(s.db).Update(ctx, *sub); err != nil {
		return nil, err
	}
	s.logger.Debug("subject updated", zap.String("subject_id", id))
	return sub, nil
}

// DeleteSubject removes a subject together with all of its tasks.
func (s *Service) DeleteSubject(ctx context.Context, id string) (*DeleteSubjectResult, error) {
	var deleted int64
	out, err := s.run(ctx, func(r storage.Repos, _ *progress.Progress) error {
		sub, err := r.Subjects.Get(ctx, id)
		if err != nil {
			return err
		}
		if sub == nil {
			return fmt.Errorf("subject %s: %w", id, ErrSubjectNotFound)
		}
		if deleted, err = r.Tasks.DeleteBySubject(ctx, id); err != nil {
			return err
		}
		return r.Subjects.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("subject deleted", zap.String("subject_id", id), zap.Int64("tasks_deleted", deleted))
	return &DeleteSubjectResult{SubjectID: id, TasksDeleted: deleted, Outcome: *out}, nil
}
