// Package suggest handles the offline half of AI study-plan suggestions: the
// prompt sent to a provider, the JSON shape it answers with, and turning the
// answer into study task drafts.
package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for task dates.
const DateLayout = "2006-01-02"

// Suggestion is one suggested study task.
type Suggestion struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EstimatedHours float64 `json:"estimatedHours"`
}

// Draft is a study task ready to be inserted by the planner.
type Draft struct {
	SubjectID string
	Title     string
	Date      string
	Duration  float64
	Memo      string
}

var ErrEmptyPlan = errors.New("suggestion list is empty")

// Prompt returns the instruction text for a provider asked to plan toward goal.
func Prompt(goal string) (string, error) {
	g := strings.TrimSpace(goal)
	if g == "" {
		return "", errors.New("goal is required")
	}
	return fmt.Sprintf("You are an expert study planner. Build a structured JSON array of study tasks "+
		"that helps the student reach the goal %q. Each task must have a title (title), "+
		"what to do (description) and the estimated study time in hours as a number (estimatedHours). "+
		"Propose a realistic, achievable plan.", g), nil
}

// Parse decodes a provider answer: a JSON array of suggestions, possibly
// surrounded by whitespace or a markdown code fence.
func Parse(r io.Reader) ([]Suggestion, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read suggestions: %w", err)
	}
	text := stripFence(strings.TrimSpace(string(raw)))
	if text == "" {
		return nil, ErrEmptyPlan
	}

	var out []Suggestion
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyPlan
	}
	for i := range out {
		out[i].Title = strings.TrimSpace(out[i].Title)
		out[i].Description = strings.TrimSpace(out[i].Description)
		if out[i].Title == "" {
			return nil, fmt.Errorf("suggestion %d: title is required", i+1)
		}
		h := out[i].EstimatedHours
		if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
			return nil, fmt.Errorf("suggestion %d: estimatedHours must be a non-negative number", i+1)
		}
	}
	return out, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// Schedule spreads suggestions over consecutive days starting at start, one per day.
func Schedule(subjectID string, start time.Time, in []Suggestion) []Draft {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]Draft, 0, len(in))
	for i, s := range in {
		out = append(out, Draft{
			SubjectID: subjectID,
			Title:     s.Title,
			Date:      day.AddDate(0, 0, i).Format(DateLayout),
			Duration:  s.EstimatedHours,
			Memo:      s.Description,
		})
	}
	return out
}
