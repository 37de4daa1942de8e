package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/suggest"
)

// GET /api/progress
func (h *Handler) GetProgress(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.Progress(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	badges, err := h.svc.Badges(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	weekXP, err := h.svc.XPSince(ctx, h.svc.WeekStart())
	if err != nil {
		h.fail(c, err)
		return
	}
	view := newProgressView(p)
	c.JSON(http.StatusOK, gin.H{
		"level":       view.Level,
		"xp":          view.XP,
		"requirement": view.Requirement,
		"weekXp":      weekXP,
		"badges":      newBadgeViews(badges),
	})
}

// GET /api/subjects
func (h *Handler) ListSubjects(c *gin.Context) {
	subs, err := h.svc.ListSubjects(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]subjectView, len(subs))
	for i := range subs {
		out[i] = newSubjectView(subs[i])
	}
	c.JSON(http.StatusOK, gin.H{"subjects": out})
}

type subjectRequest struct {
	Name  *string `json:"name"`
	Goal  *string `json:"goal"`
	Color *string `json:"color"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// POST /api/subjects
func (h *Handler) CreateSubject(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	sub, err := h.svc.CreateSubject(c.Request.Context(), planner.SubjectInput{
		Name:  deref(req.Name),
		Goal:  deref(req.Goal),
		Color: deref(req.Color),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSubjectView(*sub))
}

// PUT /api/subjects/:id
func (h *Handler) UpdateSubject(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	sub, err := h.svc.UpdateSubject(c.Request.Context(), c.Param("id"), planner.SubjectPatch{
		Name:  req.Name,
		Goal:  req.Goal,
		Color: req.Color,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubjectView(*sub))
}

// DELETE /api/subjects/:id
func (h *Handler) DeleteSubject(c *gin.Context) {
	res, err := h.svc.DeleteSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subjectId":    res.SubjectID,
		"tasksDeleted": res.TasksDeleted,
		"outcome":      newOutcomeView(res.Outcome),
	})
}

// GET /api/tasks?from=&to=
func (h *Handler) ListTasks(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	ctx := c.Request.Context()

	var (
		views []taskView
		err   error
	)
	switch {
	case from == "" && to == "":
		all, lerr := h.svc.ListTasks(ctx)
		views, err = newTaskViews(all), lerr
	case from == "" || to == "":
		badRequest(c, "from and to must be given together")
		return
	default:
		some, lerr := h.svc.ListTasksBetween(ctx, from, to)
		views, err = newTaskViews(some), lerr
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": views})
}

type taskRequest struct {
	SubjectID           *string  `json:"subjectId"`
	Title               *string  `json:"title"`
	Date                *string  `json:"date"`
	Type                *string  `json:"type"`
	Duration            *float64 `json:"duration"`
	ClearDuration       bool     `json:"clearDuration"`
	Assignment          *string  `json:"assignment"`
	Pages               *string  `json:"pages"`
	Memo                *string  `json:"memo"`
	StartTime           *string  `json:"startTime"`
	NotificationEnabled *bool    `json:"notificationEnabled"`
}

// POST /api/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in := planner.TaskInput{
		SubjectID:  deref(req.SubjectID),
		Title:      deref(req.Title),
		Date:       deref(req.Date),
		Type:       deref(req.Type),
		Duration:   req.Duration,
		Assignment: req.Assignment,
		Pages:      req.Pages,
		Memo:       req.Memo,
		StartTime:  req.StartTime,
	}
	if req.NotificationEnabled != nil {
		in.NotificationEnabled = *req.NotificationEnabled
	}
	res, err := h.svc.CreateTask(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": newTaskView(res.Task), "outcome": newOutcomeView(res.Outcome)})
}

// GET /api/tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	t, err := h.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(*t))
}

// PUT /api/tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	res, err := h.svc.UpdateTask(c.Request.Context(), c.Param("id"), planner.TaskPatch{
		SubjectID:           req.SubjectID,
		Title:               req.Title,
		Date:                req.Date,
		Type:                req.Type,
		Duration:            req.Duration,
		ClearDuration:       req.ClearDuration,
		Assignment:          req.Assignment,
		Pages:               req.Pages,
		Memo:                req.Memo,
		StartTime:           req.StartTime,
		NotificationEnabled: req.NotificationEnabled,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": newTaskView(res.Task), "outcome": newOutcomeView(res.Outcome)})
}

// DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	res, err := h.svc.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskId": res.TaskID, "outcome": newOutcomeView(res.Outcome)})
}

// POST /api/tasks/:id/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	res, err := h.svc.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"taskId":    res.TaskID,
		"title":     res.Title,
		"completed": res.Completed,
		"xpDelta":   res.XPDelta,
		"outcome":   newOutcomeView(res.Outcome),
	})
}

type importRequest struct {
	SubjectID   string               `json:"subjectId"`
	Start       string               `json:"start"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// POST /api/suggestions/import
func (h *Handler) ImportSuggestions(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	start := req.Start
	if start == "" {
		start = h.svc.Today()
	}
	day, err := planner.ParseDate(start)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.svc.ImportSuggestions(c.Request.Context(), req.SubjectID, day, req.Suggestions)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tasks": newTaskViews(res.Tasks), "outcome": newOutcomeView(res.Outcome)})
}

// GET /api/today?date=
func (h *Handler) Today(c *gin.Context) {
	date := c.DefaultQuery("date", h.svc.Today())
	sum, err := h.svc.Day(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      sum.Date,
		"tasks":     newTaskViews(sum.Tasks),
		"completed": sum.Completed,
		"total":     len(sum.Tasks),
	})
}

// GET /api/deadlines?limit=
func (h *Handler) Deadlines(c *gin.Context) {
	limit := h.deadlineLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "invalid limit")
			return
		}
		limit = n
	}
	tasks, err := h.svc.UpcomingDeadlines(c.Request.Context(), h.svc.Today(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deadlines": newTaskViews(tasks)})
}
