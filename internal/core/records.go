package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Satellite record stores. These carry no behavior beyond validation and
// defaulting; the construction functions fill defaults and reject invalid
// shapes before anything reaches storage.

var (
	ErrRecordNotFound = errors.New("record not found")

	ErrEmptyText     = errors.New("empty text")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyRole     = errors.New("empty role")
	ErrEmptyType     = errors.New("empty type")
	ErrMissingPeriod = errors.New("missing period")
	ErrMissingDate   = errors.New("missing date")
)

var (
	TaskPeriods     = []string{"today", "week", "month"}
	TaskCategories  = []string{"work", "personal", "sport", "household"}
	HabitTypes      = []string{"bad", "good"}
	IdeaCategories  = []string{"business", "personal", "creative", "technical", "other"}
	IdeaPriorities  = []string{"low", "medium", "high"}
	IdeaStatuses    = []string{"new", "in-progress", "completed", "archived"}
	TeamDepartments = []string{"development", "design", "marketing", "sales", "management", "other"}
	TeamStatuses    = []string{"active", "inactive", "former"}
	ProjectStatuses = []string{"active", "completed", "paused"}
)

func validEnum(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid %s %q", field, value)
}

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Period    string    `json:"period"`
	Category  string    `json:"category,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewTask(text, period, category string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	if period == "" {
		return Task{}, ErrMissingPeriod
	}
	if err := validEnum("period", period, TaskPeriods); err != nil {
		return Task{}, err
	}
	if category != "" {
		if err := validEnum("category", category, TaskCategories); err != nil {
			return Task{}, err
		}
	}
	now := time.Now().UTC()
	return Task{
		ID:        uuid.NewString(),
		Text:      text,
		Period:    period,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if err := validEnum("period", t.Period, TaskPeriods); err != nil {
		return err
	}
	if t.Category != "" {
		return validEnum("category", t.Category, TaskCategories)
	}
	return nil
}

type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	QuitDate  time.Time `json:"quitDate"`
	QuitTime  string    `json:"quitTime"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewHabit(name string, quitDate time.Time, quitTime, habitType string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, ErrEmptyName
	}
	if quitDate.IsZero() {
		return Habit{}, ErrMissingDate
	}
	if err := validEnum("type", habitType, HabitTypes); err != nil {
		return Habit{}, err
	}
	if quitTime == "" {
		quitTime = "00:00"
	}
	now := time.Now().UTC()
	return Habit{
		ID:        uuid.NewString(),
		Name:      name,
		QuitDate:  quitDate,
		QuitTime:  quitTime,
		Type:      habitType,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	if h.QuitDate.IsZero() {
		return ErrMissingDate
	}
	return validEnum("type", h.Type, HabitTypes)
}

type Idea struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewIdea(title, description, category, priority string, tags []string) (Idea, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Idea{}, ErrEmptyTitle
	}
	if category == "" {
		category = "other"
	}
	if priority == "" {
		priority = "medium"
	}
	if err := validEnum("category", category, IdeaCategories); err != nil {
		return Idea{}, err
	}
	if err := validEnum("priority", priority, IdeaPriorities); err != nil {
		return Idea{}, err
	}
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	return Idea{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    category,
		Priority:    priority,
		Status:      "new",
		Tags:        trimTags(tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (i *Idea) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}
	if err := validEnum("category", i.Category, IdeaCategories); err != nil {
		return err
	}
	if err := validEnum("priority", i.Priority, IdeaPriorities); err != nil {
		return err
	}
	return validEnum("status", i.Status, IdeaStatuses)
}

type TeamMember struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	Skills     []string  `json:"skills"`
	Notes      string    `json:"notes,omitempty"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewTeamMember(name, role, email, phone, department string, skills []string, notes, image string) (TeamMember, error) {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	if name == "" {
		return TeamMember{}, ErrEmptyName
	}
	if role == "" {
		return TeamMember{}, ErrEmptyRole
	}
	if department == "" {
		department = "other"
	}
	if err := validEnum("department", department, TeamDepartments); err != nil {
		return TeamMember{}, err
	}
	now := time.Now().UTC()
	return TeamMember{
		ID:         uuid.NewString(),
		Name:       name,
		Role:       role,
		Email:      strings.TrimSpace(email),
		Phone:      strings.TrimSpace(phone),
		Department: department,
		Status:     "active",
		Skills:     trimTags(skills),
		Notes:      strings.TrimSpace(notes),
		Image:      strings.TrimSpace(image),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (m *TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(m.Role) == "" {
		return ErrEmptyRole
	}
	if err := validEnum("department", m.Department, TeamDepartments); err != nil {
		return err
	}
	return validEnum("status", m.Status, TeamStatuses)
}

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewProject(name, description, priority string, startDate time.Time, endDate *time.Time) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, ErrEmptyName
	}
	if priority == "" {
		priority = "medium"
	}
	if err := validEnum("priority", priority, IdeaPriorities); err != nil {
		return Project{}, err
	}
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	now := time.Now().UTC()
	return Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Status:      "active",
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", p.Progress)
	}
	if err := validEnum("priority", p.Priority, IdeaPriorities); err != nil {
		return err
	}
	return validEnum("status", p.Status, ProjectStatuses)
}

type SportSession struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Duration  float64   `json:"duration"`
	Calories  float64   `json:"calories"`
	Distance  float64   `json:"distance"`
	Notes     string    `json:"notes,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSportSession(sessionType string, duration, calories, distance float64, notes string, date time.Time) (SportSession, error) {
	sessionType = strings.TrimSpace(sessionType)
	if sessionType == "" {
		return SportSession{}, ErrEmptyType
	}
	if duration <= 0 {
		return SportSession{}, ErrInvalidAmount
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	now := time.Now().UTC()
	return SportSession{
		ID:        uuid.NewString(),
		Type:      sessionType,
		Duration:  duration,
		Calories:  calories,
		Distance:  distance,
		Notes:     strings.TrimSpace(notes),
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type WeightData struct {
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
}

type SportSettings struct {
	MonthlyGoal int        `json:"monthlyGoal"`
	WeightData  WeightData `json:"weightData"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func DefaultSportSettings() SportSettings {
	now := time.Now().UTC()
	return SportSettings{
		MonthlyGoal: 15,
		WeightData:  WeightData{CurrentWeight: 70, TargetWeight: 65},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *SportSettings) Validate() error {
	if s.MonthlyGoal < 1 || s.MonthlyGoal > 100 {
		return fmt.Errorf("monthly goal must be between 1 and 100, got %d", s.MonthlyGoal)
	}
	for _, w := range []float64{s.WeightData.CurrentWeight, s.WeightData.TargetWeight} {
		if w < 30 || w > 300 {
			return fmt.Errorf("weight must be between 30 and 300, got %g", w)
		}
	}
	return nil
}

// Progress is a per-user fixed-horizon daily tracker counting down to a
// target date.
type Progress struct {
	UserID        string    `json:"userId"`
	CompletedDays []string  `json:"completedDays"`
	TargetDate    time.Time `json:"targetDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DefaultProgressTarget mirrors the tracker's fixed horizon.
var DefaultProgressTarget = time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)

func NewProgress(userID string) *Progress {
	now := time.Now().UTC()
	return &Progress{
		UserID:        userID,
		CompletedDays: []string{},
		TargetDate:    DefaultProgressTarget,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkDay records a day once; marking an already-completed day is a no-op.
func (p *Progress) MarkDay(day string) {
	if slices.Contains(p.CompletedDays, day) {
		return
	}
	p.CompletedDays = append(p.CompletedDays, day)
	p.UpdatedAt = time.Now().UTC()
}

func (p *Progress) UnmarkDay(day string) {
	p.CompletedDays = slices.DeleteFunc(p.CompletedDays, func(d string) bool { return d == day })
	if p.CompletedDays == nil {
		p.CompletedDays = []string{}
	}
	p.UpdatedAt = time.Now().UTC()
}

func (p *Progress) Reset() {
	p.CompletedDays = []string{}
	p.UpdatedAt = time.Now().UTC()
}

type RoadmapStep struct {
	ID          string     `json:"id"`
	StepNumber  int        `json:"stepNumber"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Roadmap is a per-user ordered list of steps.
type Roadmap struct {
	UserID    string        `json:"userId"`
	Steps     []RoadmapStep `json:"steps"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewRoadmap(userID string) *Roadmap {
	now := time.Now().UTC()
	return &Roadmap{
		UserID:    userID,
		Steps:     []RoadmapStep{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReplaceSteps installs a new step list, renumbering sequentially and
// filling missing ids and titles.
func (r *Roadmap) ReplaceSteps(steps []RoadmapStep) {
	out := make([]RoadmapStep, 0, len(steps))
	for i, s := range steps {
		s.StepNumber = i + 1
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if strings.TrimSpace(s.Title) == "" {
			s.Title = "New step"
		}
		if !s.Completed {
			s.CompletedAt = nil
		}
		out = append(out, s)
	}
	r.Steps = out
	r.UpdatedAt = time.Now().UTC()
}

// ToggleStep flips completion of the step with the given id.
func (r *Roadmap) ToggleStep(stepID string) error {
	for i := range r.Steps {
		if r.Steps[i].ID != stepID {
			continue
		}
		r.Steps[i].Completed = !r.Steps[i].Completed
		if r.Steps[i].Completed {
			now := time.Now().UTC()
			r.Steps[i].CompletedAt = &now
		} else {
			r.Steps[i].CompletedAt = nil
		}
		r.UpdatedAt = time.Now().UTC()
		return nil
	}
	return ErrRecordNotFound
}

func (r *Roadmap) Reset() {
	r.Steps = []RoadmapStep{}
	r.UpdatedAt = time.Now().UTC()
}

func trimTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
