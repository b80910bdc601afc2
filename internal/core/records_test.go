package core

import (
	"errors"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	cases := []struct {
		text, period, category string
		wantErr                bool
	}{
		{"buy milk", "today", "", false},
		{"report", "week", "work", false},
		{"", "today", "", true},
		{"x", "", "", true},
		{"x", "quarter", "", true},
		{"x", "today", "gaming", true},
	}
	for i, tc := range cases {
		_, err := NewTask(tc.text, tc.period, tc.category)
		if tc.wantErr && err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("case %d unexpected error: %v", i, err)
		}
	}
}

func TestNewHabitDefaultsQuitTime(t *testing.T) {
	h, err := NewHabit("smoking", time.Now(), "", "bad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.QuitTime != "00:00" {
		t.Fatalf("got quit time %q, want 00:00", h.QuitTime)
	}
	if _, err := NewHabit("x", time.Time{}, "", "bad"); !errors.Is(err, ErrMissingDate) {
		t.Fatalf("got %v, want ErrMissingDate", err)
	}
}

func TestNewIdeaDefaults(t *testing.T) {
	i, err := NewIdea("app idea", "", "", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Category != "other" || i.Priority != "medium" || i.Status != "new" {
		t.Fatalf("defaults wrong: %+v", i)
	}
	if i.Tags == nil {
		t.Fatal("tags must be non-nil")
	}
}

func TestNewTeamMemberRequiresNameAndRole(t *testing.T) {
	if _, err := NewTeamMember("", "dev", "", "", "", nil, "", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("got %v, want ErrEmptyName", err)
	}
	if _, err := NewTeamMember("Ann", "", "", "", "", nil, "", ""); !errors.Is(err, ErrEmptyRole) {
		t.Fatalf("got %v, want ErrEmptyRole", err)
	}
	m, err := NewTeamMember("Ann", "dev", "", "", "", []string{" go ", ""}, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Department != "other" || m.Status != "active" {
		t.Fatalf("defaults wrong: %+v", m)
	}
	if len(m.Skills) != 1 || m.Skills[0] != "go" {
		t.Fatalf("skills not trimmed: %v", m.Skills)
	}
}

func TestSportSettingsValidate(t *testing.T) {
	s := DefaultSportSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	s.MonthlyGoal = 0
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for goal below range")
	}
	s = DefaultSportSettings()
	s.WeightData.TargetWeight = 10
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for weight below range")
	}
}

func TestNewSportSession(t *testing.T) {
	if _, err := NewSportSession("run", 0, 0, 0, "", time.Time{}); err == nil {
		t.Fatal("expected error for zero duration")
	}
	s, err := NewSportSession("run", 30, 200, 5, "", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Date.IsZero() {
		t.Fatal("date should default to now")
	}
}

func TestProgressDayOps(t *testing.T) {
	p := NewProgress("u1")
	p.MarkDay("Mon Dec 23 2024")
	p.MarkDay("Mon Dec 23 2024") // duplicate ignored
	p.MarkDay("Tue Dec 24 2024")
	if len(p.CompletedDays) != 2 {
		t.Fatalf("got %d days, want 2", len(p.CompletedDays))
	}
	p.UnmarkDay("Mon Dec 23 2024")
	if len(p.CompletedDays) != 1 || p.CompletedDays[0] != "Tue Dec 24 2024" {
		t.Fatalf("unmark failed: %v", p.CompletedDays)
	}
	p.Reset()
	if p.CompletedDays == nil || len(p.CompletedDays) != 0 {
		t.Fatalf("reset failed: %v", p.CompletedDays)
	}
}

func TestRoadmapSteps(t *testing.T) {
	r := NewRoadmap("u1")

	r.ReplaceSteps([]RoadmapStep{
		{Title: "plan"},
		{Title: ""},
		{ID: "fixed", Title: "ship", StepNumber: 99},
	})
	if len(r.Steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(r.Steps))
	}
	for i, s := range r.Steps {
		if s.StepNumber != i+1 {
			t.Fatalf("step %d numbered %d", i, s.StepNumber)
		}
		if s.ID == "" {
			t.Fatalf("step %d has no id", i)
		}
	}
	if r.Steps[1].Title != "New step" {
		t.Fatalf("got title %q, want default", r.Steps[1].Title)
	}
	if r.Steps[2].ID != "fixed" {
		t.Fatal("provided id must be kept")
	}

	if err := r.ToggleStep("fixed"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !r.Steps[2].Completed || r.Steps[2].CompletedAt == nil {
		t.Fatalf("toggle did not complete: %+v", r.Steps[2])
	}
	if err := r.ToggleStep("fixed"); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if r.Steps[2].Completed || r.Steps[2].CompletedAt != nil {
		t.Fatalf("toggle did not clear: %+v", r.Steps[2])
	}
	if err := r.ToggleStep("missing"); err != ErrRecordNotFound {
		t.Fatalf("got %v, want ErrRecordNotFound", err)
	}

	r.Reset()
	if len(r.Steps) != 0 {
		t.Fatalf("reset left steps: %v", r.Steps)
	}
}
