package http

import (
	"net/http"
	"testing"

	"lifetrack/internal/core"
)

func TestGetFinanceCreatesDefault(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/finance", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var l core.Ledger
	decodeBody(t, rec, &l)
	if l.MonthlyGoal != core.DefaultMonthlyGoal {
		t.Fatalf("got goal %g, want %g", l.MonthlyGoal, float64(core.DefaultMonthlyGoal))
	}
	if l.MonthlyIncome == nil || l.MonthlyExpenses == nil {
		t.Fatal("entry lists must serialize as arrays")
	}
}

func TestAddIncomeLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/finance/income", `{"amount":100,"description":"salary"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var l core.Ledger
	decodeBody(t, rec, &l)
	if l.TotalCapital != 100 || l.MonthlyEarned != 100 || len(l.MonthlyIncome) != 1 {
		t.Fatalf("unexpected ledger after add: %+v", l)
	}

	id := l.MonthlyIncome[0].ID
	rec = doJSON(t, s, http.MethodDelete, "/api/finance/income/"+id, "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: got %d, want 200", rec.Code)
	}
	decodeBody(t, rec, &l)
	if l.TotalCapital != 0 || l.MonthlyEarned != 0 || len(l.MonthlyIncome) != 0 {
		t.Fatalf("remove did not undo add: %+v", l)
	}
}

func TestAddEntryValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []string{
		`{"amount":0,"description":"x"}`,
		`{"amount":100,"description":"   "}`,
	}
	for i, body := range cases {
		rec := doJSON(t, s, http.MethodPost, "/api/finance/expense", body, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: got %d, want 400", i, rec.Code)
		}
	}
}

func TestRemoveOnFreshStoreIs404(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodDelete, "/api/finance/income", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("clear: got %d, want 404", rec.Code)
	}
	rec = doJSON(t, s, http.MethodDelete, "/api/finance/expense/some-id", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("remove: got %d, want 404", rec.Code)
	}
}

func TestRemoveUnknownEntryIs404(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/finance/expense", `{"amount":30,"description":"coffee"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodDelete, "/api/finance/expense/unknown", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rec.Code)
	}
}

func TestFinanceStatsOnEmptyStore(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/finance/stats", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var stats core.Stats
	decodeBody(t, rec, &stats)
	if stats.TotalIncome != 0 || stats.TotalExpenses != 0 || stats.GoalProgress != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if stats.TopIncomeCategories == nil || stats.TopExpenseCategories == nil {
		t.Fatal("category lists must serialize as arrays")
	}

	// The stats read must not have created a ledger.
	rec = doJSON(t, s, http.MethodDelete, "/api/finance/income", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404 after pure read", rec.Code)
	}
}

func TestSetCapitalAndGoal(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/finance/income", `{"amount":100,"description":"salary"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed income: got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPatch, "/api/finance/capital", `{"totalCapital":500}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("capital: got %d: %s", rec.Code, rec.Body.String())
	}
	var l core.Ledger
	decodeBody(t, rec, &l)
	if l.TotalCapital != 500 {
		t.Fatalf("got capital %g, want 500", l.TotalCapital)
	}
	if l.MonthlyEarned != 100 || len(l.MonthlyIncome) != 1 {
		t.Fatalf("capital override touched entries: %+v", l)
	}

	rec = doJSON(t, s, http.MethodPatch, "/api/finance/goal", `{"monthlyGoal":8000}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("goal: got %d", rec.Code)
	}
	decodeBody(t, rec, &l)
	if l.MonthlyGoal != 8000 {
		t.Fatalf("got goal %g", l.MonthlyGoal)
	}
	if l.TotalCapital != 500 {
		t.Fatalf("goal change touched capital: %g", l.TotalCapital)
	}
}

func TestSetCapitalAndGoalRejectNonNumeric(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPatch, "/api/finance/capital", `{"totalCapital":250}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed capital: got %d", rec.Code)
	}

	cases := []struct {
		path string
		body string
	}{
		{"/api/finance/capital", `{}`},
		{"/api/finance/capital", `{"totalCapital":"abc"}`},
		{"/api/finance/goal", `{}`},
		{"/api/finance/goal", `{"monthlyGoal":null}`},
	}
	for i, tc := range cases {
		rec := doJSON(t, s, http.MethodPatch, tc.path, tc.body, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: got %d, want 400", i, rec.Code)
		}
	}

	rec = doJSON(t, s, http.MethodGet, "/api/finance", "", true)
	var l core.Ledger
	decodeBody(t, rec, &l)
	if l.TotalCapital != 250 {
		t.Fatalf("rejected patch changed capital: %g", l.TotalCapital)
	}
}
