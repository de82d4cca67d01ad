package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/daybook/internal/aggregate"
	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/localdate"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/querycache"
	"github.com/starford/daybook/internal/store"
	"github.com/starford/daybook/internal/testutil"
	"github.com/starford/daybook/internal/tracker"
)

func testServer(t *testing.T, owner identity.Principal) (*Server, *tracker.Service) {
	t.Helper()
	db := testutil.TestDB(t)
	cal := localdate.New(time.UTC, func() time.Time { return testutil.Now })
	svc := tracker.New(querycache.New(time.Minute),
		tracker.WithBackend(db),
		tracker.WithCalendar(cal),
	)
	return New(svc, owner, "test"), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no in-process call helper, so dispatch to the handlers.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "get_day":
		result, err = srv.getDay(ctx, req)
	case "get_dashboard":
		result, err = srv.getDashboard(ctx, req)
	case "get_calendar":
		result, err = srv.getCalendar(ctx, req)
	case "log_activity":
		result, err = srv.logActivity(ctx, req)
	case "log_finance":
		result, err = srv.logFinance(ctx, req)
	case "set_habit":
		result, err = srv.setHabit(ctx, req)
	case "add_reminder":
		result, err = srv.addReminder(ctx, req)
	case "search_journal":
		result, err = srv.searchJournal(ctx, req)
	case "get_journal_contract":
		result, err = srv.getJournalContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decodeResult[T any](t *testing.T, r *mcp.CallToolResult) T {
	t.Helper()
	if r.IsError {
		t.Fatalf("tool failed: %s", resultText(r))
	}
	var v T
	if err := json.Unmarshal([]byte(resultText(r)), &v); err != nil {
		t.Fatalf("decode %q: %v", resultText(r), err)
	}
	return v
}

func TestLogActivityShowsOnDay(t *testing.T) {
	srv, _ := testServer(t, identity.PrincipalFor("me"))

	r := callTool(t, srv, "log_activity", map[string]any{
		"name":       "Run",
		"start_time": "06:00",
		"end_time":   "07:30",
		"goal":       "Marathon",
	})
	if r.IsError {
		t.Fatalf("log_activity: %s", resultText(r))
	}
	if !strings.HasSuffix(resultText(r), "on 2024-03-05") {
		t.Errorf("result = %q, want today's date", resultText(r))
	}

	day := decodeResult[tracker.DayView](t, callTool(t, srv, "get_day", map[string]any{}))
	if len(day.Activities) != 1 {
		t.Fatalf("activities = %d, want 1", len(day.Activities))
	}
	got := day.Activities[0]
	if got.Name != "Run" || got.GoalType != (models.GoalType{Kind: models.GoalCustom, Custom: "Marathon"}) {
		t.Errorf("activity = %+v", got)
	}
	if len(day.Timeline) != 1 || day.Timeline[0].StartPercent != 25 || day.Timeline[0].WidthPercent != 6.25 {
		t.Errorf("timeline = %+v", day.Timeline)
	}
}

func TestLogActivityRejectsBadTimes(t *testing.T) {
	srv, _ := testServer(t, identity.PrincipalFor("me"))
	r := callTool(t, srv, "log_activity", map[string]any{
		"name":       "Nap",
		"date":       "2024-03-05",
		"start_time": "14:00",
		"end_time":   "13:00",
	})
	if !r.IsError {
		t.Fatal("expected end before start to fail")
	}
}

func TestLogFinanceParsesDecimal(t *testing.T) {
	srv, svc := testServer(t, identity.PrincipalFor("me"))

	r := callTool(t, srv, "log_finance", map[string]any{
		"title":  "Lunch",
		"amount": "12.5",
		"type":   "Expense",
		"date":   "2024-03-04",
	})
	if r.IsError {
		t.Fatalf("log_finance: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "12.50") {
		t.Errorf("result = %q", resultText(r))
	}

	got, err := svc.Finances(testutil.As("me"), "2024-03-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Amount != 1250 || got[0].FinanceType != models.FinanceExpense {
		t.Errorf("finances = %+v", got)
	}

	r = callTool(t, srv, "log_finance", map[string]any{"title": "x", "amount": "1.005", "type": "income"})
	if !r.IsError || !strings.Contains(resultText(r), "more than two decimal places") {
		t.Errorf("sub-cent amount: %q", resultText(r))
	}
}

func TestCents(t *testing.T) {
	for in, want := range map[string]int64{"12.5": 1250, "-3": -300, "0.01": 1, " 7.00 ": 700} {
		got, err := cents(in)
		if err != nil || got != want {
			t.Errorf("cents(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"abc", "92233720368547758.08", "-92233720368547758.09", "100000000000000000000"} {
		if got, err := cents(in); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("cents(%q) = %d, %v; want invalid", in, got, err)
		}
	}
	if got, err := cents("92233720368547758.07"); err != nil || got != math.MaxInt64 {
		t.Errorf("cents(max) = %d, %v", got, err)
	}
}

func TestGoalType(t *testing.T) {
	tests := map[string]models.GoalType{
		"":        {Kind: models.GoalDaily},
		"Weekly":  {Kind: models.GoalWeekly},
		"project": {Kind: models.GoalProject},
		"Reading": {Kind: models.GoalCustom, Custom: "Reading"},
	}
	for in, want := range tests {
		if diff := cmp.Diff(want, goalType(in)); diff != "" {
			t.Errorf("goalType(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestSetHabitTogglesExisting(t *testing.T) {
	srv, svc := testServer(t, identity.PrincipalFor("me"))

	for _, done := range []bool{true, false} {
		r := callTool(t, srv, "set_habit", map[string]any{"name": "Stretch", "completed": done})
		if r.IsError {
			t.Fatalf("set_habit: %s", resultText(r))
		}
	}

	habits, err := svc.Habits(testutil.As("me"), "2024-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 1 || habits[0].IsCompleted {
		t.Errorf("habits = %+v, want one incomplete Stretch", habits)
	}
}

func TestAddReminderMarksCalendar(t *testing.T) {
	srv, _ := testServer(t, identity.PrincipalFor("me"))

	r := callTool(t, srv, "add_reminder", map[string]any{"name": "Dentist", "target_date": "2024-03-09"})
	if r.IsError {
		t.Fatalf("add_reminder: %s", resultText(r))
	}

	month := decodeResult[aggregate.CalendarMonth](t, callTool(t, srv, "get_calendar", map[string]any{
		"year":  2024,
		"month": 3,
	}))
	if month.Title != "March 2024" {
		t.Errorf("title = %q", month.Title)
	}
	var marked []string
	for _, c := range month.Cells {
		if c.HasReminder {
			marked = append(marked, c.Date)
		}
	}
	if diff := cmp.Diff([]string{"2024-03-09"}, marked); diff != "" {
		t.Errorf("marked days mismatch (-want +got):\n%s", diff)
	}

	r = callTool(t, srv, "get_calendar", map[string]any{"year": 2024, "month": 13})
	if !r.IsError {
		t.Error("month 13 should fail")
	}
}

func TestDashboardWindow(t *testing.T) {
	srv, _ := testServer(t, identity.PrincipalFor("me"))

	view := decodeResult[tracker.DashboardView](t, callTool(t, srv, "get_dashboard", map[string]any{}))
	if len(view.Dates) != 7 || view.Dates[6] != "2024-03-05" {
		t.Errorf("dates = %v", view.Dates)
	}

	r := callTool(t, srv, "get_dashboard", map[string]any{"days": 14})
	if !r.IsError {
		t.Error("14 days should fail")
	}
}

func TestAnonymousOwnerCannotWrite(t *testing.T) {
	srv, _ := testServer(t, identity.Anonymous)
	r := callTool(t, srv, "log_activity", map[string]any{"name": "Run"})
	if !r.IsError {
		t.Fatal("expected refusal")
	}
	if got := resultText(r); got != "Please log in to create activities." {
		t.Errorf("message = %q", got)
	}
}

func TestJournalContract(t *testing.T) {
	srv, _ := testServer(t, identity.PrincipalFor("me"))

	r := callTool(t, srv, "get_journal_contract", nil)
	if resultText(r) != JournalFormatContract {
		t.Error("tool should return the contract")
	}

	contents, err := srv.readJournalFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != journalFormatURI || tc.Text != JournalFormatContract {
		t.Errorf("resource = %+v", contents[0])
	}
}

func TestSearchJournal(t *testing.T) {
	srv, svc := testServer(t, identity.PrincipalFor("me"))
	entry := models.Journal{Date: "2024-03-01", Title: "Friday", Content: "Finished the puzzle", AccessType: models.AccessPrivate}
	if _, err := svc.CreateJournal(testutil.As("me"), entry); err != nil {
		t.Fatal(err)
	}

	hits := decodeResult[[]store.JournalHit](t, callTool(t, srv, "search_journal", map[string]any{"query": "puzzle"}))
	if len(hits) != 1 || hits[0].Date != "2024-03-01" {
		t.Errorf("hits = %+v", hits)
	}

	r := callTool(t, srv, "search_journal", map[string]any{"query": "nothing"})
	if r.IsError || resultText(r) != "no matching entries" {
		t.Errorf("no hits = %q", resultText(r))
	}
}
