// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes daybook tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/tracker"
)

const journalFormatURI = "daybook://journal-format"

// Server wraps the MCP server with daybook tools. Every call acts as owner.
type Server struct {
	mcp   *server.MCPServer
	svc   *tracker.Service
	owner identity.Principal
}

// New creates a new MCP server with all daybook tools registered.
func New(svc *tracker.Service, owner identity.Principal, version string) *Server {
	s := &Server{svc: svc, owner: owner}

	s.mcp = server.NewMCPServer(
		"Daybook",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_day",
		mcp.WithDescription("Everything recorded on one day: activities, finances, habits, journal, reminders, "+
			"plus the timeline and overview charts."),
		mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD; defaults to today")),
	), s.getDay)

	s.mcp.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Finance, habit and time-spent trends over the last 7 or 30 days."),
		mcp.WithNumber("days", mcp.Description("7 or 30"), mcp.DefaultNumber(7)),
	), s.getDashboard)

	s.mcp.AddTool(mcp.NewTool("get_calendar",
		mcp.WithDescription("Month grid (Sunday first) with days that have reminders marked."),
		mcp.WithNumber("year", mcp.Required()),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("1-12")),
		mcp.WithString("selected", mcp.Description("Optional selected day, YYYY-MM-DD")),
	), s.getCalendar)

	s.mcp.AddTool(mcp.NewTool("log_activity",
		mcp.WithDescription("Record an activity. Give start and end times (HH:MM) to place it on the timeline, "+
			"or just a duration in minutes."),
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("date", mcp.Description("YYYY-MM-DD; defaults to today")),
		mcp.WithString("start_time", mcp.Description("HH:MM")),
		mcp.WithString("end_time", mcp.Description("HH:MM, after start_time")),
		mcp.WithNumber("duration_minutes"),
		mcp.WithString("description"),
		mcp.WithString("goal", mcp.Description("daily, weekly, monthly, yearly, habit, project, or any custom label"),
			mcp.DefaultString(string(models.GoalDaily))),
	), s.logActivity)

	s.mcp.AddTool(mcp.NewTool("log_finance",
		mcp.WithDescription("Record income, an expense, or an investment."),
		mcp.WithString("title", mcp.Required()),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Decimal amount with at most two places, e.g. 12.50")),
		mcp.WithString("type", mcp.Required(), mcp.Enum(
			string(models.FinanceIncome), string(models.FinanceExpense), string(models.FinanceInvestment))),
		mcp.WithString("date", mcp.Description("YYYY-MM-DD; defaults to today")),
		mcp.WithString("purpose"),
		mcp.WithString("description"),
	), s.logFinance)

	s.mcp.AddTool(mcp.NewTool("set_habit",
		mcp.WithDescription("Mark a habit done or not done for a day, creating it if needed."),
		mcp.WithString("name", mcp.Required()),
		mcp.WithBoolean("completed", mcp.DefaultBool(true)),
		mcp.WithString("date", mcp.Description("YYYY-MM-DD; defaults to today")),
	), s.setHabit)

	s.mcp.AddTool(mcp.NewTool("add_reminder",
		mcp.WithDescription("Add a reminder for a day. It shows up on the calendar."),
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("target_date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
		mcp.WithString("description"),
	), s.addReminder)

	s.mcp.AddTool(mcp.NewTool("search_journal",
		mcp.WithDescription("Full-text search over journal titles and content. Every word must match."),
		mcp.WithString("query", mcp.Required()),
		mcp.WithNumber("limit", mcp.DefaultNumber(20)),
	), s.searchJournal)

	s.mcp.AddTool(mcp.NewTool("get_journal_contract",
		mcp.WithDescription("Returns the Markdown format journal vault files must follow."),
	), s.getJournalContract)

	s.mcp.AddResource(
		mcp.NewResource(journalFormatURI, "Journal Format",
			mcp.WithResourceDescription("Markdown format of journal vault files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readJournalFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) ctx(ctx context.Context) context.Context {
	return identity.WithPrincipal(ctx, s.owner)
}

func (s *Server) date(req mcp.CallToolRequest, key string) string {
	if d := strings.TrimSpace(req.GetString(key, "")); d != "" {
		return d
	}
	return s.svc.Calendar().Today()
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(apperr.Message(err))
}

func (s *Server) getDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := s.svc.Day(s.ctx(ctx), s.date(req, "date"))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(v)
}

func (s *Server) getDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := s.svc.Dashboard(s.ctx(ctx), req.GetInt("days", 7))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(v)
}

func (s *Server) getCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	month, err := req.RequireInt("month")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := s.svc.Month(s.ctx(ctx), year, time.Month(month), req.GetString("selected", ""))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(v)
}

// goalType maps a goal label onto the closed set, keeping anything else as
// a custom goal.
func goalType(label string) models.GoalType {
	label = strings.TrimSpace(label)
	if label == "" {
		return models.GoalType{Kind: models.GoalDaily}
	}
	g := models.GoalType{Kind: models.GoalKind(strings.ToLower(label))}
	if g.Kind == models.GoalCustom || g.Validate() != nil {
		return models.GoalType{Kind: models.GoalCustom, Custom: label}
	}
	return g
}

func (s *Server) logActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a := models.Activity{
		Date:        s.date(req, "date"),
		Name:        name,
		Description: req.GetString("description", ""),
		StartTime:   req.GetString("start_time", ""),
		EndTime:     req.GetString("end_time", ""),
		GoalType:    goalType(req.GetString("goal", string(models.GoalDaily))),
	}
	if d := req.GetInt("duration_minutes", 0); d > 0 {
		a.Duration = &d
	}
	id, err := s.svc.CreateActivity(s.ctx(ctx), a)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("logged activity %d on %s", id, a.Date)), nil
}

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// cents converts a decimal amount string to minor units.
func cents(raw string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", apperr.ErrInvalid, raw)
	}
	scaled := d.Shift(2)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: amount %q has more than two decimal places", apperr.ErrInvalid, raw)
	}
	if scaled.LessThan(minCents) || scaled.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: amount %q is out of range", apperr.ErrInvalid, raw)
	}
	return scaled.IntPart(), nil
}

func (s *Server) logFinance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawAmount, err := req.RequireString("amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := cents(rawAmount)
	if err != nil {
		return errorResult(err), nil
	}
	f := models.Finance{
		Date:        s.date(req, "date"),
		Title:       title,
		Description: req.GetString("description", ""),
		Purpose:     req.GetString("purpose", ""),
		Amount:      amount,
		FinanceType: models.FinanceType(strings.ToLower(kind)),
	}
	id, err := s.svc.CreateFinance(s.ctx(ctx), f)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("logged %s %d of %s on %s",
		f.FinanceType, id, decimal.New(amount, -2).StringFixed(2), f.Date)), nil
}

func (s *Server) setHabit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctx = s.ctx(ctx)
	date := s.date(req, "date")
	done := req.GetBool("completed", true)

	habits, err := s.svc.Habits(ctx, date)
	if err != nil {
		return errorResult(err), nil
	}
	for _, h := range habits {
		if !strings.EqualFold(h.Name, name) {
			continue
		}
		h.IsCompleted = done
		if err := s.svc.UpdateHabit(ctx, h.ID, h); err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("habit %q on %s set to %t", h.Name, date, done)), nil
	}

	if _, err := s.svc.CreateHabit(ctx, models.Habit{Date: date, Name: name, IsCompleted: done}); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("habit %q added on %s set to %t", name, date, done)), nil
}

func (s *Server) addReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := models.Reminder{Name: name, TargetDate: target, Description: req.GetString("description", "")}
	id, err := s.svc.CreateReminder(s.ctx(ctx), r)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("reminder %d set for %s", id, target)), nil
}

func (s *Server) searchJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.svc.SearchJournals(s.ctx(ctx), query, req.GetInt("limit", 20))
	if err != nil {
		return errorResult(err), nil
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText("no matching entries"), nil
	}
	return jsonResult(hits)
}

func (s *Server) getJournalContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(JournalFormatContract), nil
}

func (s *Server) readJournalFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      journalFormatURI,
			MIMEType: "text/markdown",
			Text:     JournalFormatContract,
		},
	}, nil
}
