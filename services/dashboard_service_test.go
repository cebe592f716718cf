package services

import (
	"context"
	"testing"
	"time"

	"coachdesk-backend/models"
)

func TestDashboardService_Overview(t *testing.T) {
	env := newTestEnv(t)
	a := env.addClient(t, "a", models.StatusContracted, models.FormatOnline)
	b := env.addClient(t, "b", models.StatusInquiry, models.FormatOnline)
	env.addClient(t, "c", models.StatusCompleted, models.FormatOnline)

	// One session today, one inside the week, one beyond it.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 0, 0, 0, time.Local)
	env.sessions.Schedule(context.Background(), ScheduleInput{
		ClientID: a.ID, Kind: models.KindContinuation2,
		ScheduledAt: today.Format("2006-01-02 15:04"),
	})
	env.sessions.Schedule(context.Background(), ScheduleInput{ClientID: a.ID, Kind: models.KindContinuation3, ScheduledAt: futureSlot(3)})
	env.sessions.Schedule(context.Background(), ScheduleInput{ClientID: a.ID, Kind: models.KindContinuation4, ScheduledAt: futureSlot(30)})

	env.payments.Register(PaymentInput{ClientID: b.ID, LineItem: models.LineItemTrialFee})
	paid, _ := env.payments.Register(PaymentInput{ClientID: a.ID, LineItem: models.LineItemContinuationFee})
	env.payments.MarkPaid(paid.ID, time.Time{})

	dash, err := env.dashboard.Overview()
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if dash.StatusSummary[models.StatusContracted] != 1 || dash.StatusSummary[models.StatusInquiry] != 1 {
		t.Fatalf("status summary wrong: %v", dash.StatusSummary)
	}
	if dash.ActiveClients != 2 {
		t.Fatalf("expected 2 active clients, got %d", dash.ActiveClients)
	}
	if len(dash.SessionsToday) != 1 {
		t.Fatalf("expected 1 session today, got %d", len(dash.SessionsToday))
	}
	view := dash.SessionsToday[0]
	if view.ClientName != "a" || view.ClientStatus != models.StatusContracted || view.Format != models.FormatOnline {
		t.Fatalf("session view not enriched: %+v", view)
	}
	if view.TimeRange != "23:00-23:30" {
		t.Fatalf("expected time range 23:00-23:30, got %q", view.TimeRange)
	}
	if len(dash.WeekCalendar) != 5 {
		t.Fatalf("expected 5 calendar days, got %d", len(dash.WeekCalendar))
	}
	if dash.WeekCalendar[0].Weekday != "Monday" || dash.WeekCalendar[4].Weekday != "Friday" {
		t.Fatalf("calendar does not span Mon-Fri: %s..%s", dash.WeekCalendar[0].Weekday, dash.WeekCalendar[4].Weekday)
	}
	if len(dash.UnpaidPayments) != 1 {
		t.Fatalf("expected 1 unpaid payment, got %d", len(dash.UnpaidPayments))
	}
	if dash.UnpaidTotal != 6000 {
		t.Fatalf("expected unpaid total 6000, got %d", dash.UnpaidTotal)
	}
	if dash.MonthSales.Total != 214000 {
		t.Fatalf("expected month sales 214000, got %d", dash.MonthSales.Total)
	}
	if len(dash.SalesSeries) != SalesSeriesMonths {
		t.Fatalf("expected %d months of sales, got %d", SalesSeriesMonths, len(dash.SalesSeries))
	}
	if last := dash.SalesSeries[len(dash.SalesSeries)-1]; last.Total != dash.MonthSales.Total {
		t.Fatalf("series should end on the current month: %+v", last)
	}
	if len(dash.Tasks) < 2 {
		t.Fatalf("expected tasks for unpaid payments and today's sessions, got %v", dash.Tasks)
	}
}
