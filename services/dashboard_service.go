// services/dashboard_service.go
package services

import (
	"fmt"
	"time"

	"coachdesk-backend/models"
	"coachdesk-backend/utils"
)

// DashboardService aggregates the other services into the single overview
// the operator opens first thing in the morning. Everything is recomputed
// per request.
type DashboardService struct {
	clients  *ClientService
	sessions *SessionService
	payments *PaymentService
}

func NewDashboardService(clients *ClientService, sessions *SessionService, payments *PaymentService) *DashboardService {
	return &DashboardService{clients: clients, sessions: sessions, payments: payments}
}

// SessionView is a session enriched with the client fields the overview
// shows next to it.
type SessionView struct {
	*models.Session
	ClientName   string               `json:"clientName"`
	ClientStatus models.ClientStatus  `json:"clientStatus"`
	Format       models.SessionFormat `json:"format"`
	TimeRange    string               `json:"timeRange"`
}

// CalendarDay is one weekday column of the Mon-Fri week calendar.
type CalendarDay struct {
	Date     string        `json:"date"`
	Weekday  string        `json:"weekday"`
	Sessions []SessionView `json:"sessions"`
}

type Dashboard struct {
	GeneratedAt    time.Time                   `json:"generatedAt"`
	StatusSummary  map[models.ClientStatus]int `json:"statusSummary"`
	ActiveClients  int                         `json:"activeClients"`
	SessionsToday  []SessionView               `json:"sessionsToday"`
	WeekCalendar   []CalendarDay               `json:"weekCalendar"`
	UnpaidPayments []*models.Payment           `json:"unpaidPayments"`
	UnpaidTotal    models.Amount               `json:"unpaidTotal"`
	MonthSales     *MonthSales                 `json:"monthSales"`
	SalesSeries    []*MonthSales               `json:"salesSeries"`
	Tasks          []string                    `json:"tasks"`
}

// SalesSeriesMonths is the length of the trailing sales series.
const SalesSeriesMonths = 6

func (s *DashboardService) Overview() (*Dashboard, error) {
	now := time.Now()
	dash := &Dashboard{GeneratedAt: now}

	summary, err := s.clients.StatusSummary()
	if err != nil {
		return nil, err
	}
	dash.StatusSummary = summary
	for _, status := range models.ClientStatuses {
		if status.Active() {
			dash.ActiveClients += summary[status]
		}
	}

	clientsByID, err := s.clientIndex()
	if err != nil {
		return nil, err
	}

	today, err := s.sessions.Today()
	if err != nil {
		return nil, err
	}
	dash.SessionsToday = s.enrich(today, clientsByID)

	dash.WeekCalendar, err = s.weekCalendar(now, clientsByID)
	if err != nil {
		return nil, err
	}

	dash.UnpaidPayments, err = s.payments.FindAll("", models.PaymentUnpaid)
	if err != nil {
		return nil, err
	}
	for _, p := range dash.UnpaidPayments {
		dash.UnpaidTotal += p.Amount
	}

	dash.SalesSeries, err = s.salesSeries(now)
	if err != nil {
		return nil, err
	}
	dash.MonthSales = dash.SalesSeries[len(dash.SalesSeries)-1]

	dash.Tasks = s.tasks(dash)
	return dash, nil
}

func (s *DashboardService) clientIndex() (map[string]*models.Client, error) {
	clients, err := s.clients.FindAll(false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	return byID, nil
}

func (s *DashboardService) enrich(sessions []*models.Session, clients map[string]*models.Client) []SessionView {
	views := make([]SessionView, len(sessions))
	for i, session := range sessions {
		view := SessionView{Session: session}
		end := session.ScheduledAt.Add(s.sessions.duration())
		view.TimeRange = session.ScheduledAt.Format("15:04") + "-" + end.Format("15:04")
		if client, ok := clients[session.ClientID]; ok {
			view.ClientName = client.Name
			view.ClientStatus = client.Status
			view.Format = client.PreferredFormat
		}
		views[i] = view
	}
	return views
}

// weekCalendar lays out Monday through Friday of the current week.
func (s *DashboardService) weekCalendar(now time.Time, clients map[string]*models.Client) ([]CalendarDay, error) {
	monday := utils.StartOfWeek(now)
	days := make([]CalendarDay, 5)
	for i := range days {
		day := monday.AddDate(0, 0, i)
		sessions, err := s.sessions.OnDate(day)
		if err != nil {
			return nil, err
		}
		days[i] = CalendarDay{
			Date:     utils.FormatDate(day),
			Weekday:  day.Weekday().String(),
			Sessions: s.enrich(sessions, clients),
		}
	}
	return days, nil
}

// salesSeries returns the trailing months oldest first, current month last.
func (s *DashboardService) salesSeries(now time.Time) ([]*MonthSales, error) {
	series := make([]*MonthSales, 0, SalesSeriesMonths)
	for i := SalesSeriesMonths - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -i, 0)
		sales, err := s.payments.MonthlySales(m.Year(), m.Month())
		if err != nil {
			return nil, err
		}
		series = append(series, sales)
	}
	return series, nil
}

// tasks derives the short to-do list shown at the top of the overview.
func (s *DashboardService) tasks(dash *Dashboard) []string {
	var tasks []string
	if n := len(dash.UnpaidPayments); n > 0 {
		tasks = append(tasks, fmt.Sprintf("Follow up on %d unpaid payment(s)", n))
	}
	if n := len(dash.SessionsToday); n > 0 {
		tasks = append(tasks, fmt.Sprintf("Prepare for %d session(s) today", n))
	}
	if dash.StatusSummary[models.StatusInquiry] > 0 {
		tasks = append(tasks, fmt.Sprintf("Reply to %d new inquiry(ies)", dash.StatusSummary[models.StatusInquiry]))
	}
	if dash.StatusSummary[models.StatusTrialDone] > 0 {
		tasks = append(tasks, fmt.Sprintf("Send continuation offer to %d trial-done client(s)", dash.StatusSummary[models.StatusTrialDone]))
	}
	return tasks
}
