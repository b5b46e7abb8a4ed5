package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"ownerconsole/internal/model"
	"ownerconsole/internal/orders"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer executes the console's embedded page templates.
type Renderer struct {
	pages *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"price": FormatPrice,
		"phone": FormatPhone,
	}
	t, err := template.New("console").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{pages: t}, nil
}

func (r *Renderer) Render(w io.Writer, page string, data any) error {
	if err := r.pages.ExecuteTemplate(w, page, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}

// Base carries what every page needs.
type Base struct {
	Title     string
	Owner     model.Identity
	CSRFField template.HTML
	Notice    *orders.Notice
}

type OrdersPage struct {
	Base
	Active     bool
	Fetching   bool
	ReceivedAt string
	Remaining  string
	Urgent     bool
	Pending    int
	Cumulative CumulativeView
	Individual IndividualView
}

func NewOrdersPage(base Base, st orders.State) OrdersPage {
	base.Notice = st.Notice
	p := OrdersPage{
		Base:     base,
		Active:   st.Active,
		Fetching: st.Fetching,
		Pending:  st.Pending,
	}
	if st.Active {
		p.ReceivedAt = FormatTimestamp(st.Snapshot.FetchedAt)
		p.Remaining = st.Countdown.String()
		p.Urgent = st.Countdown.Urgent
		p.Cumulative = NewCumulativeView(st.Snapshot.Cumulative)
		p.Individual = NewIndividualView(st.Snapshot.Individual, st.InFlight)
	}
	return p
}

type LoginPage struct {
	Base
	Email string
	Admin bool
}

type HistoryPage struct {
	Base
	Orders []model.HistoryOrder
	Total  int
}

type EarningsPage struct {
	Base
	Summary      *model.EarningsSummary
	Transactions *model.TransactionPage
	Monthly      []model.MonthlyEarnings
}

type SignupPage struct {
	Base
	Form model.SignupRequest
}

type PendingPage struct {
	Base
}

type ProfilePage struct {
	Base
	Profile *model.OwnerProfile
}
