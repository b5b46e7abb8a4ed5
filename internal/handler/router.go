package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"

	"ownerconsole/internal/live"
	"ownerconsole/internal/model"
	"ownerconsole/internal/mw"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/view"
)

type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
	AdminLogin(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
	Signup(ctx context.Context, req model.SignupRequest) (*model.SignupResult, error)
}

type SessionStore interface {
	mw.Sessions
	Save(ctx context.Context, role string, auth *model.AuthResponse) error
	Clear(ctx context.Context) error
}

type OwnerAPI interface {
	OrderHistory(ctx context.Context) (*model.OrderHistory, error)
	EarningsSummary(ctx context.Context) (*model.EarningsSummary, error)
	EarningsTransactions(ctx context.Context, f model.TransactionFilter) (*model.TransactionPage, error)
	MonthlyEarnings(ctx context.Context) ([]model.MonthlyEarnings, error)
	Profile(ctx context.Context) (*model.OwnerProfile, error)
	UpdateBankDetails(ctx context.Context, d model.BankDetails) (*model.ActionResult, error)
}

type AdminAPI interface {
	AllOwners(ctx context.Context) ([]model.Owner, error)
	AllRestaurants(ctx context.Context) ([]model.Restaurant, error)
	ApproveOwner(ctx context.Context, ownerID, restaurantUID string) (*model.ActionResult, error)
	RejectOwner(ctx context.Context, ownerID string) (*model.ActionResult, error)
}

type Deps struct {
	Auth     Authenticator
	Sessions SessionStore
	Orders   *orders.Controller
	Owner    OwnerAPI
	Admin    AdminAPI
	Pages    *view.Renderer
	Hub      *live.Hub

	PasscodeHash   string
	CSRFKey        []byte // nil disables CSRF checks
	SecureCookies  bool
	AllowedOrigins []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.Passcode(d.PasscodeHash))

	// Pages and forms
	r.Group(func(r chi.Router) {
		if d.CSRFKey != nil {
			r.Use(csrf.Protect(d.CSRFKey, csrf.Secure(d.SecureCookies), csrf.Path("/")))
		}

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/orders", http.StatusSeeOther)
		})
		r.Get("/login", LoginPageHandler(d.Pages))
		r.Post("/login", LoginHandler(d.Auth, d.Sessions, d.Orders, d.Pages, model.RoleOwner))
		r.Post("/admin/login", LoginHandler(d.Auth, d.Sessions, d.Orders, d.Pages, model.RoleAdmin))
		r.Post("/logout", LogoutHandler(d.Sessions, d.Orders))
		r.Get("/signup", SignupPageHandler(d.Pages))
		r.Post("/signup", SignupHandler(d.Auth, d.Pages))
		r.Get("/pending", PendingPageHandler(d.Pages))

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireOwner(d.Sessions))

			r.Get("/orders", OrdersPageHandler(d.Orders, d.Pages))
			r.Post("/orders/fetch", FetchOrdersHandler(d.Orders))
			r.Post("/orders/{id}/respond", RespondHandler(d.Orders))
			r.Post("/orders/notice/dismiss", DismissNoticeHandler(d.Orders))
			r.Get("/orders/history", HistoryPageHandler(d.Owner, d.Pages))
			r.Get("/earnings", EarningsPageHandler(d.Owner, d.Pages))
			r.Get("/profile", ProfilePageHandler(d.Owner, d.Pages))
			r.Post("/profile/bank-details", UpdateBankDetailsHandler(d.Owner, d.Pages))
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin(d.Sessions))

			r.Get("/admin", AdminPageHandler(d.Admin, d.Pages))
			r.Post("/admin/owners/{id}/approve", ApproveOwnerHandler(d.Admin, d.Pages))
			r.Post("/admin/owners/{id}/reject", RejectOwnerHandler(d.Admin, d.Pages))
		})
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(mw.RequireOwner(d.Sessions))

		r.Get("/orders", OrdersStateHandler(d.Orders))
		r.Post("/orders/fetch", FetchOrdersAPIHandler(d.Orders))
		r.Post("/orders/{id}/respond", RespondAPIHandler(d.Orders))
		r.Get("/countdown", CountdownHandler(d.Orders))
		r.Get("/countdown/ws", CountdownStreamHandler(d.Orders, d.Hub))
	})

	return r
}

func base(r *http.Request, title string) view.Base {
	return view.Base{
		Title:     title,
		Owner:     mw.Identity(r.Context()),
		CSRFField: csrf.TemplateField(r),
	}
}

func render(w http.ResponseWriter, pages *view.Renderer, status int, page string, data any) {
	var buf bytes.Buffer
	if err := pages.Render(&buf, page, data); err != nil {
		slog.Error("render failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// upstreamStatus maps a failed platform call onto the console's answer:
// the platform's 4xx are the caller's fault, anything else is a bad gateway.
func upstreamStatus(err error) int {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
