package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ownerconsole/internal/model"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/view"
)

func LoginPageHandler(pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := view.LoginPage{Base: base(r, "Login"), Admin: r.URL.Query().Get("admin") != ""}
		render(w, pages, http.StatusOK, "login", page)
	}
}

func LoginHandler(auth Authenticator, sessions SessionStore, ctrl *orders.Controller, pages *view.Renderer, role string) http.HandlerFunc {
	login := auth.Login
	if role == model.RoleAdmin {
		login = auth.AdminLogin
	}

	return func(w http.ResponseWriter, r *http.Request) {
		creds := model.Credentials{
			Email:    strings.TrimSpace(r.PostFormValue("email")),
			Password: r.PostFormValue("password"),
		}
		page := view.LoginPage{Base: base(r, "Login"), Email: creds.Email, Admin: role == model.RoleAdmin}

		if creds.Email == "" || creds.Password == "" {
			page.Notice = &orders.Notice{Kind: orders.NoticeError, Text: "Email and password are required."}
			render(w, pages, http.StatusBadRequest, "login", page)
			return
		}

		res, err := login(r.Context(), creds)
		if err != nil {
			status := http.StatusBadGateway
			text := service.Detail(err, "Login failed")
			var apiErr *service.APIError
			if errors.Is(err, service.ErrUnauthorized) || errors.As(err, &apiErr) && apiErr.Status < 500 {
				status = http.StatusUnauthorized
				if errors.Is(err, service.ErrUnauthorized) {
					text = "Invalid email or password."
				}
			}
			slog.Warn("login failed", "role", role, "email", creds.Email, "error", err)
			page.Notice = &orders.Notice{Kind: orders.NoticeError, Text: text}
			render(w, pages, status, "login", page)
			return
		}

		if text, ok := loginRefusal(res.Status); ok && role == model.RoleOwner {
			slog.Info("login refused", "email", creds.Email, "status", res.Status)
			page.Notice = &orders.Notice{Kind: orders.NoticeAdvisory, Text: text}
			render(w, pages, http.StatusForbidden, "login", page)
			return
		}

		if err := sessions.Save(r.Context(), role, res); err != nil {
			slog.Error("failed to save session", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		// a new principal never sees the previous one's batch
		ctrl.Reset()
		slog.Info("signed in", "role", role, "user_id", res.UserData.ID)

		target := "/orders"
		if role == model.RoleAdmin {
			target = "/admin"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func LogoutHandler(sessions SessionStore, ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Clear(r.Context()); err != nil {
			slog.Error("failed to clear session", "error", err)
		}
		ctrl.Reset()
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// loginRefusal explains why an owner whose credentials are valid still
// cannot use the console.
func loginRefusal(status string) (string, bool) {
	switch status {
	case model.ApprovalPending:
		return "Your account is under review. Please wait for admin approval.", true
	case model.ApprovalRejected:
		return "Your account was rejected. Contact support.", true
	case model.ApprovalNoUID:
		return "Admin has approved your account but hasn't assigned a restaurant UID yet. Please wait.", true
	}
	return "", false
}
