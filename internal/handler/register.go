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

func SignupPageHandler(pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, pages, http.StatusOK, "signup", view.SignupPage{Base: base(r, "Sign up")})
	}
}

// SignupHandler registers a new owner with the platform. The account
// starts pending, so success leads to the pending page rather than a login.
func SignupHandler(auth Authenticator, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := model.SignupRequest{
			FullName:          strings.TrimSpace(r.PostFormValue("full_name")),
			Email:             strings.TrimSpace(r.PostFormValue("email")),
			Phone:             strings.TrimSpace(r.PostFormValue("phone")),
			Password:          r.PostFormValue("password"),
			RestaurantName:    strings.TrimSpace(r.PostFormValue("restaurant_name")),
			RestaurantAddress: strings.TrimSpace(r.PostFormValue("restaurant_address")),
			RestaurantPhone:   strings.TrimSpace(r.PostFormValue("restaurant_phone")),
			BankDetails:       bankDetailsForm(r),
		}

		fail := func(status int, text string) {
			form := req
			form.Password = ""
			page := view.SignupPage{Base: base(r, "Sign up"), Form: form}
			page.Notice = &orders.Notice{Kind: orders.NoticeError, Text: text}
			render(w, pages, status, "signup", page)
		}

		if err := req.Validate(); err != nil {
			fail(http.StatusBadRequest, err.Error())
			return
		}
		if req.Password != r.PostFormValue("confirm_password") {
			fail(http.StatusBadRequest, "Passwords do not match")
			return
		}

		res, err := auth.Signup(r.Context(), req)
		if err != nil {
			slog.Warn("signup failed", "email", req.Email, "error", err)
			text := "Signup failed. Please try again."
			var apiErr *service.APIError
			if errors.As(err, &apiErr) && apiErr.Detail != "" {
				text = apiErr.Detail
			}
			fail(upstreamStatus(err), text)
			return
		}

		slog.Info("owner signed up", "user_id", res.UserID, "email", req.Email)
		http.Redirect(w, r, "/pending", http.StatusSeeOther)
	}
}

func PendingPageHandler(pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, pages, http.StatusOK, "pending", view.PendingPage{Base: base(r, "Pending Approval")})
	}
}

func bankDetailsForm(r *http.Request) model.BankDetails {
	return model.BankDetails{
		AccountNumber: strings.TrimSpace(r.PostFormValue("bank_account_number")),
		IFSCCode:      strings.ToUpper(strings.TrimSpace(r.PostFormValue("bank_ifsc_code"))),
		HolderName:    strings.TrimSpace(r.PostFormValue("bank_account_holder_name")),
		UPIID:         strings.TrimSpace(r.PostFormValue("upi_id")),
	}
}
