package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"ownerconsole/internal/mw"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/view"
)

func ProfilePageHandler(owner OwnerAPI, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var notice *orders.Notice
		if r.URL.Query().Get("updated") != "" {
			notice = &orders.Notice{Kind: orders.NoticeSuccess, Text: "Bank details updated successfully!"}
		}
		renderProfile(w, r, owner, pages, http.StatusOK, notice)
	}
}

func UpdateBankDetailsHandler(owner OwnerAPI, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := owner.UpdateBankDetails(r.Context(), bankDetailsForm(r))
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				mw.Unauthorized(w, r)
				return
			}
			slog.Error("update bank details failed", "error", err)
			notice := &orders.Notice{Kind: orders.NoticeError, Text: service.Detail(err, "Failed to update bank details")}
			renderProfile(w, r, owner, pages, upstreamStatus(err), notice)
			return
		}

		slog.Info("bank details updated", "owner_id", mw.Identity(r.Context()).ID)
		http.Redirect(w, r, "/profile?updated=1", http.StatusSeeOther)
	}
}

func renderProfile(w http.ResponseWriter, r *http.Request, owner OwnerAPI, pages *view.Renderer, status int, notice *orders.Notice) {
	page := view.ProfilePage{Base: base(r, "Profile")}
	page.Notice = notice

	profile, err := owner.Profile(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			mw.Unauthorized(w, r)
			return
		}
		slog.Error("load profile failed", "error", err)
		if page.Notice == nil {
			page.Notice = &orders.Notice{Kind: orders.NoticeError, Text: service.Detail(err, "Failed to load profile")}
		}
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
	}
	page.Profile = profile
	render(w, pages, status, "profile", page)
}
