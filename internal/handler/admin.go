package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ownerconsole/internal/model"
	"ownerconsole/internal/mw"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/view"
)

var adminDone = map[string]string{
	"approved": "Owner approved successfully!",
	"rejected": "Owner rejected successfully!",
}

func AdminPageHandler(admin AdminAPI, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var notice *orders.Notice
		if text, ok := adminDone[r.URL.Query().Get("done")]; ok {
			notice = &orders.Notice{Kind: orders.NoticeSuccess, Text: text}
		}
		renderAdmin(w, r, admin, pages, http.StatusOK, notice)
	}
}

func ApproveOwnerHandler(admin AdminAPI, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		uid := strings.TrimSpace(r.PostFormValue("restaurant_uid"))
		if uid == "" {
			renderAdmin(w, r, admin, pages, http.StatusBadRequest,
				&orders.Notice{Kind: orders.NoticeError, Text: "Please select a restaurant"})
			return
		}

		if _, err := admin.ApproveOwner(r.Context(), id, uid); err != nil {
			adminActionFailed(w, r, admin, pages, err, "Failed to approve owner")
			return
		}
		slog.Info("owner approved", "owner_id", id, "restaurant_uid", uid, "admin_id", mw.Identity(r.Context()).ID)
		http.Redirect(w, r, "/admin?done=approved", http.StatusSeeOther)
	}
}

func RejectOwnerHandler(admin AdminAPI, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := admin.RejectOwner(r.Context(), id); err != nil {
			adminActionFailed(w, r, admin, pages, err, "Failed to reject owner")
			return
		}
		slog.Info("owner rejected", "owner_id", id, "admin_id", mw.Identity(r.Context()).ID)
		http.Redirect(w, r, "/admin?done=rejected", http.StatusSeeOther)
	}
}

func adminActionFailed(w http.ResponseWriter, r *http.Request, admin AdminAPI, pages *view.Renderer, err error, fallback string) {
	if errors.Is(err, service.ErrUnauthorized) {
		mw.Unauthorized(w, r)
		return
	}
	slog.Error("admin action failed", "error", err)
	notice := &orders.Notice{Kind: orders.NoticeError, Text: service.Detail(err, fallback)}
	renderAdmin(w, r, admin, pages, upstreamStatus(err), notice)
}

func renderAdmin(w http.ResponseWriter, r *http.Request, admin AdminAPI, pages *view.Renderer, status int, notice *orders.Notice) {
	ctx := r.Context()
	owners, err := admin.AllOwners(ctx)
	var restaurants []model.Restaurant
	if err == nil {
		restaurants, err = admin.AllRestaurants(ctx)
	}
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			mw.Unauthorized(w, r)
			return
		}
		slog.Error("load owners failed", "error", err)
		if notice == nil {
			notice = &orders.Notice{Kind: orders.NoticeError, Text: service.Detail(err, "Failed to load owners")}
		}
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
	}

	b := base(r, "Admin")
	signedIn := b.Owner
	// the nav is owner-only
	b.Owner = model.Identity{}
	page := view.NewAdminPage(b, signedIn, owners, restaurants, r.URL.Query().Get("status"))
	page.Notice = notice
	render(w, pages, status, "admin", page)
}
