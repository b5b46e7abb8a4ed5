package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ownerconsole/internal/model"
	"ownerconsole/internal/mw"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/view"
)

func OrdersPageHandler(ctrl *orders.Controller, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Mount(r.Context()); errors.Is(err, service.ErrUnauthorized) {
			mw.Unauthorized(w, r)
			return
		}

		page := view.NewOrdersPage(base(r, "Orders"), ctrl.State())
		render(w, pages, http.StatusOK, "orders", page)
	}
}

// FetchOrdersHandler and RespondHandler back the page's forms. Outcomes
// land in the controller's notice, so both redirect back to the page.
func FetchOrdersHandler(ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.FetchOrders(r.Context()); errors.Is(err, service.ErrUnauthorized) {
			mw.Unauthorized(w, r)
			return
		}
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
	}
}

func RespondHandler(ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision, err := model.ParseDecision(r.PostFormValue("decision"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "id")
		err = ctrl.Respond(r.Context(), id, decision)
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			mw.Unauthorized(w, r)
			return
		case errors.Is(err, orders.ErrOrderNotFound),
			errors.Is(err, orders.ErrAlreadyResponded),
			errors.Is(err, orders.ErrResponseInFlight):
			slog.Info("response ignored", "order_id", id, "reason", err)
		}
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
	}
}

func DismissNoticeHandler(ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.DismissNotice()
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
	}
}
