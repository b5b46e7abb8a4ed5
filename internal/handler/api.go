package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ownerconsole/internal/live"
	"ownerconsole/internal/model"
	"ownerconsole/internal/mw"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/worker"
)

type noticeJSON struct {
	Kind orders.NoticeKind `json:"kind"`
	Text string            `json:"text"`
}

type orderJSON struct {
	model.CustomerOrder
	Processing bool `json:"processing"`
}

type stateJSON struct {
	Active           bool                   `json:"active"`
	Fetching         bool                   `json:"fetching"`
	FetchedAt        *time.Time             `json:"fetched_at,omitempty"`
	RemainingSeconds int                    `json:"remaining_seconds"`
	Countdown        string                 `json:"countdown"`
	Urgent           bool                   `json:"urgent"`
	Pending          int                    `json:"pending"`
	Notice           *noticeJSON            `json:"notice,omitempty"`
	CumulativeOrders []model.CumulativeItem `json:"cumulative_orders"`
	IndividualOrders []orderJSON            `json:"individual_orders"`
}

func newStateJSON(st orders.State) stateJSON {
	out := stateJSON{
		Active:           st.Active,
		Fetching:         st.Fetching,
		RemainingSeconds: int(st.Countdown.Remaining / time.Second),
		Countdown:        st.Countdown.String(),
		Urgent:           st.Countdown.Urgent,
		Pending:          st.Pending,
		CumulativeOrders: st.Snapshot.Cumulative,
		IndividualOrders: make([]orderJSON, 0, len(st.Snapshot.Individual)),
	}
	if out.CumulativeOrders == nil {
		out.CumulativeOrders = []model.CumulativeItem{}
	}
	if st.Active {
		t := st.Snapshot.FetchedAt
		out.FetchedAt = &t
	}
	if st.Notice != nil {
		out.Notice = &noticeJSON{Kind: st.Notice.Kind, Text: st.Notice.Text}
	}
	for _, o := range st.Snapshot.Individual {
		out.IndividualOrders = append(out.IndividualOrders, orderJSON{CustomerOrder: o, Processing: st.InFlight[o.ID]})
	}
	return out
}

func OrdersStateHandler(ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Mount(r.Context()); errors.Is(err, service.ErrUnauthorized) {
			mw.Unauthorized(w, r)
			return
		}
		writeJSON(w, http.StatusOK, newStateJSON(ctrl.State()))
	}
}

func FetchOrdersAPIHandler(ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ctrl.FetchOrders(r.Context())
		switch {
		case err == nil, errors.Is(err, orders.ErrNoOrders):
			writeJSON(w, http.StatusOK, newStateJSON(ctrl.State()))
		case errors.Is(err, orders.ErrFetchInProgress), errors.Is(err, orders.ErrSessionReset):
			writeDetail(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUnauthorized):
			mw.Unauthorized(w, r)
		default:
			writeDetail(w, http.StatusBadGateway, service.Detail(err, "Failed to fetch orders"))
		}
	}
}

type respondRequest struct {
	Decision string `json:"decision"`
}

func RespondAPIHandler(ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req respondRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid json")
			return
		}
		decision, err := model.ParseDecision(req.Decision)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}

		err = ctrl.Respond(r.Context(), chi.URLParam(r, "id"), decision)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, newStateJSON(ctrl.State()))
		case errors.Is(err, orders.ErrOrderNotFound):
			writeDetail(w, http.StatusNotFound, err.Error())
		case errors.Is(err, orders.ErrAlreadyResponded), errors.Is(err, orders.ErrResponseInFlight),
			errors.Is(err, orders.ErrSessionReset):
			writeDetail(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUnauthorized):
			mw.Unauthorized(w, r)
		default:
			writeDetail(w, http.StatusBadGateway, service.Detail(err, "Failed to submit response"))
		}
	}
}

func CountdownHandler(ctrl *orders.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, worker.TickFrom(ctrl.State()))
	}
}

func CountdownStreamHandler(ctrl *orders.Controller, hub *live.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		first := worker.TickFrom(ctrl.State())
		hub.Serve(w, r, &first)
	}
}
