package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"ownerconsole/internal/model"
	"ownerconsole/internal/mw"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/view"
)

func HistoryPageHandler(owner OwnerAPI, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := view.HistoryPage{Base: base(r, "Order History")}

		history, err := owner.OrderHistory(r.Context())
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				mw.Unauthorized(w, r)
				return
			}
			slog.Error("order history failed", "error", err)
			page.Notice = &orders.Notice{Kind: orders.NoticeError, Text: service.Detail(err, "Failed to load order history")}
			render(w, pages, http.StatusBadGateway, "history", page)
			return
		}

		page.Orders = history.Orders
		page.Total = history.TotalCount
		render(w, pages, http.StatusOK, "history", page)
	}
}

func EarningsPageHandler(owner OwnerAPI, pages *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page := view.EarningsPage{Base: base(r, "Earnings")}

		summary, err := owner.EarningsSummary(ctx)
		if err == nil {
			page.Summary = summary
			var txns *model.TransactionPage
			txns, err = owner.EarningsTransactions(ctx, transactionFilter(r))
			page.Transactions = txns
		}
		if err == nil {
			page.Monthly, err = owner.MonthlyEarnings(ctx)
		}

		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				mw.Unauthorized(w, r)
				return
			}
			slog.Error("earnings failed", "error", err)
			page.Notice = &orders.Notice{Kind: orders.NoticeError, Text: service.Detail(err, "Failed to load earnings")}
			render(w, pages, http.StatusBadGateway, "earnings", page)
			return
		}

		render(w, pages, http.StatusOK, "earnings", page)
	}
}

// transactionFilter reads limit, offset and is_paid from the query string.
// Unparseable values are ignored.
func transactionFilter(r *http.Request) model.TransactionFilter {
	q := r.URL.Query()
	f := model.TransactionFilter{Limit: 50}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 && n <= 200 {
		f.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n >= 0 {
		f.Offset = n
	}
	if b, err := strconv.ParseBool(q.Get("is_paid")); err == nil {
		f.IsPaid = &b
	}
	return f
}
