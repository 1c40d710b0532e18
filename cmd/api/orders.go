package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"petshop/internal/domain/orders"

	"github.com/go-chi/chi/v5"
)

// listOrdersHandler handles GET /v1/orders with an optional ?status= filter.
// Users receive their own orders only; admins receive everything. An empty
// result set is reported in the failure envelope ("no orders found") but is
// not an error.
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	var status *orders.Status
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw != "" {
		st, ok := orders.ParseStatus(raw)
		if !ok {
			// An unrecognized filter matches nothing; echo it back unchanged.
			app.failureResponse(w, http.StatusOK, "no orders found", &orders.ListResult{
				AppliedFilter: raw,
				Orders:        []orders.Order{},
			})
			return
		}
		status = &st
	}

	result, err := app.orders.List(r.Context(), caller, status)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if result.Count == 0 {
		app.failureResponse(w, http.StatusOK, "no orders found", result)
		return
	}

	app.jsonResponse(w, http.StatusOK, "here is the list of orders", result)
}

// showOrderHandler handles GET /v1/orders/{orderID}. The validated token is
// echoed in the results for both success and failure, so clients can keep
// their session bookkeeping in one place.
func (app *application) showOrderHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	idStr := chi.URLParam(r, "orderID")
	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || orderID <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid orderID"))
		return
	}

	results := map[string]any{"jwt_token": getTokenFromContext(r)}

	order, err := app.orders.Show(r.Context(), caller, orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrForbidden):
			app.failureResponse(w, http.StatusForbidden, "you are not allowed to access this page", results)
		case errors.Is(err, orders.ErrNotFound):
			app.failureResponse(w, http.StatusNotFound, "not found", results)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	results["order"] = order
	app.jsonResponse(w, http.StatusOK, "here is the order", results)
}
