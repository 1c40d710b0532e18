package main

import (
	"net/http"
	"time"

	"petshop/internal/domain/accesscontrol"
)

// reapCartsHandler handles DELETE /v1/orders: reclaim anonymous carts that
// have sat untouched past the retention window. The policy check runs here so
// the reaper itself stays policy-agnostic.
func (app *application) reapCartsHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	results := map[string]any{"jwt_token": getTokenFromContext(r)}

	if !accesscontrol.CanReapCarts(caller) {
		app.failureResponse(w, http.StatusForbidden, "you are not allowed to access this page", results)
		return
	}

	reclaimed, err := app.reaper.Reap(r.Context(), time.Now(), app.config.retentionDays)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.metrics.ReapRuns.Inc()
	app.metrics.CartsReaped.Add(float64(reclaimed))

	results["nb"] = reclaimed
	app.jsonResponse(w, http.StatusOK, "stale carts have been deleted", results)
}
