package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"petshop/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// decodeProductInput flattens a JSON object into the raw field map the
// catalog validator consumes. Nulls are treated as absent fields, which is
// what makes partial updates work.
func decodeProductInput(w http.ResponseWriter, r *http.Request) (catalog.Input, error) {
	var raw map[string]any
	if err := readJSON(w, r, &raw); err != nil {
		return nil, err
	}

	in := make(catalog.Input, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			// absent
		case string:
			in[k] = t
		case bool:
			in[k] = strconv.FormatBool(t)
		case float64:
			in[k] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			in[k] = fmt.Sprint(t)
		}
	}
	return in, nil
}

func violationKindNames(violations []catalog.FieldViolation) []string {
	names := make([]string, 0, len(violations))
	for _, v := range violations {
		names = append(names, string(v.Kind))
	}
	return names
}

// createProductHandler handles POST /v1/products. Admin only; on validation
// failure every violated field is reported at once, together with the partial
// product the server assembled.
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	in, err := decodeProductInput(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	results := map[string]any{"jwt_token": getTokenFromContext(r)}

	product, violations, err := app.catalog.Create(r.Context(), caller, in)
	if err != nil {
		if errors.Is(err, catalog.ErrForbidden) {
			app.failureResponse(w, http.StatusForbidden, "you are not allowed to access this page", results)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if len(violations) > 0 {
		app.metrics.ValidationFailures.Inc()
		results["errors"] = violationKindNames(violations)
		results["product"] = product
		app.failureResponse(w, http.StatusBadRequest, "could not create the product", results)
		return
	}

	app.metrics.ProductsCreated.Inc()
	results["product"] = product
	app.jsonResponse(w, http.StatusCreated, "product created", results)
}

// updateProductHandler handles PUT /v1/products/{productID}. Only the fields
// present in the payload are validated and overwritten.
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	caller := getCallerFromContext(r)

	idStr := chi.URLParam(r, "productID")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid productID"))
		return
	}

	in, err := decodeProductInput(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	results := map[string]any{"jwt_token": getTokenFromContext(r)}

	product, violations, err := app.catalog.Update(r.Context(), caller, productID, in)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrForbidden):
			app.failureResponse(w, http.StatusForbidden, "you are not allowed to access this page", results)
		case errors.Is(err, catalog.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if len(violations) > 0 {
		app.metrics.ValidationFailures.Inc()
		results["errors"] = violationKindNames(violations)
		results["product"] = product
		app.failureResponse(w, http.StatusBadRequest, "could not update the product", results)
		return
	}

	app.metrics.ProductUpdates.Inc()
	results["product"] = product
	app.jsonResponse(w, http.StatusOK, "product updated", results)
}
