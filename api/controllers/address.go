package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/i9team/guilherme-ecommerce/api/responses"
	"github.com/i9team/guilherme-ecommerce/internal/address"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/logger"
)

// LookupAddress resolves a postal code to street-level fields for form
// autofill. The code may arrive masked or as bare digits.
func LookupAddress(client *address.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address lookup unavailable"))
			return
		}

		postalCode := strings.TrimSpace(chi.URLParam(r, "postalCode"))
		if postalCode == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "postal code is required"))
			return
		}

		result, err := client.Lookup(r.Context(), postalCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
