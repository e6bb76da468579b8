package controllers

import (
	"net/http"

	"github.com/i9team/guilherme-ecommerce/api/responses"
	"github.com/i9team/guilherme-ecommerce/api/validators"
	"github.com/i9team/guilherme-ecommerce/internal/orders"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/logger"
)

// AdminListOrders pages through submitted orders, newest first.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
