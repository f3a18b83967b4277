package middleware

import (
	"net/http"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/api/validators"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

// CartTokenHeader carries the shopper's server-issued cart token.
const CartTokenHeader = "X-TS-Cart-Token"

// CartToken extracts and validates the cart token header, seeding the
// request context. Handlers decide whether an absent token is an error.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(CartTokenHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := validators.ParseCartToken(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart token"))
				return
			}

			ctx := WithCartToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
