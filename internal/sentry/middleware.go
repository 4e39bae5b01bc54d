package sentry

import (
	"net/http"

	"github.com/getsentry/sentry-go"
)

// HTTPMiddleware gives each request its own hub and reports panics. After a
// panic is captured, onPanic writes the response.
func HTTPMiddleware(onPanic func(w http.ResponseWriter, r *http.Request, recovered any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hub := sentry.GetHubFromContext(r.Context())
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
			}
			hub.Scope().SetRequest(r)
			ctx := sentry.SetHubOnContext(r.Context(), hub)
			r = r.WithContext(ctx)

			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					hub.RecoverWithContext(ctx, rec)
					if onPanic != nil {
						onPanic(w, r, rec)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
