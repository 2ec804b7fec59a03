package session

import (
	"context"
	"net/http"

	"github.com/aristath/investa/internal/utils"
	"github.com/go-chi/chi/v5"
)

type contextKey struct{}

// URLParam is the route parameter carrying the username
const URLParam = "username"

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// Middleware starts a session from the {username} route parameter.
// Requests with an invalid username are rejected with 400.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := New(chi.URLParam(r, URLParam))
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
