package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/surveyforge/authcore/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Guard authenticates requests by their Authorization header. The header must
// be exactly "Bearer <token>": the scheme is case-sensitive and separated by a
// single space. Missing header, malformed header and invalid token all
// produce the same 401 response.
type Guard struct {
	codec *auth.TokenCodec
}

func NewGuard(codec *auth.TokenCodec) *Guard {
	return &Guard{codec: codec}
}

func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		claims, err := g.codec.VerifyAccessToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the access token claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
