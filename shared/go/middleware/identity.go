package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the context key holding the resolved user ID.
const UserIDKey contextKey = "user_id"

// ErrNoIdentity is returned when a request carries no resolvable identity.
var ErrNoIdentity = errors.New("no identity in request context")

// Identity verifies the bearer token on each request and stores the
// resolved user ID in the context. Token issuance happens elsewhere; this
// service only consumes an already-minted identity. Requests without a
// token pass through anonymously so public routes keep working.
func Identity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := resolveUserID(token, secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the resolved user ID from the context.
func UserID(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0, ErrNoIdentity
	}
	return id, nil
}

func resolveUserID(token string, secret []byte) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, errors.New("subject is not a user id")
	}
	return id, nil
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
