package middleware

import (
	"context"
	"errors"
	"net/http"

	"trattoria/infras/jwt"
	"trattoria/infras/otel"
	"trattoria/shared/constant"
	"trattoria/shared/failure"
	"trattoria/transport/http/response"
)

// Identity resolves the caller from a bearer token when one is supplied.
type Identity interface {
	Identify(http.Handler) http.Handler
}

type identityImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewIdentityMiddleware(jwtService jwt.JWT, otel otel.Otel) Identity {
	return &identityImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

// Identify attaches the authenticated user to the context when an
// Authorization header is present. Requests without one pass through
// anonymously; requests with a bad token are rejected.
func (m *identityImpl) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, err := m.resolve(request.Context(), authHeader)
		if err != nil {
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *identityImpl) resolve(ctx context.Context, authHeader string) (context.Context, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
	defer scope.End()

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		err = failure.Unauthorized("Invalid authorization header format")
		scope.TraceError(err)

		return ctx, err
	}

	claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "Token has expired"
		case errors.Is(err, jwt.ErrInvalidToken):
			message = "Invalid token"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "Invalid token claims"
		default:
			message = "Token validation failed"
		}

		err = failure.Unauthorized(message)
		scope.TraceError(err)

		return ctx, err
	}

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	return ctx, nil
}
