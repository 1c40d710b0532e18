package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"petshop/internal/domain/accesscontrol"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	callerCtx ctxKey = "caller"
	tokenCtx  ctxKey = "jwt_token"
)

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			username := app.config.auth.basic.user
			pass := app.config.auth.basic.pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if len(creds) != 2 || creds[0] != username || creds[1] != pass {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthTokenMiddleware resolves the Caller for the request: bearer token ->
// validated claims -> existing user + role set. Every gated handler below it
// reads the Caller from the context and never inspects the transport again.
func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
			return
		}

		token := parts[1]
		jwtToken, err := app.authenticator.ValidateAccessToken(token)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		claims, _ := jwtToken.Claims.(jwt.MapClaims)

		userID, err := strconv.ParseInt(fmt.Sprintf("%.f", claims["sub"]), 10, 64)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := r.Context()

		// The account must still exist; roles come from the token claims.
		if _, err := app.users.GetByID(ctx, userID); err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		caller := accesscontrol.NewCaller(userID, rolesFromClaims(claims)...)

		ctx = context.WithValue(ctx, callerCtx, caller)
		ctx = context.WithValue(ctx, tokenCtx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func rolesFromClaims(claims jwt.MapClaims) []accesscontrol.RoleName {
	raw, ok := claims["roles"].([]any)
	if !ok {
		return nil
	}
	roles := make([]accesscontrol.RoleName, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			roles = append(roles, accesscontrol.RoleName(s))
		}
	}
	return roles
}

func getCallerFromContext(r *http.Request) accesscontrol.Caller {
	caller, _ := r.Context().Value(callerCtx).(accesscontrol.Caller)
	return caller
}

func getTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(tokenCtx).(string)
	return token
}
