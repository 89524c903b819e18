package middlewarectx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/mentor-platform/internal/access"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/jwt"
)

// AccessGateMiddleware возвращает HTTP middleware, который пропускает запрос
// через шлюз доступа по таблице маршрутов.
//
// Токен разбирается опционально: публичные страницы доступны без него.
// Если шлюз вернул перенаправление, запрос завершается с HTTP 303 See Other,
// иначе передаётся дальше по цепочке. Битый или просроченный токен
// трактуется как его отсутствие.
func AccessGateMiddleware(rt access.Routes, parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "access.GateMiddleware"

			tok := tokenFromRequest(r, parser)
			decision := access.Evaluate(rt, r.URL.Path, tok)
			if !decision.Allow {
				log.Info("access redirect",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("redirect_to", decision.RedirectTo),
				)
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest собирает токен шлюза из контекста запроса либо из
// заголовка Authorization. Возвращает nil для анонимного запроса.
func tokenFromRequest(r *http.Request, parser TokenParser) *access.Token {
	if claims, ok := r.Context().Value(Claims).(*jwt.CustomClaims); ok {
		return &access.Token{
			Role:            claims.Role,
			IsConfirmed:     claims.IsConfirmed,
			RejectionReason: claims.RejectionReason,
		}
	}

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	claims, err := parser.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil
	}
	return &access.Token{
		Role:            claims.Role,
		IsConfirmed:     claims.IsConfirmed,
		RejectionReason: claims.RejectionReason,
	}
}
