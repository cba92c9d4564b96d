package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken возвращается, когда bearer токен нельзя разобрать как JWT
	ErrMalformedToken = errors.New("session: malformed bearer token")

	// ErrTokenExpired возвращается, когда срок действия токена истек
	ErrTokenExpired = errors.New("session: token expired")
)

// Session данные оператора, привязанные к одному запросу.
// Заполняется auth middleware при входе запроса и живет только до его завершения.
// Подпись токена проверяет бэкенд (провайдер идентификации внешний),
// здесь claims читаются без проверки подписи
type Session struct {
	Token     string
	Subject   string
	Email     string
	ExpiresAt *time.Time
}

// IsExpired returns true if the token carries an expiry that has passed
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

type contextKey struct{}

// WithSession кладет сессию в контекст запроса
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext извлекает сессию из контекста
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// ParseAuthorizationHeader извлекает токен из заголовка "Authorization: Bearer <token>".
// Пустой заголовок - не ошибка: запрос пойдет без аутентификации
func ParseAuthorizationHeader(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Parse разбирает claims токена (без проверки подписи)
func Parse(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	s := &Session{Token: token}

	if sub, err := claims.GetSubject(); err == nil {
		s.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		s.ExpiresAt = &t
	}

	return s, nil
}

// ContextTokenSource отдает токен текущей сессии из контекста запроса
type ContextTokenSource struct{}

// Token возвращает bearer токен, если в контексте есть сессия
func (ContextTokenSource) Token(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || s.Token == "" {
		return "", false
	}
	return s.Token, true
}
