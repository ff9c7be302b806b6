package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenKind — тип токена; попадает в claims и проверяется при декодировании.
type tokenKind string

const (
	tokenKindAccess  tokenKind = "access"
	tokenKindRefresh tokenKind = "refresh"
)

// sessionClaims — полезная нагрузка подписанного токена:
// subject (id пользователя для access, email для refresh), срок действия и тип.
type sessionClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// encodeToken подписывает claim set секретом соответствующего типа.
// Абсолютный срок действия = now + ttl.
func (s *Service) encodeToken(subject string, kind tokenKind, secret string, ttl time.Duration, now time.Time) (string, error) {
	const op = "service.token.encodeToken"

	claims := sessionClaims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(s.cfg.Algorithm), claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// decodeToken проверяет подпись, срок действия и тип токена,
// возвращая subject.
//
// Маппинг ошибок:
//   - структурный разбор не удался -> ErrMalformedToken;
//   - подпись не проходит под данным секретом (включая токен другого
//     типа) -> ErrInvalidSignature;
//   - срок действия истёк -> ErrTokenExpired;
//   - subject отсутствует -> ErrMissingSubject.
func (s *Service) decodeToken(tokenStr string, kind tokenKind, secret string) (string, error) {
	const op = "service.token.decodeToken"

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != s.cfg.Algorithm {
				return nil, fmt.Errorf("%s: unexpected signing method %q", op, t.Method.Alg())
			}

			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{s.cfg.Algorithm}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", fmt.Errorf("%s: %w", op, ErrMalformedToken)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", fmt.Errorf("%s: %w", op, ErrInvalidSignature)
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		default:
			return "", fmt.Errorf("%s: %w", op, ErrInvalidSignature)
		}
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	if claims.Kind != string(kind) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingSubject)
	}

	return claims.Subject, nil
}
