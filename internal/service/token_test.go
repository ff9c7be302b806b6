package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/account-service/internal/config"
	"github.com/pribylovaa/account-service/mocks"
)

func testAuthCfg() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:    "unit-access-secret",
		RefreshSecret:   "unit-refresh-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		BcryptCost:      4, // минимальная стоимость, чтобы тесты не тормозили
		Issuer:          "account-service",
	}
}

func newServiceWithMock(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockSt := mocks.NewMockStorage(ctrl)
	svc := New(mockSt, testAuthCfg())
	return svc, mockSt, ctrl
}

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	uid := uuid.New()

	at, err := svc.encodeToken(uid.String(), tokenKindAccess, svc.cfg.AccessSecret, svc.cfg.AccessTokenTTL, now)
	require.NoError(t, err)

	subject, err := svc.decodeToken(at, tokenKindAccess, svc.cfg.AccessSecret)
	require.NoError(t, err)
	require.Equal(t, uid.String(), subject)

	rt, err := svc.encodeToken("user@example.com", tokenKindRefresh, svc.cfg.RefreshSecret, svc.cfg.RefreshTokenTTL, now)
	require.NoError(t, err)

	subject, err = svc.decodeToken(rt, tokenKindRefresh, svc.cfg.RefreshSecret)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", subject)
}

func TestDecodeToken_CrossKindRejected(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	now := time.Now().UTC()

	// Токен, подписанный refresh-секретом, не проходит под access-секретом
	// (и наоборот) — всегда с ErrInvalidSignature.
	rt, err := svc.encodeToken("user@example.com", tokenKindRefresh, svc.cfg.RefreshSecret, svc.cfg.RefreshTokenTTL, now)
	require.NoError(t, err)

	_, err = svc.decodeToken(rt, tokenKindAccess, svc.cfg.AccessSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)

	at, err := svc.encodeToken(uuid.NewString(), tokenKindAccess, svc.cfg.AccessSecret, svc.cfg.AccessTokenTTL, now)
	require.NoError(t, err)

	_, err = svc.decodeToken(at, tokenKindRefresh, svc.cfg.RefreshSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeToken_KindClaimMismatch(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	// Даже при совпадающем секрете токен другого типа отклоняется.
	at, err := svc.encodeToken(uuid.NewString(), tokenKindAccess, svc.cfg.AccessSecret, svc.cfg.AccessTokenTTL, time.Now().UTC())
	require.NoError(t, err)

	_, err = svc.decodeToken(at, tokenKindRefresh, svc.cfg.AccessSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeToken_Expired(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	issued := time.Now().UTC().Add(-time.Hour)
	at, err := svc.encodeToken(uuid.NewString(), tokenKindAccess, svc.cfg.AccessSecret, 15*time.Minute, issued)
	require.NoError(t, err)

	_, err = svc.decodeToken(at, tokenKindAccess, svc.cfg.AccessSecret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeToken_ExpiryBoundary_WithInjectedClock(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute

	at, err := svc.encodeToken(uuid.NewString(), tokenKindAccess, svc.cfg.AccessSecret, ttl, issued)
	require.NoError(t, err)

	// До истечения срока токен валиден.
	svc.now = func() time.Time { return issued.Add(ttl - time.Second) }
	_, err = svc.decodeToken(at, tokenKindAccess, svc.cfg.AccessSecret)
	require.NoError(t, err)

	// После истечения (за пределами leeway) — ErrTokenExpired.
	svc.now = func() time.Time { return issued.Add(ttl + time.Minute) }
	_, err = svc.decodeToken(at, tokenKindAccess, svc.cfg.AccessSecret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeToken_Malformed(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	_, err := svc.decodeToken("not-a-token", tokenKindAccess, svc.cfg.AccessSecret)
	require.ErrorIs(t, err, ErrMalformedToken)

	_, err = svc.decodeToken("", tokenKindAccess, svc.cfg.AccessSecret)
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecodeToken_MissingSubject(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	at, err := svc.encodeToken("", tokenKindAccess, svc.cfg.AccessSecret, svc.cfg.AccessTokenTTL, time.Now().UTC())
	require.NoError(t, err)

	_, err = svc.decodeToken(at, tokenKindAccess, svc.cfg.AccessSecret)
	require.ErrorIs(t, err, ErrMissingSubject)
}

func TestDecodeToken_WrongAlgRejected(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	claims := sessionClaims{
		Kind: string(tokenKindAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    svc.cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(svc.cfg.AccessSecret))
	require.NoError(t, err)

	_, err = svc.decodeToken(signed, tokenKindAccess, svc.cfg.AccessSecret)
	require.Error(t, err)
}
