package models

import "time"

// TokenPair — пара токенов, выдаваемая при успешной аутентификации.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API (subject — id пользователя);
//   - RefreshToken — долгоживущий JWT для перевыпуска access-токена
//     (subject — email); при обновлении возвращается без изменений —
//     ротация refresh-токенов в этой схеме не выполняется;
//   - TokenType — всегда "bearer";
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	TokenType       string
	AccessExpiresAt time.Time
}

// TokenTypeBearer — единственный поддерживаемый тип токена.
const TokenTypeBearer = "bearer"
