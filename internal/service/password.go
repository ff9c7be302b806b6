package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword хэширует пароль с помощью bcrypt с настроенной стоимостью.
func (s *Service) hashPassword(password string) (string, error) {
	const op = "service.password.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
// Некорректный хэш не приводит к ошибке — только к отрицательному результату.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
