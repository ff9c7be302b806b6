// redact маскирует чувствительные значения перед записью в лог.
// Email сохраняет домен и начало локальной части для трассировки,
// токены и пароли заменяются литералами целиком.
package redact

import "strings"

func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	// Срез по рунам: локальная часть может быть не-ASCII.
	if r := []rune(local); len(r) > 2 {
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
