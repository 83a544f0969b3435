package auth

import "regexp"

// Минимальная длина пароля
const minPasswordLength = 6

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Одноразовые почтовые сервисы не допускаются при регистрации
	disposableEmailRegex = regexp.MustCompile(`(?i)@(tempmail\.com|throwawaymail\.com|mailinator\.com|guerrillamail\.com|sharklasers\.com|grr\.la|guerrillamail\.net|spam4\.me|byom\.de|dispostable\.com|yopmail\.com|10minutemail\.com)$`)
)

// ValidateEmail проверяет формат email и отсекает одноразовые адреса.
// Проверка локальная, выполняется до любого обращения к бэкенду.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) || disposableEmailRegex.MatchString(email) {
		return &Error{
			Kind:    KindValidation,
			Message: "Укажите корректный email. Одноразовые почтовые сервисы не допускаются.",
		}
	}
	return nil
}

// ValidatePassword проверяет минимальную длину пароля
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &Error{
			Kind:    KindValidation,
			Message: "Пароль должен содержать не менее 6 символов.",
		}
	}
	return nil
}
