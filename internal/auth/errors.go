// Package auth содержит клиент сервиса аутентификации и локальную сессию
package auth

import "strings"

// Kind - типизированный вид ошибки аутентификации. Сопоставление текста
// бэкенда с видом ошибки выполняется один раз в адаптере, дальше по коду
// передается только Kind.
type Kind int

// Виды ошибок аутентификации
const (
	// KindBackend - прочая ошибка бэкенда
	KindBackend Kind = iota
	// KindValidation - локальная проверка ввода не прошла, запрос не отправлялся
	KindValidation
	// KindAlreadyRegistered - email уже зарегистрирован
	KindAlreadyRegistered
	// KindEmailNotConfirmed - email не подтвержден
	KindEmailNotConfirmed
	// KindInvalidCredentials - неверные email или пароль
	KindInvalidCredentials
	// KindRateLimited - превышен лимит запросов
	KindRateLimited
)

// Error - ошибка аутентификации с типизированным видом
type Error struct {
	Kind    Kind
	Message string // Исходный текст (от бэкенда или локальной проверки)
}

func (e *Error) Error() string {
	return e.Message
}

// UserMessage возвращает понятный пользователю текст ошибки.
// Единственное место сопоставления вида ошибки с текстом.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindValidation:
		return e.Message
	case KindAlreadyRegistered:
		return "Этот email уже зарегистрирован. Войдите в существующий аккаунт."
	case KindEmailNotConfirmed:
		return "Email не подтвержден. Проверьте почту и перейдите по ссылке из письма."
	case KindInvalidCredentials:
		return "Неверные email или пароль."
	case KindRateLimited:
		return "Превышен лимит запросов. Подождите несколько минут и попробуйте снова."
	default:
		return "Ошибка сервиса аутентификации: " + e.Message
	}
}

// KindOf возвращает вид ошибки; KindBackend для чужих ошибок
func KindOf(err error) Kind {
	if authErr, ok := err.(*Error); ok {
		return authErr.Kind
	}
	return KindBackend
}

// classify сопоставляет текст ошибки бэкенда с типизированным видом.
// Вызывается только внутри клиента, сразу после получения ответа.
func classify(message string) Kind {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "already registered"):
		return KindAlreadyRegistered
	case strings.Contains(lower, "email not confirmed"):
		return KindEmailNotConfirmed
	case strings.Contains(lower, "invalid login credentials"):
		return KindInvalidCredentials
	case strings.Contains(lower, "rate limit"), strings.Contains(lower, "hour.error.email.rate"):
		return KindRateLimited
	default:
		return KindBackend
	}
}
