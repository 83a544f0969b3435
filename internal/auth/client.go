package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Session - сессия пользователя, выданная бэкендом
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// User - профиль пользователя на бэкенде
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Client - клиент GoTrue-совместимого сервиса аутентификации.
// Все вызовы асинхронны и могут завершиться ошибкой; текст известных
// ошибок бэкенда сопоставляется с типизированным видом прямо здесь.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewClient создает клиент сервиса аутентификации
func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SignUp регистрирует нового пользователя. Email и пароль проверяются
// локально до обращения к бэкенду.
func (c *Client) SignUp(ctx context.Context, email, password, firstName, lastName string) (*Session, error) {
	if email == "" || password == "" || firstName == "" || lastName == "" {
		return nil, &Error{Kind: KindValidation, Message: "Заполните все обязательные поля."}
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"first_name": firstName,
			"last_name":  lastName,
		},
	}

	var resp sessionResponse
	if err := c.post(ctx, "/auth/v1/signup", payload, &resp); err != nil {
		return nil, err
	}
	return resp.session(email), nil
}

// SignIn выполняет вход по email и паролю
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, &Error{Kind: KindValidation, Message: "Укажите email и пароль."}
	}

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp sessionResponse
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", payload, &resp); err != nil {
		return nil, err
	}
	return resp.session(email), nil
}

// Recover запрашивает письмо для сброса пароля
func (c *Client) Recover(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return c.post(ctx, "/auth/v1/recover", map[string]string{"email": email}, nil)
}

// User возвращает профиль пользователя по токену сессии
func (c *Client) User(ctx context.Context, accessToken string) (*User, error) {
	var raw struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"user_metadata"`
	}
	if err := c.get(ctx, "/auth/v1/user", accessToken, &raw); err != nil {
		return nil, err
	}
	return &User{
		ID:        raw.ID,
		Email:     raw.Email,
		FirstName: raw.UserMetadata.FirstName,
		LastName:  raw.UserMetadata.LastName,
	}, nil
}

// IsVerified проверяет флаг подтверждения пользователя в таблице профилей
func (c *Client) IsVerified(ctx context.Context, accessToken, userID string) (bool, error) {
	path := "/rest/v1/users?select=is_verified&id=eq." + url.QueryEscape(userID)

	var rows []struct {
		IsVerified bool `json:"is_verified"`
	}
	if err := c.get(ctx, path, accessToken, &rows); err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	return rows[0].IsVerified, nil
}

// sessionResponse покрывает оба формата ответа бэкенда: сессию целиком
// или пользователя без сессии (регистрация с подтверждением по почте)
type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	ID string `json:"id"`
}

func (r *sessionResponse) session(email string) *Session {
	userID := r.User.ID
	if userID == "" {
		userID = r.ID
	}
	if r.User.Email != "" {
		email = r.User.Email
	}
	return &Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    r.ExpiresIn,
		UserID:       userID,
		Email:        email,
	}
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, "")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	c.setAuthHeaders(req, accessToken)

	return c.do(req, out)
}

func (c *Client) setAuthHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.anonKey)
	if accessToken == "" {
		accessToken = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка обращения к сервису аутентификации: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode >= 400 {
		return backendError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("ошибка разбора ответа: %w", err)
		}
	}
	return nil
}

// backendError строит типизированную ошибку из ответа бэкенда
func backendError(statusCode int, data []byte) error {
	var payload struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(data, &payload)

	message := payload.Msg
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = payload.ErrorDescription
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", statusCode)
	}

	kind := classify(message)
	if kind == KindBackend && statusCode == http.StatusTooManyRequests {
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Message: message}
}
