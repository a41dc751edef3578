package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ошибки клиента различимы через errors.Is, чтобы вызывающий мог выбрать реакцию
var (
	// ErrRequestFailed — запрос не удалось выполнить или сервер вернул неуспешный статус
	ErrRequestFailed = errors.New("backend request failed")
	// ErrDecode — тело ответа или вложенный payload заказа не удалось разобрать
	ErrDecode = errors.New("backend payload decode failed")
	// ErrUnauthorized — токен отсутствует или отвергнут сервером
	ErrUnauthorized = errors.New("backend request unauthorized")
)

// TokenProvider отдаёт bearer-токен текущей сессии
// клиент не знает, где и как токен хранится — этим занимается хранилище учётных данных
type TokenProvider interface {
	Token() (string, error)
}

// Client — HTTP-клиент бэкенда магазина
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	log        *slog.Logger
}

// NewClient создаёт клиента бэкенда
func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider, log *slog.Logger) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
}

// doJSON выполняет запрос с JSON-телом и декодирует JSON-ответ в out
// при withAuth=true добавляет заголовок Authorization с токеном текущей сессии
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	// сквозной идентификатор запроса для поиска по логам сервера
	req.Header.Set("X-Request-ID", uuid.NewString())

	if withAuth {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
