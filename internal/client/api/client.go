package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/iudanet/quotesync/internal/models"
	"github.com/iudanet/quotesync/pkg/api"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxTries    = 3
	defaultMaxInterval = 2 * time.Second
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	baseURL     string
	token       string
	maxTries    uint
	maxInterval time.Duration
}

// Option настраивает Client
type Option func(*Client)

// WithToken задает bearer токен для всех запросов
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout задает таймаут одного HTTP запроса
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetry задает число попыток и максимальный интервал между ними.
// maxTries = 1 отключает повторы.
func WithRetry(maxTries uint, maxInterval time.Duration) Option {
	return func(c *Client) {
		if maxTries > 0 {
			c.maxTries = maxTries
		}
		if maxInterval > 0 {
			c.maxInterval = maxInterval
		}
	}
}

// WithLogger задает логгер для сообщений о повторах
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient подменяет http.Client (используется в тестах)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
		logger:      slog.New(slog.DiscardHandler),
		maxTries:    defaultMaxTries,
		maxInterval: defaultMaxInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll получает полную коллекцию записей с сервера
func (c *Client) FetchAll(ctx context.Context) ([]models.Record, error) {
	var resp api.RecordsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/records", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	records := make([]models.Record, 0, len(resp.Records))
	for _, r := range resp.Records {
		records = append(records, toModel(r))
	}
	return records, nil
}

// Upsert отправляет одну запись на сервер
func (c *Client) Upsert(ctx context.Context, record models.Record) (*api.Ack, error) {
	var ack api.Ack
	path := "/api/v1/records/" + url.PathEscape(record.ID)
	if err := c.doRequest(ctx, http.MethodPut, path, fromModel(record), &ack); err != nil {
		return nil, fmt.Errorf("upsert record %s: %w", record.ID, err)
	}
	if !ack.Success {
		return nil, fmt.Errorf("upsert record %s: %w: server did not acknowledge", record.ID, ErrUnavailable)
	}
	return &ack, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос с повторами.
// Повторяются только сетевые ошибки и ответы 5xx/429;
// остальные 4xx возвращаются сразу. Для 429 пауза берется из Retry-After.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var payload []byte
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = jsonData
	}

	b := backoff.NewExponentialBackOff()
	b.MaxInterval = c.maxInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.attempt(ctx, method, path, payload, result)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug("Retrying request",
				"method", method,
				"path", path,
				"next_in", next,
				"error", err)
		}),
	)
	return err
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, result any) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("%w: failed to create request: %w", ErrUnavailable, err))
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("%w: %w", ErrUnavailable, err))
		}
		return fmt.Errorf("%w: request failed: %w", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrUnavailable, err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := statusError(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusTooManyRequests {
			if secs, ok := retryAfter(resp.Header); ok {
				// Пауза из Retry-After заменяет очередной интервал backoff
				return fmt.Errorf("%w (%w)", statusErr, backoff.RetryAfter(secs))
			}
			return statusErr
		}
		if resp.StatusCode >= 500 {
			return statusErr
		}
		return backoff.Permanent(statusErr)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: failed to decode response: %w", ErrUnavailable, err))
		}
	}

	return nil
}

// maxRetryAfter ограничивает паузу, которую может запросить сервер (в секундах)
const maxRetryAfter = 60

// retryAfter читает Retry-After в секундах; форма HTTP-date не поддерживается
func retryAfter(h http.Header) (int, bool) {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return min(secs, maxRetryAfter), true
}

func statusError(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		msg = errResp.Error
		if errResp.Message != "" {
			msg += ": " + errResp.Message
		}
	}

	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return fmt.Errorf("%w: %w (%d): %s", ErrUnavailable, ErrUnauthorized, code, msg)
	}
	return fmt.Errorf("%w: server error (%d): %s", ErrUnavailable, code, msg)
}

func toModel(r api.Record) models.Record {
	return models.Record{
		ID:        r.ID,
		Text:      r.Text,
		Category:  r.Category,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromModel(r models.Record) api.Record {
	return api.Record{
		ID:        r.ID,
		Text:      r.Text,
		Category:  r.Category,
		UpdatedAt: r.UpdatedAt,
	}
}
