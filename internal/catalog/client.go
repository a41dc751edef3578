package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eczhh/FakeStore/internal/model"
)

// ErrRequestFailed — запрос к каталогу не удалось выполнить
var ErrRequestFailed = errors.New("catalog request failed")

// Client — клиент публичного каталога товаров
// каталог живёт на отдельном хосте и не требует авторизации,
// все вызовы — stateless-чтение без локального кэширования
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиента каталога
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrRequestFailed, err)
	}
	return nil
}

// Categories возвращает список категорий каталога
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	const op = "catalog.Client.Categories"

	var categories []string
	if err := c.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}

// ProductsByCategory возвращает товары одной категории
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	const op = "catalog.Client.ProductsByCategory"

	var products []model.Product
	if err := c.getJSON(ctx, "/products/category/"+url.PathEscape(category), &products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// ProductByID возвращает один товар по идентификатору
func (c *Client) ProductByID(ctx context.Context, productID int64) (model.Product, error) {
	const op = "catalog.Client.ProductByID"

	var product model.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", productID), &product); err != nil {
		return model.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}
