package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eczhh/FakeStore/internal/cart"
	"github.com/eczhh/FakeStore/internal/model"
)

// intBool — сервер передаёт булевы флаги заказа как числа 0/1
type intBool bool

func (b *intBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "false":
		*b = false
	case "1", "true":
		*b = true
	default:
		return fmt.Errorf("invalid flag value %q", string(data))
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// wireOrder — заказ в том виде, в каком его отдаёт сервер
// идентификатор приходит в поле id либо order_id в зависимости от эндпоинта,
// а позиции — строкой с JSON внутри, которую нужно разбирать отдельным шагом
type wireOrder struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	OrderItems  string  `json:"order_items"`
	TotalPrice  float64 `json:"total_price"`
	IsPaid      intBool `json:"is_paid"`
	IsDelivered intBool `json:"is_delivered"`
}

// toModel декодирует вложенный payload позиций и валидирует получившийся заказ
func (w wireOrder) toModel() (model.Order, error) {
	id := w.ID
	if id == 0 {
		id = w.OrderID
	}

	var items []model.OrderItem
	if w.OrderItems != "" {
		if err := json.Unmarshal([]byte(w.OrderItems), &items); err != nil {
			return model.Order{}, fmt.Errorf("%w: order %d items: %v", ErrDecode, id, err)
		}
	}

	order := model.Order{
		ID:          id,
		Items:       items,
		TotalPrice:  w.TotalPrice,
		IsPaid:      bool(w.IsPaid),
		IsDelivered: bool(w.IsDelivered),
	}
	if err := order.Validate(); err != nil {
		return model.Order{}, fmt.Errorf("%w: order %d: %v", ErrDecode, id, err)
	}
	return order, nil
}

// FetchOrders получает полный список заказов пользователя
// заказ с нечитаемым payload позиций пропускается и не роняет остальной список,
// нечитаемый конверт ответа — это ошибка всего запроса
func (c *Client) FetchOrders(ctx context.Context) ([]model.Order, error) {
	const op = "backend.Client.FetchOrders"

	var resp struct {
		Orders []wireOrder `json:"orders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/orders", nil, &resp, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders := make([]model.Order, 0, len(resp.Orders))
	for _, w := range resp.Orders {
		order, err := w.toModel()
		if err != nil {
			c.log.Warn("skipping undecodable order",
				slog.String("op", op),
				slog.Int64("order_id", w.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// FetchOrder получает один заказ по его идентификатору
func (c *Client) FetchOrder(ctx context.Context, orderID int64) (model.Order, error) {
	const op = "backend.Client.FetchOrder"

	var resp struct {
		Order wireOrder `json:"order"`
	}
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &resp, true); err != nil {
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := resp.Order.toModel()
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// wireCartItem — позиция корзины в формате, который ждёт сервер при создании заказа
type wireCartItem struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

// CreateOrder отправляет снимок корзины на сервер и возвращает id созданного заказа
func (c *Client) CreateOrder(ctx context.Context, snapshot cart.State) (int64, error) {
	const op = "backend.Client.CreateOrder"

	items := make([]wireCartItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, wireCartItem{
			ID:         line.ProductID,
			Title:      line.Title,
			Price:      line.UnitPrice,
			Image:      line.Image,
			Quantity:   line.Quantity,
			TotalPrice: line.LineTotal,
		})
	}

	body := struct {
		Items []wireCartItem `json:"items"`
	}{Items: items}

	var resp struct {
		OrderID int64 `json:"orderId"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/orders/neworder", body, &resp, true); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return resp.OrderID, nil
}

// UpdateOrder меняет флаги оплаты и доставки заказа на сервере
// сервер отвечает только статусом, тело ответа не разбирается
func (c *Client) UpdateOrder(ctx context.Context, orderID int64, isPaid, isDelivered bool) error {
	const op = "backend.Client.UpdateOrder"

	body := struct {
		OrderID     int64 `json:"orderID"`
		IsPaid      int   `json:"isPaid"`
		IsDelivered int   `json:"isDelivered"`
	}{
		OrderID:     orderID,
		IsPaid:      boolToInt(isPaid),
		IsDelivered: boolToInt(isDelivered),
	}

	if err := c.doJSON(ctx, http.MethodPost, "/orders/updateorder", body, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
