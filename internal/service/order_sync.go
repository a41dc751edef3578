package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eczhh/FakeStore/internal/cart"
	"github.com/eczhh/FakeStore/internal/model"
)

var (
	// ErrInvalidTransition — запрошенный переход недопустим из текущего статуса заказа
	// это нарушение контракта вызывающего, отклоняется без сетевого вызова
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrUnknownOrder — заказ с таким id движку не известен
	ErrUnknownOrder = errors.New("order is not known")
	// ErrEmptyCart — оформление пустой корзины не имеет смысла
	ErrEmptyCart = errors.New("cart is empty")
)

// OrderSyncEngine синхронизирует локальное знание о заказах с сервером
// сервер — единственный источник правды: локальный набор корзин целиком
// заменяется результатом полного обновления, точечных правок кэша нет
// единственное исключение — только что созданный заказ, который держится
// локально до тех пор, пока его не подтвердит полное обновление
type OrderSyncEngine struct {
	backend Backend
	log     *slog.Logger

	mu      sync.Mutex
	buckets Buckets
	// заказы, созданные локально и ещё не увиденные в полном списке
	optimistic map[int64]model.Order
}

// NewOrderSyncEngine создаёт движок синхронизации заказов
func NewOrderSyncEngine(backend Backend, log *slog.Logger) *OrderSyncEngine {
	return &OrderSyncEngine{
		backend:    backend,
		log:        log,
		optimistic: make(map[int64]model.Order),
	}
}

// Buckets возвращает копию текущего набора корзин
func (e *OrderSyncEngine) Buckets() Buckets {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.buckets.clone()
}

// RefreshOrders получает полный список заказов и раскладывает его по корзинам
// прежний набор корзин заменяется целиком; при любой ошибке он остаётся нетронутым
// обновление и выборка только что созданного заказа могут идти одновременно
// в любом порядке: слияние идемпотентно по id заказа, дубликатов не возникает
func (e *OrderSyncEngine) RefreshOrders(ctx context.Context) (Buckets, error) {
	const op = "service.OrderSyncEngine.RefreshOrders"
	log := e.log.With(slog.String("op", op))

	orders, err := e.backend.FetchOrders(ctx)
	if err != nil {
		log.Error("failed to fetch orders", slog.String("error", err.Error()))
		return Buckets{}, fmt.Errorf("%s: %w", op, err)
	}

	fresh := Partition(orders)

	e.mu.Lock()
	defer e.mu.Unlock()

	// оптимистичный заказ, попавший в полный список, подтверждён сервером,
	// остальные возвращаем в набор до следующего обновления
	for id, order := range e.optimistic {
		if fresh.contains(id) {
			delete(e.optimistic, id)
			continue
		}
		fresh.upsert(order)
	}

	// из двух конкурирующих обновлений побеждает завершившееся позже
	e.buckets = fresh

	log.Info("orders refreshed",
		slog.Int("total", fresh.Total()),
		slog.Int("new", len(fresh.New)),
		slog.Int("paid", len(fresh.Paid)),
		slog.Int("delivered", len(fresh.Delivered)),
	)
	return fresh.clone(), nil
}

// TrackOptimisticOrder выбирает только что созданный заказ по id и добавляет его
// в набор корзин, не дожидаясь полного обновления
// параллельно идущее обновление могло уже включить этот заказ, поэтому
// вставка выполняется как upsert по id, а не как слепое добавление
func (e *OrderSyncEngine) TrackOptimisticOrder(ctx context.Context, orderID int64) (Buckets, error) {
	const op = "service.OrderSyncEngine.TrackOptimisticOrder"
	log := e.log.With(slog.String("op", op), slog.Int64("order_id", orderID))

	order, err := e.backend.FetchOrder(ctx, orderID)
	if err != nil {
		log.Error("failed to fetch just-created order", slog.String("error", err.Error()))
		return Buckets{}, fmt.Errorf("%s: %w", op, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.optimistic[orderID] = order
	e.buckets.upsert(order)

	log.Info("tracking optimistic order", slog.String("status", order.Status().String()))
	return e.buckets.clone(), nil
}

// SubmitOrder строит заказ из снимка корзины и отправляет его на сервер
// при ошибке корзина остаётся нетронутой: её очищает вызывающий, и только
// после успеха; при успехе созданный заказ сразу берётся на оптимистичный учёт
func (e *OrderSyncEngine) SubmitOrder(ctx context.Context, snapshot cart.State) (int64, error) {
	const op = "service.OrderSyncEngine.SubmitOrder"
	log := e.log.With(slog.String("op", op))

	if len(snapshot.Lines) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	orderID, err := e.backend.CreateOrder(ctx, snapshot)
	if err != nil {
		log.Error("failed to create order", slog.String("error", err.Error()))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("order created", slog.Int64("order_id", orderID))

	// заказ уже существует на сервере: неудавшаяся одиночная выборка не отменяет
	// успех оформления, заказ подтвердится следующим полным обновлением
	if _, err := e.TrackOptimisticOrder(ctx, orderID); err != nil {
		log.Warn("failed to track just-created order", slog.String("error", err.Error()))
	}

	return orderID, nil
}

// Transition выполняет переход заказа по жизненному циклу
// допустимы ровно два перехода: новый → оплачен и оплачен → доставлен
// допустимость проверяется по закэшированному состоянию до любого сетевого вызова
// после успешной записи кэш не патчится точечно — всегда перечитывается
// полный список, и до завершения этого чтения корзины отражают устаревшее состояние
func (e *OrderSyncEngine) Transition(ctx context.Context, orderID int64, target model.Status) (Buckets, error) {
	const op = "service.OrderSyncEngine.Transition"
	log := e.log.With(slog.String("op", op), slog.Int64("order_id", orderID), slog.String("target", target.String()))

	e.mu.Lock()
	current, known := e.buckets.Find(orderID)
	e.mu.Unlock()

	if !known {
		return Buckets{}, fmt.Errorf("%s: %w: id %d", op, ErrUnknownOrder, orderID)
	}

	var isPaid, isDelivered bool
	switch {
	case target == model.StatusPaid && current.Status() == model.StatusNew:
		isPaid, isDelivered = true, false
	case target == model.StatusDelivered && current.Status() == model.StatusPaid:
		isPaid, isDelivered = true, true
	default:
		return Buckets{}, fmt.Errorf("%s: %w: %s -> %s", op, ErrInvalidTransition, current.Status(), target)
	}

	if err := e.backend.UpdateOrder(ctx, orderID, isPaid, isDelivered); err != nil {
		// локальное состояние не изменилось, вызывающий может повторить попытку
		log.Error("failed to update order", slog.String("error", err.Error()))
		return Buckets{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("order transitioned", slog.String("from", current.Status().String()))

	return e.RefreshOrders(ctx)
}
