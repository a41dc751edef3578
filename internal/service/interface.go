package service

import (
	"context"

	"github.com/eczhh/FakeStore/internal/cart"
	"github.com/eczhh/FakeStore/internal/model"
)

// Backend определяет контракт клиента бэкенда, нужный движку синхронизации
// движок принимает интерфейс, а не конкретный тип, для гибкости и тестируемости
type Backend interface {
	FetchOrders(ctx context.Context) ([]model.Order, error)
	FetchOrder(ctx context.Context, orderID int64) (model.Order, error)
	CreateOrder(ctx context.Context, snapshot cart.State) (int64, error)
	UpdateOrder(ctx context.Context, orderID int64, isPaid, isDelivered bool) error
}
