package model

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Status — производный статус жизненного цикла заказа
// сервер не хранит статус отдельным полем: он вычисляется из пары флагов (IsPaid, IsDelivered)
type Status string

const (
	StatusNew       Status = "new"       // не оплачен и не доставлен
	StatusPaid      Status = "paid"      // оплачен, ждёт доставки
	StatusDelivered Status = "delivered" // оплачен и доставлен, терминальный статус
)

// String нужен для логирования
func (s Status) String() string {
	return string(s)
}

// OrderItem представляет одну денормализованную позицию заказа
// позиции хранятся на сервере как закодированный payload внутри заказа
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// Order представляет заказ, каким его отдаёт бэкенд
type Order struct {
	ID          int64       `json:"id" validate:"required"`
	Items       []OrderItem `json:"items" validate:"dive"`
	TotalPrice  float64     `json:"total_price" validate:"gte=0"`
	IsPaid      bool        `json:"is_paid"`
	IsDelivered bool        `json:"is_delivered"`
}

// Status вычисляет статус заказа из флагов оплаты и доставки
func (o Order) Status() Status {
	switch {
	case o.IsPaid && o.IsDelivered:
		return StatusDelivered
	case o.IsPaid:
		return StatusPaid
	default:
		return StatusNew
	}
}

var validate = validator.New()

// ErrInvalidFlags — комбинация «не оплачен, но доставлен» недостижима в нормальном цикле заказа
var ErrInvalidFlags = errors.New("order is delivered but not paid")

// Validate проверяет корректность структуры Order на основе тегов validate
// дополнительно отсекает недопустимую комбинацию флагов, которую теги выразить не могут
func (o *Order) Validate() error {
	if !o.IsPaid && o.IsDelivered {
		return ErrInvalidFlags
	}
	return validate.Struct(o)
}
