package service

import "github.com/eczhh/FakeStore/internal/model"

// Buckets — разбиение известного набора заказов по статусам жизненного цикла
// три корзины попарно не пересекаются и вместе покрывают весь набор,
// это следует из самого правила вычисления статуса
type Buckets struct {
	New       []model.Order
	Paid      []model.Order
	Delivered []model.Order
}

// Partition раскладывает заказы по корзинам
// результат строится заново при каждом обновлении и нигде не персистится
func Partition(orders []model.Order) Buckets {
	var b Buckets
	for _, order := range orders {
		b.upsert(order)
	}
	return b
}

// upsert помещает заказ в корзину его статуса
// вставка идемпотентна по id: повторный заказ заменяет уже известную запись,
// а не добавляет дубликат, в какой бы корзине та ни лежала
func (b *Buckets) upsert(order model.Order) {
	b.remove(order.ID)
	switch order.Status() {
	case model.StatusDelivered:
		b.Delivered = append(b.Delivered, order)
	case model.StatusPaid:
		b.Paid = append(b.Paid, order)
	default:
		b.New = append(b.New, order)
	}
}

// remove убирает заказ из всех корзин
func (b *Buckets) remove(orderID int64) {
	b.New = withoutOrder(b.New, orderID)
	b.Paid = withoutOrder(b.Paid, orderID)
	b.Delivered = withoutOrder(b.Delivered, orderID)
}

func withoutOrder(orders []model.Order, orderID int64) []model.Order {
	for i, order := range orders {
		if order.ID == orderID {
			return append(orders[:i], orders[i+1:]...)
		}
	}
	return orders
}

// Find возвращает заказ по id, в какой бы корзине он ни находился
func (b Buckets) Find(orderID int64) (model.Order, bool) {
	for _, orders := range [][]model.Order{b.New, b.Paid, b.Delivered} {
		for _, order := range orders {
			if order.ID == orderID {
				return order, true
			}
		}
	}
	return model.Order{}, false
}

// contains сообщает, известен ли заказ с таким id
func (b Buckets) contains(orderID int64) bool {
	_, ok := b.Find(orderID)
	return ok
}

// Total возвращает общее число известных заказов
func (b Buckets) Total() int {
	return len(b.New) + len(b.Paid) + len(b.Delivered)
}

// clone возвращает глубокую копию набора корзин
// вызывающий владеет результатом и может держать его сколь угодно долго,
// движок после этого копию не трогает
func (b Buckets) clone() Buckets {
	out := Buckets{
		New:       make([]model.Order, len(b.New)),
		Paid:      make([]model.Order, len(b.Paid)),
		Delivered: make([]model.Order, len(b.Delivered)),
	}
	copy(out.New, b.New)
	copy(out.Paid, b.Paid)
	copy(out.Delivered, b.Delivered)
	return out
}
