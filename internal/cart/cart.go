package cart

import (
	"sync"

	"github.com/eczhh/FakeStore/internal/model"
)

// Line — одна позиция корзины: накопленное количество товара и производная сумма
type Line struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// State — полное состояние корзины
// инварианты: TotalQuantity == сумма Quantity по всем позициям,
// TotalAmount == сумма LineTotal, LineTotal == Quantity * UnitPrice
// итоги поддерживаются инкрементально, а не пересчитываются с нуля
type State struct {
	Lines         []Line  `json:"lines"`
	TotalQuantity int     `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}

// Store — контейнер состояния корзины
// все изменения проходят только через его операции, наружу отдаются лишь снимки
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore создаёт пустую корзину
func NewStore() *Store {
	return &Store{}
}

// AddItem добавляет товар в корзину
// если позиция с таким товаром уже есть, увеличивает её количество на единицу,
// иначе добавляет новую позицию в конец с количеством 1
func (s *Store) AddItem(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.TotalQuantity++
	s.state.TotalAmount += p.Price

	for i := range s.state.Lines {
		if s.state.Lines[i].ProductID == p.ID {
			s.state.Lines[i].Quantity++
			s.state.Lines[i].LineTotal += p.Price
			return
		}
	}

	s.state.Lines = append(s.state.Lines, Line{
		ProductID: p.ID,
		Title:     p.Title,
		Image:     p.Image,
		UnitPrice: p.Price,
		Quantity:  1,
		LineTotal: p.Price,
	})
}

// DecreaseQuantity уменьшает количество товара в позиции на единицу
// количество не опускается ниже 1: полное удаление — это отдельная явная операция RemoveItem
// отсутствующий товар или количество 1 — no-op, состояние не меняется
func (s *Store) DecreaseQuantity(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Lines {
		line := &s.state.Lines[i]
		if line.ProductID != productID {
			continue
		}
		if line.Quantity <= 1 {
			return
		}
		line.Quantity--
		line.LineTotal -= line.UnitPrice
		s.state.TotalQuantity--
		s.state.TotalAmount -= line.UnitPrice
		return
	}
}

// RemoveItem удаляет позицию целиком вместе с её вкладом в итоги
// отсутствующий товар — no-op
func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Lines {
		line := s.state.Lines[i]
		if line.ProductID != productID {
			continue
		}
		s.state.TotalQuantity -= line.Quantity
		s.state.TotalAmount -= line.LineTotal
		s.state.Lines = append(s.state.Lines[:i], s.state.Lines[i+1:]...)
		return
	}
}

// Clear сбрасывает корзину в пустое состояние
// вызывается после успешного оформления заказа
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
}

// Snapshot возвращает глубокую копию текущего состояния
// потребители (индикатор корзины, движок синхронизации) работают только со снимками,
// живой ссылки на внутреннее состояние не существует
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.copy()
}

// Restore загружает ранее сохранённый снимок состояния
// используется при старте приложения для восстановления корзины из локального хранилища
func (s *Store) Restore(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.copy()
}

func (st State) copy() State {
	out := st
	out.Lines = make([]Line, len(st.Lines))
	copy(out.Lines, st.Lines)
	return out
}
