package model

// Product представляет товар каталога
// каталог отдаёт товары в готовом виде, локально они не изменяются
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}
