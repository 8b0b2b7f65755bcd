package models

// Car - запись объявления в таблице cars.json.
// Id не является стабильным идентификатором: при каждом создании
// все существующие id сдвигаются на единицу, новая запись получает id 1.
type Car struct {
	ID        int    `json:"id"`
	Category  string `json:"category"`
	Color     string `json:"color"`
	Model     string `json:"model"`
	CarNumber string `json:"carNumber"`
}
