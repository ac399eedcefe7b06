package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// productJSON keeps the price a JSON number on the wire; decimal.Decimal
// quotes it by default.
type productJSON struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:    p.ID,
		Name:  p.Name,
		Price: json.Number(p.Price.String()),
	})
}

// withID returns a copy of p carrying id; p itself is left untouched.
func (p Product) withID(id int64) Product {
	p.ID = id
	return p
}

type Store interface {
	List() []Product
	Get(id int64) (Product, bool)
	Add(p Product) Product
}

func DefaultSeed() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99")},
		{ID: 2, Name: "Phone", Price: decimal.RequireFromString("499.99")},
	}
}
