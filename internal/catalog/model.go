package catalog

import "time"

// Variant is a purchasable sub-option of a product (e.g. a color) with its
// own inventory count. Names are unique within a product.
type Variant struct {
	Name      string `json:"name"`
	Inventory int    `json:"inventory"`
}

type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Price is NUMERIC in Postgres; kept as a string to avoid rounding errors.
	Price     string    `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	Variants  []Variant `json:"variants"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindVariant returns the variant with the given name, or nil.
func (p *Product) FindVariant(name string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}
