package catalog

// DefaultProducts is the demo storefront catalog.
var DefaultProducts = []Product{
	{
		Title:       "Classic Sneakers",
		Description: "Stylish sneakers perfect for everyday wear.",
		Price:       "49.99",
		ImageURL:    "https://placehold.co/300x300?text=Sneakers",
		Variants: []Variant{
			{Name: "Red", Inventory: 20},
			{Name: "Blue", Inventory: 15},
			{Name: "Green", Inventory: 10},
		},
	},
	{
		Title:       "Leather Wallet",
		Description: "Genuine leather wallet with multiple card slots.",
		Price:       "19.99",
		ImageURL:    "https://placehold.co/300x300?text=Wallet",
		Variants: []Variant{
			{Name: "Brown", Inventory: 30},
			{Name: "Black", Inventory: 25},
		},
	},
	{
		Title:       "Sport Watch",
		Description: "Water-resistant digital watch with stopwatch features.",
		Price:       "89.99",
		ImageURL:    "https://placehold.co/300x300?text=Watch",
		Variants: []Variant{
			{Name: "Black Strap", Inventory: 12},
			{Name: "White Strap", Inventory: 8},
		},
	},
	{
		Title:       "Backpack",
		Description: "Durable backpack suitable for travel and daily use.",
		Price:       "59.99",
		ImageURL:    "https://placehold.co/300x300?text=Backpack",
		Variants: []Variant{
			{Name: "Grey", Inventory: 18},
			{Name: "Navy", Inventory: 10},
		},
	},
}
