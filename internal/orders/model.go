package orders

import "time"

// ProductSnapshot is the product data denormalized onto the order at purchase
// time, so later catalog edits never change what the customer bought.
type ProductSnapshot struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
}

type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
}

type PaymentInfo struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Order is immutable once created: status and the product snapshot never
// change, and no update or delete path exists.
type Order struct {
	ID           string          `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	Product      ProductSnapshot `json:"product"`
	Variant      string          `json:"variant"`
	Quantity     int             `json:"quantity"`
	CustomerInfo CustomerInfo    `json:"customerInfo"`
	PaymentInfo  PaymentInfo     `json:"paymentInfo"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreateOrderRequest is a single purchase line. A multi-line cart is submitted
// by the client as a sequence of independent requests, each producing its own
// order.
type CreateOrderRequest struct {
	Product         ProductSnapshot `json:"product"`
	Variant         string          `json:"variant"`
	Quantity        int             `json:"quantity"`
	CustomerInfo    CustomerInfo    `json:"customerInfo"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo"`
	TransactionType string          `json:"transactionType"`
}
