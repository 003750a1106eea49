package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrDuplicateNumber = errors.New("duplicate order number")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Insert(ctx context.Context, o *Order) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO orders (
			id, order_number,
			product_id, product_title, product_price, product_image_url,
			variant_name, quantity,
			full_name, email, phone, address, city, state, zip,
			card_number, expiry, cvv,
			status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		o.ID, o.OrderNumber,
		o.Product.ProductID, o.Product.Title, o.Product.Price, o.Product.ImageURL,
		o.Variant, o.Quantity,
		o.CustomerInfo.FullName, o.CustomerInfo.Email, o.CustomerInfo.Phone,
		o.CustomerInfo.Address, o.CustomerInfo.City, o.CustomerInfo.State, o.CustomerInfo.Zip,
		o.PaymentInfo.CardNumber, o.PaymentInfo.Expiry, o.PaymentInfo.CVV,
		o.Status, o.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "orders_order_number_key" {
		return ErrDuplicateNumber
	}
	return err
}

func (r *Repo) FindByNumber(ctx context.Context, number string) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, order_number,
		       product_id, product_title, product_price::text, product_image_url,
		       variant_name, quantity,
		       full_name, email, phone, address, city, state, zip,
		       card_number, expiry, cvv,
		       status, created_at
		FROM orders WHERE order_number=$1
	`, number).Scan(
		&o.ID, &o.OrderNumber,
		&o.Product.ProductID, &o.Product.Title, &o.Product.Price, &o.Product.ImageURL,
		&o.Variant, &o.Quantity,
		&o.CustomerInfo.FullName, &o.CustomerInfo.Email, &o.CustomerInfo.Phone,
		&o.CustomerInfo.Address, &o.CustomerInfo.City, &o.CustomerInfo.State, &o.CustomerInfo.Zip,
		&o.PaymentInfo.CardNumber, &o.PaymentInfo.Expiry, &o.PaymentInfo.CVV,
		&o.Status, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
