package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrVariantNotFound       = errors.New("variant not found")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, title, description, price::text, image_url, created_at, updated_at
		FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT name, inventory FROM product_variants
		WHERE product_id=$1 ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.Name, &v.Inventory); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}
	return &p, rows.Err()
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, title, description, price::text, image_url, created_at, updated_at
		FROM products ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	index := map[string]int{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vrows, err := r.DB.Query(ctx, `
		SELECT product_id, name, inventory FROM product_variants ORDER BY product_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var pid string
		var v Variant
		if err := vrows.Scan(&pid, &v.Name, &v.Inventory); err != nil {
			return nil, err
		}
		if i, ok := index[pid]; ok {
			out[i].Variants = append(out[i].Variants, v)
		}
	}
	return out, vrows.Err()
}

// Reserve decrements a variant's inventory by qty in a single conditional
// update. The WHERE clause guarantees inventory never drops below zero even
// under concurrent reservations; losers of a race on the last units observe
// ErrInsufficientInventory.
func (r *Repo) Reserve(ctx context.Context, productID, variantName string, qty int) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE product_variants
		SET inventory = inventory - $3
		WHERE product_id=$1 AND name=$2 AND inventory >= $3
	`, productID, variantName, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	// Nothing updated: distinguish a missing row from a stock shortfall.
	var inv int
	err = r.DB.QueryRow(ctx, `
		SELECT inventory FROM product_variants WHERE product_id=$1 AND name=$2
	`, productID, variantName).Scan(&inv)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrVariantNotFound
	}
	if err != nil {
		return err
	}
	return ErrInsufficientInventory
}

// Seed replaces the whole catalog in one transaction.
func (r *Repo) Seed(ctx context.Context, products []Product) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE product_variants, products`); err != nil {
		return err
	}
	for _, p := range products {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO products (id, title, description, price, image_url, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		`, id, p.Title, p.Description, p.Price, p.ImageURL); err != nil {
			return err
		}
		for i, v := range p.Variants {
			if _, err := tx.Exec(ctx, `
				INSERT INTO product_variants (product_id, name, inventory, position)
				VALUES ($1,$2,$3,$4)
			`, id, v.Name, v.Inventory, i); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
