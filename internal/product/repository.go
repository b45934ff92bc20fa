package product

import (
	"context"
	"database/sql"
	"time"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository reads the catalog from the products table.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
	SELECT
		id,
		name,
		brand,
		category,
		subcategory,
		price,
		min_order,
		stock,
		unit,
		imageurl,
		created_at
	FROM products
	WHERE status = 'active'
	ORDER BY position, id
	`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var (
			p     Product
			unit  sql.NullString
			image sql.NullString
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Brand,
			&p.Category,
			&p.Subcategory,
			&p.Price,
			&p.MinOrder,
			&p.Stock,
			&unit,
			&image,
			&p.CreatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		p.Unit = unit.String
		p.Image = image.String
		if p.MinOrder < 1 {
			p.MinOrder = 1
		}
		if p.Stock < 0 {
			p.Stock = 0
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, nil
}
