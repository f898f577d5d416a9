package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSellerDashboardQueryHandler runs two grouped aggregates over products and orders.
type GetSellerDashboardQueryHandler struct {
	db *gorm.DB
}

func NewGetSellerDashboardQueryHandler(db *gorm.DB) GetSellerDashboardQueryHandler {
	return GetSellerDashboardQueryHandler{db: db}
}

func (h GetSellerDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetSellerDashboardQuery,
) (SellerDashboard, error) {
	if err := query.Validate(); err != nil {
		return SellerDashboard{}, err
	}

	sellerID := query.SellerID().Bytes()
	dashboard := SellerDashboard{
		Stock:          make([]StockLine, 0),
		OrdersByStatus: make([]StatusCount, 0),
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_type,
			COUNT(*) AS lots,
			COALESCE(SUM(quantity), 0) AS quantity
		FROM products
		WHERE seller_id = ? AND is_available
		GROUP BY product_type
		ORDER BY product_type
	`, sellerID).Scan(&dashboard.Stock).Error
	if err != nil {
		return SellerDashboard{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*) AS count
		FROM orders
		WHERE seller_id = ?
		GROUP BY status
		ORDER BY status
	`, sellerID).Scan(&dashboard.OrdersByStatus).Error
	if err != nil {
		return SellerDashboard{}, err
	}

	return dashboard, nil
}
