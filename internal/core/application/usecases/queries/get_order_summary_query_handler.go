package queries

import (
	"context"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle reports another buyer's order as not found.
func (h GetOrderSummaryQueryHandler) Handle(ctx context.Context, query GetOrderSummaryQuery) (OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return OrderSummary{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderSummaryColumns+`
		FROM orders
		WHERE id = ? AND buyer_id = ?
	`, query.OrderID().Bytes(), query.BuyerID().Bytes()).Rows()
	if err != nil {
		return OrderSummary{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderSummary{}, err
		}
		return OrderSummary{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}

	return scanOrderSummary(rows)
}
