package queries

import (
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OrderSummary is the buyer-facing view of an order. The pickup code is never included.
type OrderSummary struct {
	OrderID       kernel.UUID
	ProductID     kernel.UUID
	SellerID      kernel.UUID
	ProductType   string
	Quantity      float64
	Price         kernel.Money
	Commission    kernel.Money
	Total         kernel.Money
	PaymentMethod string
	Status        string
	AgentID       *kernel.UUID
	IsPicked      bool
	IsDelivered   bool
	CreatedAt     time.Time
}

const orderSummaryColumns = `
			id,
			product_id,
			seller_id,
			product_type,
			quantity,
			price,
			commission,
			total_amount,
			payment_method,
			status,
			agent_id,
			is_picked,
			is_delivered,
			created_at`

func scanOrderSummary(rows *sql.Rows) (OrderSummary, error) {
	var summary OrderSummary
	var id, productID, sellerID uuid.UUID
	var agentID uuid.NullUUID

	err := rows.Scan(
		&id,
		&productID,
		&sellerID,
		&summary.ProductType,
		&summary.Quantity,
		&summary.Price,
		&summary.Commission,
		&summary.Total,
		&summary.PaymentMethod,
		&summary.Status,
		&agentID,
		&summary.IsPicked,
		&summary.IsDelivered,
		&summary.CreatedAt,
	)
	if err != nil {
		return OrderSummary{}, err
	}

	if summary.OrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummary{}, err
	}
	if summary.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return OrderSummary{}, err
	}
	if summary.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
		return OrderSummary{}, err
	}
	if agentID.Valid {
		agent, agentErr := kernel.UUIDFromBytes(agentID.UUID[:])
		if agentErr != nil {
			return OrderSummary{}, agentErr
		}
		summary.AgentID = &agent
	}

	return summary, nil
}
