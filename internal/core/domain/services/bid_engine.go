package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"
)

// DefaultCommissionRate is the marketplace fee added on top of an accepted bid.
const DefaultCommissionRate = 0.05

var ErrBidProductMismatch = errs.NewValueIsInvalidErrorWithCause("bid", fmt.Errorf("bid does not reference the product"))

// BidEngine decides whether a bid auto-accepts.
type BidEngine struct {
	commissionRate float64
	codes          *PickupCodeManager
}

// NewBidEngine returns an engine charging commissionRate (a fraction, 0.05 for
// five percent) on every accepted bid. Codes for new orders come from codes.
func NewBidEngine(commissionRate float64, codes *PickupCodeManager) BidEngine {
	return BidEngine{commissionRate: commissionRate, codes: codes}
}

func (e BidEngine) CommissionRate() float64 {
	return e.commissionRate
}

// Accept sells p to b when the bid meets the ask. It returns a nil order, and
// changes nothing, for a bid below the ask.
//
// On acceptance the product is marked sold, the bid moves to accepted and a
// pending order carrying a fresh pickup code is returned. The caller must write
// all three atomically and conditionally on the product version it read.
func (e BidEngine) Accept(p *product.Product, b *bid.Bid, orderID kernel.UUID, now time.Time) (*order.Order, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !b.ProductID().IsEqual(p.ID()) {
		return nil, ErrBidProductMismatch
	}
	if !p.MeetsAsk(b.Price()) {
		return nil, nil
	}
	if !p.IsAvailable() {
		return nil, product.ErrProductUnavailable
	}

	commission := b.Price().MulRate(e.commissionRate)
	o, err := order.NewOrder(
		orderID,
		order.Linkage{
			BuyerID:   b.BuyerID(),
			SellerID:  p.SellerID(),
			ProductID: p.ID(),
			BidID:     b.ID(),
		},
		p.ProductType(),
		p.Quantity(),
		b.Price(),
		commission,
		now,
	)
	if err != nil {
		return nil, err
	}

	code, err := e.codes.Issue(now)
	if err != nil {
		return nil, err
	}
	if err = o.AttachPickupCode(code); err != nil {
		return nil, err
	}

	if err = b.Accept(); err != nil {
		return nil, err
	}
	if err = p.MarkSold(); err != nil {
		return nil, err
	}

	return o, nil
}
