// Package product models a seller's lot offered for bidding.
package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	MinQuantity = 0.1
	// MinAskPrice is one major unit.
	MinAskPrice kernel.Money = 100
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
	ErrProductUnavailable      = errs.NewRuleViolationError(errs.KindUnavailable, "product is not available")
)

// Product is a lot listed by a seller. Availability is cleared exactly once, when a
// bid is auto-accepted, and is never restored by the marketplace itself.
type Product struct {
	id          kernel.UUID
	sellerID    kernel.UUID
	productType string
	quantity    float64
	askPrice    kernel.Money
	isAvailable bool
	createdAt   time.Time
	version     int64
	guard       guard.ConstructorGuard
}

// NewProduct lists a new available lot.
func NewProduct(
	id kernel.UUID,
	sellerID kernel.UUID,
	productType string,
	quantity float64,
	askPrice kernel.Money,
	now time.Time,
) (*Product, error) {
	p := &Product{
		isAvailable: true,
		createdAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setSellerID(sellerID),
		p.setProductType(productType),
		p.setQuantity(quantity),
		p.setAskPrice(askPrice),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a product from storage.
func RestoreProduct(
	id kernel.UUID,
	sellerID kernel.UUID,
	productType string,
	quantity float64,
	askPrice kernel.Money,
	isAvailable bool,
	createdAt time.Time,
	version int64,
) (*Product, error) {
	p, err := NewProduct(id, sellerID, productType, quantity, askPrice, createdAt)
	if err != nil {
		return nil, err
	}
	p.isAvailable = isAvailable
	p.version = version
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) SellerID() kernel.UUID {
	return p.sellerID
}

func (p *Product) ProductType() string {
	return p.productType
}

func (p *Product) Quantity() float64 {
	return p.quantity
}

func (p *Product) AskPrice() kernel.Money {
	return p.askPrice
}

func (p *Product) IsAvailable() bool {
	return p.isAvailable
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) Version() int64 {
	return p.version
}

// AdvanceVersion is called by repositories after a successful conditional write.
func (p *Product) AdvanceVersion() {
	p.version++
}

// MeetsAsk reports whether a bid at price is auto-accepted.
func (p *Product) MeetsAsk(price kernel.Money) bool {
	return price >= p.askPrice
}

// MarkSold clears availability; a lot can only be sold once.
func (p *Product) MarkSold() error {
	if !p.isAvailable {
		return ErrProductUnavailable
	}
	p.isAvailable = false
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}
	p.sellerID = id
	return nil
}

func (p *Product) setProductType(productType string) error {
	productType = strings.TrimSpace(productType)
	if productType == "" {
		return errs.NewValueIsRequiredError("productType")
	}
	p.productType = productType
	return nil
}

func (p *Product) setQuantity(quantity float64) error {
	if quantity < MinQuantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is less than %v", quantity, MinQuantity))
	}
	p.quantity = quantity
	return nil
}

func (p *Product) setAskPrice(price kernel.Money) error {
	if price < MinAskPrice {
		return errs.NewValueIsInvalidErrorWithCause("askPrice", fmt.Errorf("%s is less than %s", price, MinAskPrice))
	}
	if err := price.Validate(); err != nil {
		return err
	}
	p.askPrice = price
	return nil
}
