// Package bid models a buyer's offer on a product.
package bid

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid or RestoreBid")

// Bid is created once in Pending and moves to exactly one terminal status.
type Bid struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	productID kernel.UUID
	price     kernel.Money
	status    Status
	createdAt time.Time
	version   int64
	guard     guard.ConstructorGuard
}

// NewBid files a pending bid by a buyer on a product.
//
// Parameters:
//   - id: identifier of the new bid
//   - buyerID: the buyer placing the bid
//   - productID: the product bid on
//   - price: offered price, positive and within kernel.MaxMoney
//   - now: filing time, used later by the expiry sweep
//
// Returns:
//   - *Bid: the bid in Pending status
//   - error: every validation failure joined into one error
//
// Example:
//
//	price, _ := kernel.MoneyFromMajor(120)
//	b, err := bid.NewBid(kernel.NewUUID(), buyerID, productID, price, time.Now())
//	if err != nil {
//	    return err
//	}
func NewBid(id, buyerID, productID kernel.UUID, price kernel.Money, now time.Time) (*Bid, error) {
	b := &Bid{
		status:    Pending,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setBuyerID(buyerID),
		b.setProductID(productID),
		b.setPrice(price),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBid rebuilds a bid read back from storage. The status and version are
// taken as stored, so a repository can resume optimistic writes from them.
func RestoreBid(
	id, buyerID, productID kernel.UUID,
	price kernel.Money,
	status Status,
	createdAt time.Time,
	version int64,
) (*Bid, error) {
	b, err := NewBid(id, buyerID, productID, price, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	b.status = status
	b.version = version
	return b, nil
}

func (b *Bid) Validate() error {
	if b == nil {
		return ErrBidIsNotConstructed
	}
	return b.guard.Validate(ErrBidIsNotConstructed)
}

func (b *Bid) ID() kernel.UUID {
	return b.id
}

func (b *Bid) BuyerID() kernel.UUID {
	return b.buyerID
}

func (b *Bid) ProductID() kernel.UUID {
	return b.productID
}

func (b *Bid) Price() kernel.Money {
	return b.price
}

func (b *Bid) Status() Status {
	return b.status
}

func (b *Bid) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Bid) Version() int64 {
	return b.version
}

// AdvanceVersion is called by repositories after a successful conditional write.
func (b *Bid) AdvanceVersion() {
	b.version++
}

// Accept records auto-acceptance.
func (b *Bid) Accept() error {
	return b.moveTo(Accepted)
}

// Reject records that the lot went to another bid.
func (b *Bid) Reject() error {
	return b.moveTo(Rejected)
}

// Expire records that the bid outlived its time to live.
func (b *Bid) Expire() error {
	return b.moveTo(Expired)
}

// IsExpiredAt reports whether a pending bid created before now-ttl should expire.
func (b *Bid) IsExpiredAt(now time.Time, ttl time.Duration) bool {
	return b.status == Pending && !now.Before(b.createdAt.Add(ttl))
}

func (b *Bid) moveTo(to Status) error {
	next, err := b.status.transition(to)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bid) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerID", err)
	}
	b.buyerID = id
	return nil
}

func (b *Bid) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	b.productID = id
	return nil
}

func (b *Bid) setPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("bidPrice", fmt.Errorf("%s is not greater than 0", price))
	}
	if err := price.Validate(); err != nil {
		return err
	}
	b.price = price
	return nil
}
