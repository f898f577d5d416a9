package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	ErrPaymentNotApplicable     = errs.NewRuleViolationError(errs.KindNotFound, "order not found or already paid")
	ErrPickupNotApplicable      = errs.NewRuleViolationError(errs.KindNotFound, "order not found or not awaiting pickup")
	ErrOrderNotOwned            = errs.NewRuleViolationError(errs.KindNotFound, "order not found")
	ErrDeliveryAlreadyConfirmed = errs.NewRuleViolationError(errs.KindAlreadyDone, "delivery already confirmed")
	ErrNotReadyForDelivery      = errs.NewRuleViolationError(errs.KindNotReady, "order has not been picked up yet")
	ErrOrderNotClaimable        = errs.NewRuleViolationError(errs.KindConflict, "order is no longer available to claim")
	ErrOrderIsTerminal          = errs.NewRuleViolationError(errs.KindConflict, "order is already closed")
)

// Linkage is the immutable set of references an order is born with.
type Linkage struct {
	BuyerID   kernel.UUID
	SellerID  kernel.UUID
	ProductID kernel.UUID
	BidID     kernel.UUID
}

// Order is the aggregate root for a sale. It is created only when a bid is
// auto-accepted, and from then on the coordinator drives it through payment,
// agent assignment, pickup and delivery.
//
// Order follows these invariants:
//   - Linkage (buyer, seller, product, bid) never changes
//   - Total always equals price plus commission
//   - Status only moves forward; delivered and cancelled are terminal
//   - An agent is set at most once
//   - isPicked holds exactly when the status is shipped or delivered
//   - isDelivered holds exactly when the status is delivered
type Order struct {
	id          kernel.UUID
	link        Linkage
	productType string
	quantity    float64

	price      kernel.Money
	commission kernel.Money
	total      kernel.Money

	paymentMethod PaymentMethod
	status        Status

	// agentID is nil until an agent claims the order
	agentID *kernel.UUID

	// pickupCode is nil once consumed
	pickupCode *PickupCode

	isPicked    bool
	isDelivered bool
	createdAt   time.Time
	version     int64

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order for an accepted bid.
//
// Parameters:
//   - id: identifier of the new order
//   - link: buyer, seller, product and bid references
//   - productType, quantity: copied from the product at acceptance time
//   - price: the accepted bid price
//   - commission: marketplace fee added on top of price
//   - now: creation time
//
// Returns the order, or a joined validation error naming every invalid argument.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), link, "basmati", 10, 12000, 600, clock.Now())
//	// o.Total() == 12600
func NewOrder(
	id kernel.UUID,
	link Linkage,
	productType string,
	quantity float64,
	price kernel.Money,
	commission kernel.Money,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setLinkage(link),
		o.setProductType(productType),
		o.setQuantity(quantity),
		o.setAmounts(price, commission),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID            kernel.UUID
	Link          Linkage
	ProductType   string
	Quantity      float64
	Price         kernel.Money
	Commission    kernel.Money
	Total         kernel.Money
	PaymentMethod PaymentMethod
	Status        Status
	AgentID       *kernel.UUID
	PickupCode    *PickupCode
	IsPicked      bool
	IsDelivered   bool
	CreatedAt     time.Time
	Version       int64
}

// RestoreOrder rebuilds an order from storage and checks that the stored flags agree with its status.
func RestoreOrder(s Snapshot) (*Order, error) {
	o, err := NewOrder(s.ID, s.Link, s.ProductType, s.Quantity, s.Price, s.Commission, s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if s.Total != o.total {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total", fmt.Errorf("%s does not equal price %s plus commission %s", s.Total, s.Price, s.Commission))
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if err = validateFlags(s.Status, s.IsPicked, s.IsDelivered); err != nil {
		return nil, err
	}
	if s.AgentID != nil {
		if err = s.AgentID.Validate(); err != nil {
			return nil, err
		}
	}
	if s.PickupCode != nil {
		if err = s.PickupCode.Validate(); err != nil {
			return nil, err
		}
	}

	o.paymentMethod = s.PaymentMethod
	o.status = s.Status
	o.agentID = s.AgentID
	o.pickupCode = s.PickupCode
	o.isPicked = s.IsPicked
	o.isDelivered = s.IsDelivered
	o.version = s.Version
	return o, nil
}

// Snapshot exports the order state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:            o.id,
		Link:          o.link,
		ProductType:   o.productType,
		Quantity:      o.quantity,
		Price:         o.price,
		Commission:    o.commission,
		Total:         o.total,
		PaymentMethod: o.paymentMethod,
		Status:        o.status,
		AgentID:       o.agentID,
		PickupCode:    o.pickupCode,
		IsPicked:      o.isPicked,
		IsDelivered:   o.isDelivered,
		CreatedAt:     o.createdAt,
		Version:       o.version,
	}
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) BuyerID() kernel.UUID {
	return o.link.BuyerID
}

func (o *Order) SellerID() kernel.UUID {
	return o.link.SellerID
}

func (o *Order) ProductID() kernel.UUID {
	return o.link.ProductID
}

func (o *Order) BidID() kernel.UUID {
	return o.link.BidID
}

func (o *Order) ProductType() string {
	return o.productType
}

func (o *Order) Quantity() float64 {
	return o.quantity
}

func (o *Order) Price() kernel.Money {
	return o.price
}

func (o *Order) Commission() kernel.Money {
	return o.commission
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) Status() Status {
	return o.status
}

// AgentID returns the claiming agent, or nil.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

// PickupCode returns the active pickup code, or nil once consumed.
func (o *Order) PickupCode() *PickupCode {
	return o.pickupCode
}

func (o *Order) IsPicked() bool {
	return o.isPicked
}

func (o *Order) IsDelivered() bool {
	return o.isDelivered
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Version() int64 {
	return o.version
}

// AdvanceVersion is called by repositories after a successful conditional write.
func (o *Order) AdvanceVersion() {
	o.version++
}

// RecordPayment moves a pending order owned by buyerID to paid.
func (o *Order) RecordPayment(buyerID kernel.UUID, method PaymentMethod) error {
	if !o.link.BuyerID.IsEqual(buyerID) || o.status != Pending {
		return ErrPaymentNotApplicable
	}

	next, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = next
	o.paymentMethod = method
	return nil
}

// CheckAwaitingPickup fails with ErrPickupNotApplicable unless sellerID owns a paid, unpicked order.
func (o *Order) CheckAwaitingPickup(sellerID kernel.UUID) error {
	if !o.link.SellerID.IsEqual(sellerID) || o.status != Paid || o.isPicked {
		return ErrPickupNotApplicable
	}
	return nil
}

// AttachPickupCode replaces the current code. Only orders that have not left the seller carry a code.
func (o *Order) AttachPickupCode(code PickupCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	if o.isPicked || o.status.IsTerminal() || o.status == Shipped {
		return ErrOrderIsTerminal
	}
	o.pickupCode = &code
	return nil
}

// CompletePickup consumes the pickup code and ships the order.
func (o *Order) CompletePickup(sellerID kernel.UUID) error {
	if err := o.CheckAwaitingPickup(sellerID); err != nil {
		return err
	}

	next, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = next
	o.isPicked = true
	o.pickupCode = nil
	return nil
}

// AssignAgent binds the order to agentID. It succeeds at most once per order.
func (o *Order) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.status != Paid || o.agentID != nil || o.isPicked {
		return ErrOrderNotClaimable
	}

	o.agentID = &agentID
	return nil
}

// ConfirmDelivery closes a shipped order for its buyer. A repeated confirmation
// fails with ErrDeliveryAlreadyConfirmed and leaves the order untouched.
func (o *Order) ConfirmDelivery(buyerID kernel.UUID) error {
	if !o.link.BuyerID.IsEqual(buyerID) {
		return ErrOrderNotOwned
	}
	if o.isDelivered {
		return ErrDeliveryAlreadyConfirmed
	}
	if o.status != Shipped || !o.isPicked {
		return ErrNotReadyForDelivery
	}

	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = next
	o.isDelivered = true
	return nil
}

// Cancel abandons an order that has not shipped yet. The pickup code is dropped.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	o.pickupCode = nil
	return nil
}

func validateFlags(status Status, isPicked, isDelivered bool) error {
	picked := status == Shipped || status == Delivered
	if isPicked != picked {
		return errs.NewValueIsInvalidErrorWithCause(
			"isPicked", fmt.Errorf("isPicked=%t contradicts status %s", isPicked, status))
	}
	if isDelivered != (status == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"isDelivered", fmt.Errorf("isDelivered=%t contradicts status %s", isDelivered, status))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setLinkage(link Linkage) error {
	if err := errors.Join(
		requiredID("buyerID", link.BuyerID),
		requiredID("sellerID", link.SellerID),
		requiredID("productID", link.ProductID),
		requiredID("bidID", link.BidID),
	); err != nil {
		return err
	}
	o.link = link
	return nil
}

func (o *Order) setProductType(productType string) error {
	if productType == "" {
		return errs.NewValueIsRequiredError("productType")
	}
	o.productType = productType
	return nil
}

func (o *Order) setQuantity(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setAmounts(price, commission kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	if commission < 0 {
		return errs.NewValueIsInvalidErrorWithCause("commission", fmt.Errorf("%s is negative", commission))
	}
	if err := errors.Join(price.Validate(), commission.Validate()); err != nil {
		return err
	}
	total := price.Add(commission)
	if total < price {
		return errs.NewValueIsOutOfRangeError("total", total.String(), price.String(), kernel.MaxMoney.Major())
	}
	o.price = price
	o.commission = commission
	o.total = total
	return nil
}

func requiredID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
