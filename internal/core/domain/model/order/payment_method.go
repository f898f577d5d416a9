package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// PaymentMethod records how an external gateway settled the order.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// ParsePaymentMethod accepts the wire name of a payment method, ignoring case
// and surrounding blanks.
//
// Example:
//
//	m, err := order.ParsePaymentMethod(" UPI ")
//	// m == order.PaymentUPI, err == nil
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not supported", s))
	}
}
