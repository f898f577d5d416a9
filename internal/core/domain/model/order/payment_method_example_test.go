package order_test

import (
	"fmt"

	"marketplace/internal/core/domain/model/order"
)

func ExampleParsePaymentMethod() {
	m, err := order.ParsePaymentMethod(" UPI ")
	fmt.Println(m, err)

	_, err = order.ParsePaymentMethod("cheque")
	fmt.Println(err != nil)
	// Output:
	// upi <nil>
	// true
}
