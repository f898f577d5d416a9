// Package order holds the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: links one accepted bid to its buyer, seller and product and carries
//     payment, agent assignment, pickup and delivery state
//   - Status: the state machine pending -> paid -> shipped -> delivered, with
//     cancelled reachable before shipment
//   - PickupCode: the short-lived numeric code that gates the paid -> shipped step
//   - PaymentMethod: how the buyer settled the order
//
// Key business rules:
//   - Status never moves backwards; delivered and cancelled are terminal
//   - An agent is assigned at most once and only to a paid, unpicked order
//   - A pickup code is cleared when consumed and is never reused
//   - Delivery confirmation is rejected, not ignored, when repeated
package order
