// Package services holds domain logic that spans more than one aggregate.
//
// The package includes:
//   - BidEngine: turns a bid that meets the ask into an order, selling the product
//   - PickupCodeManager: issues, validates and reissues one-time pickup codes
//   - AgentMatcher: binds an available agent to a claimable order and applies the
//     search radius policy used when agents look for nearby work
//
// Services mutate the aggregates they are given and never persist them; command
// handlers decide what is written and inside which transaction.
package services
