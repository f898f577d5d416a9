// Package commands contains business operations that modify marketplace state.
// Every handler follows the same shape: validate the command, open a unit of
// work, mutate aggregates through domain services, write them back with
// version-checked updates, commit, and only then publish events.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces scope each handler to the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// ProductUoW manages transactions for product-only operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AgentUoW manages transactions for agent-only operations.
	AgentUoW interface {
		TxManager
		AgentRepoFactory
	}

	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// UoW spans every aggregate. Used by commands that coordinate products,
	// bids, orders and agents in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   agentRepo := uow.AgentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ProductRepoFactory
		BidRepoFactory
		OrderRepoFactory
		AgentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
