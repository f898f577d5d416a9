package cmd

import (
	"log/slog"

	httpapi "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/agentrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	locations  ports.LocationStore
	codes      *services.PickupCodeManager
	clock      kernel.Clock
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, notifier ports.Notifier, locations ports.LocationStore) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		locations:  locations,
		codes:      services.NewPickupCodeManager(cfg.PickupCodeTTL, services.RandomDigits),
		clock:      kernel.SystemClock{},
	}
}

func (c *CompositionRoot) bidEngine() services.BidEngine {
	return services.NewBidEngine(c.cfg.CommissionRate, c.codes)
}

func (c *CompositionRoot) agentMatcher() services.AgentMatcher {
	return services.NewAgentMatcher(c.cfg.NearbyDefaultRadius, c.cfg.NearbyMaxRadius)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productUoW() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) agentUoW() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceBidCommandHandler() commands.PlaceBidCommandHandler {
	return commands.NewPlaceBidCommandHandler(c.uow(), c.bidEngine(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.uow(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateVerifyPickupCommandHandler() commands.VerifyPickupCommandHandler {
	return commands.NewVerifyPickupCommandHandler(c.orderUoW(), c.codes, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRegisterProductCommandHandler() commands.RegisterProductCommandHandler {
	return commands.NewRegisterProductCommandHandler(c.productUoW(), c.clock)
}

func (c *CompositionRoot) CreateSetSellerLocationCommandHandler() commands.SetSellerLocationCommandHandler {
	return commands.NewSetSellerLocationCommandHandler(c.locations)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.uow(), c.agentMatcher(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateUpdateAgentLocationCommandHandler() commands.UpdateAgentLocationCommandHandler {
	return commands.NewUpdateAgentLocationCommandHandler(c.agentUoW())
}

func (c *CompositionRoot) CreateMarkAgentAvailableCommandHandler() commands.MarkAgentAvailableCommandHandler {
	return commands.NewMarkAgentAvailableCommandHandler(c.agentUoW())
}

func (c *CompositionRoot) CreateSweepBidsCommandHandler() commands.SweepBidsCommandHandler {
	return commands.NewSweepBidsCommandHandler(c.uow(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateGetBuyerOrdersQueryHandler() queries.GetBuyerOrdersQueryHandler {
	return queries.NewGetBuyerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSellerDashboardQueryHandler() queries.GetSellerDashboardQueryHandler {
	return queries.NewGetSellerDashboardQueryHandler(c.gormDB)
}

// CreateFindNearbyOrdersQueryHandler reads outside any transaction; the claim
// itself re-checks everything under version control.
func (c *CompositionRoot) CreateFindNearbyOrdersQueryHandler() queries.FindNearbyOrdersQueryHandler {
	return queries.NewFindNearbyOrdersQueryHandler(
		agentrepo.NewGormAgentRepository(c.gormDB),
		orderrepo.NewGormOrderRepository(c.gormDB),
		c.locations,
		c.agentMatcher(),
	)
}

func (c *CompositionRoot) CreateFindNearbySellersQueryHandler() queries.FindNearbySellersQueryHandler {
	return queries.NewFindNearbySellersQueryHandler(c.locations, c.agentMatcher())
}

// CreateHTTPHandlers binds every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpapi.Handlers {
	return httpapi.Handlers{
		PlaceBid:        c.CreatePlaceBidCommandHandler(),
		RecordPayment:   c.CreateRecordPaymentCommandHandler(),
		ConfirmDelivery: c.CreateConfirmDeliveryCommandHandler(),
		BuyerOrders:     c.CreateGetBuyerOrdersQueryHandler(),
		OrderSummary:    c.CreateGetOrderSummaryQueryHandler(),
		NearbySellers:   c.CreateFindNearbySellersQueryHandler(),

		VerifyPickup:      c.CreateVerifyPickupCommandHandler(),
		RegisterProduct:   c.CreateRegisterProductCommandHandler(),
		SetSellerLocation: c.CreateSetSellerLocationCommandHandler(),
		SellerDashboard:   c.CreateGetSellerDashboardQueryHandler(),

		ClaimOrder:          c.CreateClaimOrderCommandHandler(),
		UpdateAgentLocation: c.CreateUpdateAgentLocationCommandHandler(),
		MarkAgentAvailable:  c.CreateMarkAgentAvailableCommandHandler(),
		NearbyOrders:        c.CreateFindNearbyOrdersQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	sweep := jobs.NewBidSweepJob(
		c.CreateSweepBidsCommandHandler(),
		c.cfg.BidSweepSchedule,
		c.cfg.BidTTL,
		c.cfg.BidSweepBatchSize,
		logger,
	)
	return jobs.NewJobManager(sweep)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}
