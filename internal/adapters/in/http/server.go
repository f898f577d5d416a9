package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server translates HTTP requests into use case calls. The caller identity
// always comes from the token, never from the body.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// PlaceBid handles POST /api/v1/buyer/bid.
func (s *Server) PlaceBid(c echo.Context) error {
	var req PlaceBidRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	productID, err := fromWireUUID("productId", req.ProductID)
	if err != nil {
		return err
	}
	price, err := kernel.MoneyFromMajor(req.BidPrice)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPlaceBidCommand(productID, actorOf(c).ID(), price)
	if err != nil {
		return err
	}

	result, err := s.handlers.PlaceBid.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := PlaceBidResponse{Bid: toBid(result.Bid)}
	if result.Order != nil {
		response.Order = &OrderBrief{
			ID:          result.Order.ID().Bytes(),
			Status:      result.Order.Status().String(),
			TotalAmount: result.Order.Total().Major(),
		}
	}
	return c.JSON(http.StatusCreated, response)
}

// RecordPayment handles POST /api/v1/buyer/payment.
func (s *Server) RecordPayment(c echo.Context) error {
	var req PaymentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := fromWireUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, actorOf(c).ID(), req.PaymentMethod)
	if err != nil {
		return err
	}

	o, err := s.handlers.RecordPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PaymentResponse{
		OrderID:       o.ID().Bytes(),
		Status:        o.Status().String(),
		Amount:        o.Total().Major(),
		PaymentMethod: string(o.PaymentMethod()),
	})
}

// ConfirmDelivery handles POST /api/v1/buyer/confirm-delivery.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	var req OrderRef
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := fromWireUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, actorOf(c).ID())
	if err != nil {
		return err
	}

	o, err := s.handlers.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, OrderStatus{OrderID: o.ID().Bytes(), Status: o.Status().String()})
}

// GetBuyerOrders handles GET /api/v1/buyer/orders.
func (s *Server) GetBuyerOrders(c echo.Context) error {
	query, err := queries.NewGetBuyerOrdersQuery(actorOf(c).ID())
	if err != nil {
		return err
	}

	summaries, err := s.handlers.BuyerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]OrderSummary, len(summaries))
	for i, summary := range summaries {
		response[i] = toOrderSummary(summary)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrderSummary handles GET /api/v1/buyer/orders/{orderId}.
func (s *Server) GetOrderSummary(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID, actorOf(c).ID())
	if err != nil {
		return err
	}

	summary, err := s.handlers.OrderSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderSummary(summary))
}

// VerifyPickup handles POST /api/v1/seller/verify-pickup.
func (s *Server) VerifyPickup(c echo.Context) error {
	var req VerifyPickupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := fromWireUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewVerifyPickupCommand(orderID, actorOf(c).ID(), req.OTP)
	if err != nil {
		return err
	}

	o, err := s.handlers.VerifyPickup.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, OrderStatus{OrderID: o.ID().Bytes(), Status: o.Status().String()})
}

// RegisterProduct handles POST /api/v1/seller/products.
func (s *Server) RegisterProduct(c echo.Context) error {
	var req RegisterProductRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ask, err := kernel.MoneyFromMajor(req.AskPrice)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterProductCommand(actorOf(c).ID(), req.ProductType, req.Quantity, ask)
	if err != nil {
		return err
	}

	p, err := s.handlers.RegisterProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProduct(p))
}

// SetSellerLocation handles PUT /api/v1/seller/location.
func (s *Server) SetSellerLocation(c echo.Context) error {
	var req LocationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetSellerLocationCommand(actorOf(c).ID(), req.Coordinates)
	if err != nil {
		return err
	}

	if err = s.handlers.SetSellerLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LocationResponse{Location: toPoint(cmd.Location())})
}

// GetSellerDashboard handles GET /api/v1/seller/dashboard.
func (s *Server) GetSellerDashboard(c echo.Context) error {
	query, err := queries.NewGetSellerDashboardQuery(actorOf(c).ID())
	if err != nil {
		return err
	}

	dashboard, err := s.handlers.SellerDashboard.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := SellerDashboard{
		Stock:          make([]StockLine, len(dashboard.Stock)),
		OrdersByStatus: make([]StatusCount, len(dashboard.OrdersByStatus)),
	}
	for i, line := range dashboard.Stock {
		response.Stock[i] = StockLine(line)
	}
	for i, count := range dashboard.OrdersByStatus {
		response.OrdersByStatus[i] = StatusCount(count)
	}
	return c.JSON(http.StatusOK, response)
}

// FindNearbySellers handles GET /api/v1/buyer/nearby-sellers.
func (s *Server) FindNearbySellers(c echo.Context) error {
	var params FindNearbySellersParams
	if err := errors.Join(
		runtime.BindQueryParameter("form", true, true, "lng", c.QueryParams(), &params.Lng),
		runtime.BindQueryParameter("form", true, true, "lat", c.QueryParams(), &params.Lat),
		runtime.BindQueryParameter("form", true, false, "radius", c.QueryParams(), &params.Radius),
	); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("query", err)
	}

	center, err := kernel.NewLocation(params.Lng, params.Lat)
	if err != nil {
		return err
	}

	var radius float64
	if params.Radius != nil {
		radius = *params.Radius
	}

	query, err := queries.NewFindNearbySellersQuery(center, radius)
	if err != nil {
		return err
	}

	sellers, err := s.handlers.NearbySellers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]NearbySeller, 0, len(sellers))
	for _, seller := range sellers {
		response = append(response, NearbySeller{
			SellerID: seller.SellerID.Bytes(),
			Location: seller.Location.Pair(),
			Distance: seller.DistanceMeters,
		})
	}
	return c.JSON(http.StatusOK, response)
}

// FindNearbyOrders handles GET /api/v1/agent/nearby-orders.
func (s *Server) FindNearbyOrders(c echo.Context) error {
	var params FindNearbyOrdersParams
	err := runtime.BindQueryParameter("form", true, false, "radius", c.QueryParams(), &params.Radius)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("radius", err)
	}

	var radius float64
	if params.Radius != nil {
		radius = *params.Radius
	}

	query, err := queries.NewFindNearbyOrdersQuery(actorOf(c).ID(), radius)
	if err != nil {
		return err
	}

	seq, err := s.handlers.NearbyOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]NearbyOrder, 0)
	for nearby, err := range seq {
		if err != nil {
			return err
		}
		response = append(response, NearbyOrder{
			OrderID:        nearby.OrderID.Bytes(),
			SellerID:       nearby.SellerID.Bytes(),
			ProductType:    nearby.ProductType,
			Quantity:       nearby.Quantity,
			PickupLocation: nearby.PickupLocation.Pair(),
			Distance:       nearby.DistanceMeters,
		})
	}
	return c.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/agent/accept-order.
func (s *Server) AcceptOrder(c echo.Context) error {
	var req OrderRef
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := fromWireUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimOrderCommand(actorOf(c).ID(), orderID)
	if err != nil {
		return err
	}

	result, err := s.handlers.ClaimOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := AcceptOrderResponse{OrderID: result.OrderID.Bytes()}
	if result.PickupCode != nil {
		response.PickupCode = result.PickupCode.Value()
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateAgentLocation handles PUT /api/v1/agent/location.
func (s *Server) UpdateAgentLocation(c echo.Context) error {
	var req LocationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateAgentLocationCommand(actorOf(c).ID(), req.Coordinates)
	if err != nil {
		return err
	}

	a, err := s.handlers.UpdateAgentLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	location := cmd.Location()
	if a.Location() != nil {
		location = *a.Location()
	}
	return c.JSON(http.StatusOK, LocationResponse{Location: toPoint(location)})
}

// MarkAgentAvailable handles PUT /api/v1/agent/available.
func (s *Server) MarkAgentAvailable(c echo.Context) error {
	cmd, err := commands.NewMarkAgentAvailableCommand(actorOf(c).ID())
	if err != nil {
		return err
	}

	a, err := s.handlers.MarkAgentAvailable.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AgentAvailability{AgentID: a.ID().Bytes(), IsAvailable: a.IsAvailable()})
}

func bindBody(c echo.Context, target any) error {
	if err := c.Bind(target); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func fromWireUUID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return converted, nil
}
