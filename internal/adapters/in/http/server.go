// Package http exposes the marketplace use cases over a REST surface built
// on Echo. Handlers translate between JSON and commands/queries; all business
// decisions stay behind the application layer.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	signer ports.CredentialSigner

	createGuestSessionHandler commands.CreateGuestSessionCommandHandler
	extendSessionHandler      commands.ExtendSessionCommandHandler
	migrateGuestCartHandler   commands.MigrateGuestCartCommandHandler
	addCartLineHandler        commands.AddCartLineCommandHandler
	updateCartLineHandler     commands.UpdateCartLineCommandHandler
	removeCartLineHandler     commands.RemoveCartLineCommandHandler
	clearCartHandler          commands.ClearCartCommandHandler
	clearStoreLinesHandler    commands.ClearStoreLinesCommandHandler
	placeOrderHandler         commands.PlaceOrderCommandHandler
	transitionOrderHandler    commands.TransitionOrderCommandHandler
	declineOrderHandler       commands.DeclineOrderCommandHandler
	adjustEstimateHandler     commands.AdjustEstimateCommandHandler

	getCartHandler            queries.GetCartQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getOrderProgressHandler   queries.GetOrderProgressQueryHandler
	getOrderHistoryHandler    queries.GetOrderHistoryQueryHandler
}

// ServerParams carries every dependency of the HTTP server.
type ServerParams struct {
	Signer ports.CredentialSigner

	CreateGuestSessionHandler commands.CreateGuestSessionCommandHandler
	ExtendSessionHandler      commands.ExtendSessionCommandHandler
	MigrateGuestCartHandler   commands.MigrateGuestCartCommandHandler
	AddCartLineHandler        commands.AddCartLineCommandHandler
	UpdateCartLineHandler     commands.UpdateCartLineCommandHandler
	RemoveCartLineHandler     commands.RemoveCartLineCommandHandler
	ClearCartHandler          commands.ClearCartCommandHandler
	ClearStoreLinesHandler    commands.ClearStoreLinesCommandHandler
	PlaceOrderHandler         commands.PlaceOrderCommandHandler
	TransitionOrderHandler    commands.TransitionOrderCommandHandler
	DeclineOrderHandler       commands.DeclineOrderCommandHandler
	AdjustEstimateHandler     commands.AdjustEstimateCommandHandler

	GetCartHandler            queries.GetCartQueryHandler
	GetAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	GetOrderProgressHandler   queries.GetOrderProgressQueryHandler
	GetOrderHistoryHandler    queries.GetOrderHistoryQueryHandler
}

// NewServer creates the HTTP server from its handlers.
func NewServer(p ServerParams) *Server {
	return &Server{
		signer:                    p.Signer,
		createGuestSessionHandler: p.CreateGuestSessionHandler,
		extendSessionHandler:      p.ExtendSessionHandler,
		migrateGuestCartHandler:   p.MigrateGuestCartHandler,
		addCartLineHandler:        p.AddCartLineHandler,
		updateCartLineHandler:     p.UpdateCartLineHandler,
		removeCartLineHandler:     p.RemoveCartLineHandler,
		clearCartHandler:          p.ClearCartHandler,
		clearStoreLinesHandler:    p.ClearStoreLinesHandler,
		placeOrderHandler:         p.PlaceOrderHandler,
		transitionOrderHandler:    p.TransitionOrderHandler,
		declineOrderHandler:       p.DeclineOrderHandler,
		adjustEstimateHandler:     p.AdjustEstimateHandler,
		getCartHandler:            p.GetCartHandler,
		getAvailableOrdersHandler: p.GetAvailableOrdersHandler,
		getOrderProgressHandler:   p.GetOrderProgressHandler,
		getOrderHistoryHandler:    p.GetOrderHistoryHandler,
	}
}

// RegisterRoutes mounts every endpoint on the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/sessions", s.CreateGuestSession)
	v1.POST("/sessions/extension", s.ExtendSession)
	v1.POST("/sessions/migration", s.MigrateGuestCart)

	v1.GET("/cart", s.GetCart)
	v1.DELETE("/cart", s.ClearCart)
	v1.POST("/cart/lines", s.AddCartLine)
	v1.PUT("/cart/lines/:productID", s.UpdateCartLine)
	v1.DELETE("/cart/lines/:productID", s.RemoveCartLine)
	v1.DELETE("/cart/stores/:storeID/lines", s.ClearStoreLines)

	v1.POST("/orders", s.PlaceOrder)
	v1.GET("/orders/history", s.GetOrderHistory)
	v1.GET("/orders/available", s.GetAvailableOrders)
	v1.GET("/orders/:orderID/progress", s.GetOrderProgress)
	v1.POST("/orders/:orderID/transitions", s.TransitionOrder)
	v1.POST("/orders/:orderID/decline", s.DeclineOrder)
	v1.PATCH("/orders/:orderID/estimates", s.AdjustEstimate)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateGuestSession handles POST /api/v1/sessions - bootstraps an anonymous
// session with an empty cart and returns the signed credential.
func (s *Server) CreateGuestSession(ctx echo.Context) error {
	cmd, err := commands.NewCreateGuestSessionCommand(
		ctx.Request().UserAgent(),
		ctx.RealIP(),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createGuestSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, sessionResponse{
		SessionID:  result.SessionID.String(),
		CartID:     result.CartID.String(),
		Credential: result.Credential,
		ExpiresAt:  result.ExpiresAt,
	})
}

// ExtendSession handles POST /api/v1/sessions/extension - pushes the guest
// session's expiry forward and re-signs the credential.
func (s *Server) ExtendSession(ctx echo.Context) error {
	sessionID, err := s.resolveGuestSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req extendSessionRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewExtendSessionCommand(sessionID, req.Hours)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.extendSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, extendSessionResponse{
		Credential: result.Credential,
		ExpiresAt:  result.ExpiresAt,
	})
}

// MigrateGuestCart handles POST /api/v1/sessions/migration - folds the guest
// cart named by the bearer credential into the authenticated user's cart.
func (s *Server) MigrateGuestCart(ctx echo.Context) error {
	sessionID, err := s.resolveGuestSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("user id", err))
	}

	cmd, err := commands.NewMigrateGuestCartCommand(sessionID, userID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.migrateGuestCartHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, migrationResponse{
		CartID:      result.CartID.String(),
		MergedLines: result.MergedLines,
		AlreadyDone: result.AlreadyDone,
	})
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCartQuery(owner)
	if err != nil {
		return respondError(ctx, err)
	}

	cart, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	lines := make([]cartLineResponse, len(cart.Lines))
	for i, line := range cart.Lines {
		var catalogID *string
		if line.CatalogID != nil {
			v := line.CatalogID.String()
			catalogID = &v
		}
		lines[i] = cartLineResponse{
			ProductID: line.ProductID.String(),
			StoreID:   line.StoreID.String(),
			CatalogID: catalogID,
			Quantity:  line.Quantity,
			AddedAt:   line.AddedAt,
		}
	}

	return ctx.JSON(http.StatusOK, cartResponse{
		ID:        cart.ID.String(),
		Lines:     lines,
		UpdatedAt: cart.UpdatedAt,
		ExpiresAt: cart.ExpiresAt,
	})
}

// AddCartLine handles POST /api/v1/cart/lines.
func (s *Server) AddCartLine(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req addCartLineRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return respondError(ctx, err)
	}

	catalogID, err := optionalUUID(req.CatalogID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddCartLineCommand(owner, productID, catalogID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.addCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCartLine handles PUT /api/v1/cart/lines/:productID.
func (s *Server) UpdateCartLine(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productID"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateCartLineRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	catalogID, err := optionalUUID(req.CatalogID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateCartLineCommand(owner, productID, catalogID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartLine handles DELETE /api/v1/cart/lines/:productID.
func (s *Server) RemoveCartLine(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productID"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveCartLineCommand(owner, productID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.removeCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(owner)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.clearCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearStoreLines handles DELETE /api/v1/cart/stores/:storeID/lines.
func (s *Server) ClearStoreLines(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	storeID, err := kernel.UUIDFromString(ctx.Param("storeID"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewClearStoreLinesCommand(owner, storeID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.clearStoreLinesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req placeOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]commands.RequestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return respondError(ctx, itemErr)
		}
		items = append(items, commands.RequestedItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), owner, storeID, items, req.IsTakeout)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, placeOrderResponse{
		OrderID:     result.OrderID.String(),
		AmountCents: result.AmountCents,
		Status:      result.Status.String(),
	})
}

// TransitionOrder handles POST /api/v1/orders/:orderID/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	actor, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req transitionRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeclineOrder handles POST /api/v1/orders/:orderID/decline.
func (s *Server) DeclineOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	actor, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if actor.Role() != kernel.RoleDriver {
		return respondError(ctx, errs.NewForbiddenError(actor.ID().String(), "decline order"))
	}

	cmd, err := commands.NewDeclineOrderCommand(orderID, actor.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.declineOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdjustEstimate handles PATCH /api/v1/orders/:orderID/estimates.
func (s *Server) AdjustEstimate(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	actor, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req adjustEstimateRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	stage, err := order.StageFromString(req.Stage)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdjustEstimateCommand(orderID, actor, stage, req.At)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.adjustEstimateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableOrders handles GET /api/v1/orders/available - lists prepared
// delivery orders the calling driver may claim.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	actor, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if actor.Role() != kernel.RoleDriver {
		return respondError(ctx, errs.NewForbiddenError(actor.ID().String(), "list order offers"))
	}

	query, err := queries.NewGetAvailableOrdersQuery(actor.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]availableOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = availableOrderResponse{
			OrderID:     o.ID.String(),
			StoreID:     o.StoreID.String(),
			AmountCents: o.AmountCents,
			PlacedAt:    o.PlacedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderProgress handles GET /api/v1/orders/:orderID/progress.
func (s *Server) GetOrderProgress(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderProgressQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	progress, err := s.getOrderProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderProgressResponse{
		OrderID: progress.OrderID.String(),
		Status:  progress.Status,
		Preparation: stageProgressResponse{
			Percent:     progress.Progress.Preparation.Percent,
			MinutesLeft: progress.Progress.Preparation.MinutesLeft,
		},
		Pickup: stageProgressResponse{
			Percent:     progress.Progress.Pickup.Percent,
			MinutesLeft: progress.Progress.Pickup.MinutesLeft,
		},
		Delivery: stageProgressResponse{
			Percent:     progress.Progress.Delivery.Percent,
			MinutesLeft: progress.Progress.Delivery.MinutesLeft,
		},
	})
}

// GetOrderHistory handles GET /api/v1/orders/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	owner, err := s.resolveOwner(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(owner)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]orderHistoryItemResponse, len(orders))
	for i, o := range orders {
		response[i] = orderHistoryItemResponse{
			OrderID:     o.ID.String(),
			StoreID:     o.StoreID.String(),
			Status:      o.Status,
			AmountCents: o.AmountCents,
			IsTakeout:   o.IsTakeout,
			IsActive:    o.IsActive,
			PlacedAt:    o.PlacedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
