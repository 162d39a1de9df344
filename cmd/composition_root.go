package cmd

import (
	"log/slog"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Each Create* method
// hands out a ready handler; handlers are cheap and created per call site.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	signer     ports.CredentialSigner
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	signer ports.CredentialSigner,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		signer:     signer,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) sessionTTL() time.Duration {
	return time.Duration(c.config.GuestSessionTTLHours) * time.Hour
}

func (c *CompositionRoot) deliveryFee() kernel.Money {
	fee, err := kernel.NewMoneyFromCents(c.config.DeliveryFeeCents)
	if err != nil {
		panic("invalid delivery fee configuration: " + err.Error())
	}
	return fee
}

func (c *CompositionRoot) CreateCreateGuestSessionCommandHandler() commands.CreateGuestSessionCommandHandler {
	var f commands.CartSessionUoWFactory = FuncCartSessionUoWFactory(func() commands.CartSessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateGuestSessionCommandHandler(f, c.signer, c.sessionTTL())
}

func (c *CompositionRoot) CreateExtendSessionCommandHandler() commands.ExtendSessionCommandHandler {
	var f commands.CartSessionUoWFactory = FuncCartSessionUoWFactory(func() commands.CartSessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExtendSessionCommandHandler(f, c.signer)
}

func (c *CompositionRoot) CreateMigrateGuestCartCommandHandler() commands.MigrateGuestCartCommandHandler {
	var f commands.CartSessionUoWFactory = FuncCartSessionUoWFactory(func() commands.CartSessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMigrateGuestCartCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCleanupExpiredSessionsCommandHandler() commands.CleanupExpiredSessionsCommandHandler {
	var f commands.CartSessionUoWFactory = FuncCartSessionUoWFactory(func() commands.CartSessionUoW {
		return c.uowFactory.Create()
	})
	threshold := time.Duration(c.config.SessionInactivityHours) * time.Hour
	return commands.NewCleanupExpiredSessionsCommandHandler(f, threshold, c.logger)
}

func (c *CompositionRoot) CreateAddCartLineCommandHandler() commands.AddCartLineCommandHandler {
	return commands.NewAddCartLineCommandHandler(c.cartCatalogUoWFactory(), c.sessionTTL())
}

func (c *CompositionRoot) CreateUpdateCartLineCommandHandler() commands.UpdateCartLineCommandHandler {
	return commands.NewUpdateCartLineCommandHandler(c.cartCatalogUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartLineCommandHandler() commands.RemoveCartLineCommandHandler {
	return commands.NewRemoveCartLineCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearStoreLinesCommandHandler() commands.ClearStoreLinesCommandHandler {
	return commands.NewClearStoreLinesCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.publisher, c.deliveryFee(), c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeclineOrderCommandHandler() commands.DeclineOrderCommandHandler {
	return commands.NewDeclineOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdjustEstimateCommandHandler() commands.AdjustEstimateCommandHandler {
	return commands.NewAdjustEstimateCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	// Progress reads load the aggregate outside any transaction.
	return queries.NewGetOrderProgressQueryHandler(
		c.uowFactory.Create().OrderRepository(),
		services.NewProgressCalculator(),
	)
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartCatalogUoWFactory() commands.CartCatalogUoWFactory {
	return FuncCartCatalogUoWFactory(func() commands.CartCatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCartCatalogUoWFactory func() commands.CartCatalogUoW

func (f FuncCartCatalogUoWFactory) Create() commands.CartCatalogUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartSessionUoWFactory func() commands.CartSessionUoW

func (f FuncCartSessionUoWFactory) Create() commands.CartSessionUoW {
	return f()
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}
