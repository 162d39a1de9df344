package main

import (
	"fmt"
	"log/slog"
	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/amqp"
	"marketplace/internal/adapters/out/jwtcreds"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/sessionrepo"
	"marketplace/internal/jobs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	signer, err := jwtcreds.NewSigner(configs.CredentialSecret)
	if err != nil {
		log.Fatalf("Error creating credential signer: %v", err)
	}

	publisher, err := amqp.NewPublisher(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, signer, publisher, logger)

	jobManager := jobs.NewJobManager(
		app.CreateCleanupExpiredSessionsCommandHandler(),
		configs.CleanupSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, signer, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:                goDotEnvVariable("AMQP_URL"),
		CredentialSecret:       goDotEnvVariable("CREDENTIAL_SECRET"),
		GuestSessionTTLHours:   goDotEnvIntVariable("GUEST_SESSION_TTL_HOURS"),
		SessionInactivityHours: goDotEnvIntVariable("SESSION_INACTIVITY_HOURS"),
		CleanupSchedule:        goDotEnvVariable("CLEANUP_SCHEDULE"),
		DeliveryFeeCents:       int64(goDotEnvIntVariable("DELIVERY_FEE_CENTS")),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s as integer: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&sessionrepo.SessionDTO{},
		&cartrepo.CartDTO{},
		&orderrepo.OrderDTO{},
		&productrepo.ProductDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, signer *jwtcreds.Signer, port string) {
	server := httpin.NewServer(httpin.ServerParams{
		Signer: signer,

		CreateGuestSessionHandler: app.CreateCreateGuestSessionCommandHandler(),
		ExtendSessionHandler:      app.CreateExtendSessionCommandHandler(),
		MigrateGuestCartHandler:   app.CreateMigrateGuestCartCommandHandler(),
		AddCartLineHandler:        app.CreateAddCartLineCommandHandler(),
		UpdateCartLineHandler:     app.CreateUpdateCartLineCommandHandler(),
		RemoveCartLineHandler:     app.CreateRemoveCartLineCommandHandler(),
		ClearCartHandler:          app.CreateClearCartCommandHandler(),
		ClearStoreLinesHandler:    app.CreateClearStoreLinesCommandHandler(),
		PlaceOrderHandler:         app.CreatePlaceOrderCommandHandler(),
		TransitionOrderHandler:    app.CreateTransitionOrderCommandHandler(),
		DeclineOrderHandler:       app.CreateDeclineOrderCommandHandler(),
		AdjustEstimateHandler:     app.CreateAdjustEstimateCommandHandler(),

		GetCartHandler:            app.CreateGetCartQueryHandler(),
		GetAvailableOrdersHandler: app.CreateGetAvailableOrdersQueryHandler(),
		GetOrderProgressHandler:   app.CreateGetOrderProgressQueryHandler(),
		GetOrderHistoryHandler:    app.CreateGetOrderHistoryQueryHandler(),
	})

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
