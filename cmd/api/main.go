package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Gerotto1967/gestao-api/internal/application/analytics"
	"github.com/Gerotto1967/gestao-api/internal/application/auth"
	"github.com/Gerotto1967/gestao-api/internal/application/finance"
	"github.com/Gerotto1967/gestao-api/internal/application/invoicing"
	"github.com/Gerotto1967/gestao-api/internal/application/marketplace"
	appstock "github.com/Gerotto1967/gestao-api/internal/application/stock"
	"github.com/Gerotto1967/gestao-api/internal/application/usecase"
	"github.com/Gerotto1967/gestao-api/internal/infrastructure/nfe"
	infrapdf "github.com/Gerotto1967/gestao-api/internal/infrastructure/pdf"
	"github.com/Gerotto1967/gestao-api/internal/infrastructure/postgres"
	httpRouter "github.com/Gerotto1967/gestao-api/internal/interfaces/http"
	"github.com/Gerotto1967/gestao-api/pkg/config"
	"github.com/Gerotto1967/gestao-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Env)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	positionRepo := postgres.NewStockPositionRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	entryRepo := postgres.NewAccountEntryRepository(pool)
	bankRepo := postgres.NewBankAccountRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := appstock.NewLedger(txRunner, positionRepo, movementRepo)
	pipeline := invoicing.NewPipeline(txRunner, companyRepo, invoiceRepo, invoicing.Config{
		AutoCreateProducts: cfg.Ingest.AutoCreateProducts,
	})
	gateway := marketplace.NewGateway(txRunner, ledger, productRepo, companyRepo, saleRepo)
	engine := finance.NewEngine(txRunner, entryRepo, bankRepo, positionRepo)
	dashboardUC := analytics.NewDashboardUseCase(customerRepo, supplierRepo, productRepo, analyticsRepo, engine)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	bankAccountUC := usecase.NewBankAccountUseCase(bankRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	nfeParser := nfe.NewParser(cfg.Ingest.HomeState)
	pdfGen := infrapdf.NewReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestão API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		ProductUC:     productUC,
		SupplierUC:    supplierUC,
		CustomerUC:    customerUC,
		BankAccountUC: bankAccountUC,
		Ledger:        ledger,
		Pipeline:      pipeline,
		Gateway:       gateway,
		Engine:        engine,
		DashboardUC:   dashboardUC,
		AuthUC:        authUC,
		CompanyRepo:   companyRepo,
		NFeParser:     nfeParser,
		PDFGen:        pdfGen,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
