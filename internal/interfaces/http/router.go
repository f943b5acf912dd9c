package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Gerotto1967/gestao-api/internal/application/analytics"
	"github.com/Gerotto1967/gestao-api/internal/application/auth"
	"github.com/Gerotto1967/gestao-api/internal/application/finance"
	"github.com/Gerotto1967/gestao-api/internal/application/invoicing"
	"github.com/Gerotto1967/gestao-api/internal/application/marketplace"
	"github.com/Gerotto1967/gestao-api/internal/application/stock"
	"github.com/Gerotto1967/gestao-api/internal/application/usecase"
	"github.com/Gerotto1967/gestao-api/internal/domain/repository"
	"github.com/Gerotto1967/gestao-api/internal/infrastructure/nfe"
	"github.com/Gerotto1967/gestao-api/internal/infrastructure/pdf"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	CustomerUC    *usecase.CustomerUseCase
	BankAccountUC *usecase.BankAccountUseCase
	Ledger        *stock.Ledger
	Pipeline      *invoicing.Pipeline
	Gateway       *marketplace.Gateway
	Engine        *finance.Engine
	DashboardUC   *analytics.DashboardUseCase
	AuthUC        *auth.AuthUseCase
	CompanyRepo   repository.CompanyRepository
	NFeParser     *nfe.Parser
	PDFGen        *pdf.ReportGenerator
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Empresas do grupo
	companies := protected.Group("/empresas")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Catálogo de produtos
	products := protected.Group("/produtos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Fornecedores e clientes
	suppliers := protected.Group("/fornecedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Contas bancárias
	banks := protected.Group("/contas-banco")
	bankHandler := NewBankAccountHandler(deps.BankAccountUC)
	banks.Post("/", bankHandler.Create)
	banks.Get("/", bankHandler.List)
	banks.Put("/:id", bankHandler.Update)

	// Console de estoque
	stockGroup := protected.Group("/estoque")
	stockHandler := NewStockHandler(deps.Ledger, deps.CompanyRepo, deps.ProductUC)
	stockGroup.Post("/ajuste", stockHandler.Adjust)
	stockGroup.Get("/posicoes", stockHandler.Positions)
	stockGroup.Get("/consolidado/:product_id", stockHandler.Consolidated)
	stockGroup.Get("/movimentos", stockHandler.Movements)
	stockGroup.Get("/consistencia", stockHandler.CheckConsistency)

	// Notas fiscais de entrada
	xml := protected.Group("/xml")
	invoiceHandler := NewInvoiceHandler(deps.Pipeline, deps.NFeParser, deps.CompanyRepo)
	xml.Post("/upload", invoiceHandler.Upload)
	xml.Get("/", invoiceHandler.List)
	xml.Get("/:id", invoiceHandler.GetByID)
	xml.Post("/:id/processar", invoiceHandler.Process)
	xml.Delete("/:id", invoiceHandler.Discard)

	// Integração com o marketplace
	upseller := protected.Group("/upseller")
	upsellerHandler := NewUpsellerHandler(deps.Gateway)
	upseller.Get("/estoque", upsellerHandler.ExportCatalog)
	upseller.Post("/venda", upsellerHandler.ImportSale)

	// Financeiro
	financeGroup := protected.Group("/financeiro")
	financeHandler := NewFinanceHandler(deps.Engine, deps.PDFGen)
	financeGroup.Get("/", financeHandler.List)
	financeGroup.Post("/", financeHandler.Post)
	financeGroup.Get("/relatorio", financeHandler.Report)
	financeGroup.Get("/relatorio/pdf", financeHandler.ReportPDF)
	financeGroup.Get("/historico", financeHandler.History)
	financeGroup.Post("/:id/pagar", financeHandler.Settle)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
