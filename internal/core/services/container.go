package services

import (
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Product = NewProductService(repos.ProductRepo, repos.CategoryRepo)
	container.Sale = NewSaleService(repos.SaleRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
