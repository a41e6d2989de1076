package router

import (
	"github.com/DonOmbisi/kilimo3/internal/application"
	"github.com/DonOmbisi/kilimo3/internal/container"
	pginfra "github.com/DonOmbisi/kilimo3/internal/infrastructure/postgres"
	handlers "github.com/DonOmbisi/kilimo3/internal/interface/http"
	"github.com/DonOmbisi/kilimo3/internal/router/modules"
)

// InitModules wires every feature module from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()
	pub := container.GetRabbitPub()

	userRepo := pginfra.NewUserRepository(pool)
	listingRepo := pginfra.NewListingRepository(pool)
	orderRepo := pginfra.NewOrderRepository(pool)
	fundraiserRepo := pginfra.NewFundraiserRepository(pool)
	blogRepo := pginfra.NewBlogRepository(pool)

	userSvc := application.NewUserService(userRepo, jwt, container.GetRedis(), pub, logger)
	listingSvc := application.NewListingService(listingRepo, container.GetGCS(), cfg.GCSBucket, pub, container.GetES(), cfg.ESListingsIndex, logger)
	orderSvc := application.NewOrderService(orderRepo, listingRepo, pub, logger)
	fundraiserSvc := application.NewFundraiserService(fundraiserRepo, pub, logger)
	blogSvc := application.NewBlogService(blogRepo, pub, logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewListingModule(handlers.NewListingHandler(listingSvc, logger), jwt))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), jwt))
	r.Add(modules.NewFundraiserModule(handlers.NewFundraiserHandler(fundraiserSvc, logger), jwt))
	r.Add(modules.NewBlogModule(handlers.NewBlogHandler(blogSvc, logger), jwt))
	r.Add(modules.NewHealthModule())
}
