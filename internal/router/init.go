package router

import (
	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/internal/container"
	repo "github.com/oksasatya/style-gallery-api/internal/domain/repository"
	esinfra "github.com/oksasatya/style-gallery-api/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/style-gallery-api/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/style-gallery-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/style-gallery-api/internal/interface/http"
	"github.com/oksasatya/style-gallery-api/internal/router/modules"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
)

// Services are the application services built from the container.
type Services struct {
	Auth          *application.AuthService
	Social        *application.SocialService
	Designs       *application.DesignService
	Notifications *application.NotificationService
	Dispatcher    *application.Dispatcher
}

// buildServices wires repositories and optional infrastructure. Missing
// optional pieces stay nil interfaces so the services skip them.
func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()

	users := mongodb.NewUserRepository(db, logger)
	designs := mongodb.NewDesignRepository(db)
	notifications := mongodb.NewNotificationRepository(db)

	var audit repo.AuditRepository
	if pool := container.GetPGPool(); pool != nil {
		audit = pginfra.NewAuditRepository(pool)
	}
	var index application.DesignIndexer
	if es := container.GetES(); es != nil {
		index = esinfra.NewDesignIndex(es, cfg.ESDesignsIndex)
	}
	var images application.ImageStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		images = helpers.GCSImageStore{Client: gcs, Bucket: cfg.GCSBucket}
	}
	var queue application.JobPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		queue = pub
	}
	var sms application.SMSSender
	if cfg.SMSEnabled && queue != nil {
		sms = application.QueueSMSSender{Queue: queue}
	}

	notifSvc := application.NewNotificationService(notifications, users, queue, cfg.ClientURL, cfg.MailSendEnabled, logger)
	dispatcher := application.NewDispatcher(notifSvc, sms, logger, cfg.NotifyTimeout)
	container.SetDispatcher(dispatcher)

	return Services{
		Auth:          application.NewAuthService(users, container.GetJWT(), container.GetRedis(), logger),
		Social:        application.NewSocialService(users, designs, dispatcher, audit, index, logger),
		Designs:       application.NewDesignService(designs, users, images, index, logger),
		Notifications: notifSvc,
		Dispatcher:    dispatcher,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	RegisterServices(r, buildServices())
}

// RegisterServices adds every HTTP module backed by svc.
func RegisterServices(r *Registry, svc Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	rdb := container.GetRedis()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure), jwt, rdb))
	r.Add(modules.NewDesignModule(handlers.NewDesignHandler(svc.Social, svc.Designs, logger), jwt, rdb))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Social, svc.Auth, logger), jwt, rdb))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(svc.Notifications, logger), jwt, rdb))
	if cfg.MetricsEnabled {
		r.Add(modules.NewMetricsModule(rdb))
	}
}
