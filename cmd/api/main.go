package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"haiku_backend/internal/controller"
	"haiku_backend/internal/middleware"
	"haiku_backend/internal/model"
	"haiku_backend/pkg/config"
	croninit "haiku_backend/pkg/cron"
	"haiku_backend/pkg/database"
	"haiku_backend/pkg/email"
	"haiku_backend/pkg/utils/jwt"
	"haiku_backend/pkg/utils/storage"
)

type controllers struct {
	auth    *controller.AuthController
	lead    *controller.LeadController
	contact *controller.ContactController
	recurso *controller.RecursoController
	stats   *controller.StatsController
	youtube *controller.YouTubeController
}

func setupRoutes(app *fiber.App, ct controllers) {
	api := app.Group("/api")

	// Embudo público
	api.Post("/leads", ct.lead.CreateLead)
	api.Post("/contact", ct.contact.CreateContact)
	api.Get("/youtube", ct.youtube.GetVideos)
	api.Get("/recursos", ct.recurso.ListRecursosPublicos)

	// Landing pública de cada recurso
	app.Get("/r/:slug", ct.recurso.GetRecursoBySlug)

	// Panel de admin
	admin := api.Group("/admin")
	admin.Post("/auth/login", ct.auth.Login)

	protected := admin.Use(middleware.AuthMiddleware())
	protected.Get("/recursos", ct.recurso.ListRecursos)
	protected.Post("/recursos", ct.recurso.CreateRecurso)
	protected.Post("/recursos/upload", ct.recurso.UploadAsset)
	protected.Put("/recursos/:id", ct.recurso.UpdateRecurso)
	protected.Patch("/recursos/:id", ct.recurso.ToggleActivo)
	protected.Delete("/recursos/:id", ct.recurso.DeleteRecurso)

	protected.Get("/leads", ct.lead.GetLeads)
	protected.Get("/leads/export", ct.lead.ExportLeads)
	protected.Post("/leads/email", ct.lead.SendBulkEmail)

	protected.Get("/contactos", ct.contact.GetContactos)
	protected.Patch("/contactos", ct.contact.UpdateContacto)

	protected.Get("/stats", ct.stats.GetStats)
}

func main() {
	cfg := config.Load()

	jwt.Init(cfg.JWT.Secret)

	emailService, err := email.NewService(cfg.Email.ResendAPIKey, cfg.Email.FromEmail)
	if err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	err = database.Migrate(db,
		&model.User{},
		&model.Recurso{},
		&model.Lead{},
		&model.Contacto{},
		&model.EmailLog{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	var s3 *storage.S3Storage
	if cfg.Storage.Bucket != "" {
		s3, err = storage.New(context.Background(), cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			log.Printf("Could not initialize storage, uploads disabled: %v", err)
			s3 = nil
		}
	}

	ct := controllers{
		auth:    controller.NewAuthController(db),
		lead:    controller.NewLeadController(db, emailService),
		contact: controller.NewContactController(db, emailService, cfg.Email.AdminEmail),
		recurso: controller.NewRecursoController(db, s3),
		stats:   controller.NewStatsController(db),
		youtube: controller.NewYouTubeController(cfg.YouTube.APIKey, cfg.YouTube.ChannelID),
	}

	croninit.InitDailyStatsCron(db, emailService, cfg.Email.AdminEmail)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, ct)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
