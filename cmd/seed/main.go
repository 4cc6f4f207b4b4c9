package main

import (
	"log"

	"haiku_backend/internal/model"
	"haiku_backend/pkg/config"
	"haiku_backend/pkg/database"
	"haiku_backend/pkg/seed"
)

func main() {
	cfg := config.Load()

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
		log.Fatal("Migration failed:", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatal("Seed failed:", err)
	}

	log.Println("Seed completed successfully!")
}
