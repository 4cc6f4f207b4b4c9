// Asigna íconos a los recursos existentes a partir de su título y
// descripción. Pensado para ejecutarse a mano tras importar recursos.
package main

import (
	"log"

	"haiku_backend/internal/model"
	"haiku_backend/pkg/config"
	"haiku_backend/pkg/database"
	"haiku_backend/pkg/utils/icon"
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

	var recursos []model.Recurso
	if err := db.Find(&recursos).Error; err != nil {
		log.Fatal("Could not fetch recursos:", err)
	}

	log.Printf("Encontrados %d recursos", len(recursos))

	for _, recurso := range recursos {
		newIcon := icon.Assign(recurso.Titulo, recurso.Descripcion)

		previo := "sin ícono"
		if recurso.Icono != nil {
			previo = "ya tenía: " + *recurso.Icono
		}

		if err := db.Model(&recurso).Update("icono", newIcon).Error; err != nil {
			log.Printf("Error updating %s: %v", recurso.Titulo, err)
			continue
		}

		log.Printf("%s -> %s (%s)", recurso.Titulo, newIcon, previo)
	}

	log.Println("Íconos asignados correctamente")
}
