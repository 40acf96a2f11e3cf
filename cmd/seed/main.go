package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"notehub-be/internal/config"
	"notehub-be/internal/model"
	"notehub-be/pkg/database"

	"gorm.io/gorm"
)

var defaultSchools = []string{
	"Massachusetts Institute of Technology",
	"Stanford University",
	"University of California, Berkeley",
	"Harvard University",
	"Carnegie Mellon University",
}

func main() {
	names := flag.String("schools", "", "comma separated school names (defaults to a demo list)")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	schools := defaultSchools
	if *names != "" {
		schools = strings.Split(*names, ",")
	}

	log.Println("Seeding schools...")
	for _, name := range schools {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var existing model.School
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			log.Printf("School '%s' already exists, skipping...", name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Error looking up school '%s': %v", name, err)
		}

		if err := db.Create(&model.School{Name: name}).Error; err != nil {
			log.Printf("Error creating school '%s': %v", name, err)
		} else {
			log.Printf("Created school: %s", name)
		}
	}

	log.Println("School seeding completed!")
}
