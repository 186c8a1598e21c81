package main

import (
	"os"

	"github.com/DRSN-tech/catalog-service/internal/app"
	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

//	@title			Catalog Service API
//	@version		1.0
//	@description	CRUD-бэкенд каталога товаров с загрузкой изображений.
//	@BasePath		/
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
