package http

import (
	"net/http"

	_ "github.com/DRSN-tech/catalog-service/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, storage *cfg.StorageCfg) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	prHandler := NewProductHandler(catalogUC, storage, r.logger)

	r.router.Get("/", prHandler.holaMundo)
	registerProductRoutes(r.router, prHandler)

	// Раздача изображений как статики при файловом бэкенде
	if storage.Backend == cfg.StorageBackendFS {
		registerStaticRoutes(r.router, storage)
	}
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/productos", func(pr chi.Router) {
		pr.Get("/", prHandler.listProductos)
		pr.Post("/", prHandler.createProducto)
		pr.Route("/{id}", func(id chi.Router) {
			id.Get("/", prHandler.getProducto)
			id.Put("/", prHandler.updateProducto)
			id.Delete("/", prHandler.deleteProducto)
		})
	})
}

func registerStaticRoutes(router chi.Router, storage *cfg.StorageCfg) {
	fileServer := http.StripPrefix(storage.PublicPrefix, http.FileServer(http.Dir(storage.UploadDir)))
	router.Get(storage.PublicPrefix+"/*", fileServer.ServeHTTP)
}
