package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-service/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure/images"
	"github.com/DRSN-tech/catalog-service/internal/repository/imagestore"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/clients"
	"github.com/DRSN-tech/catalog-service/pkg/closer"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/DRSN-tech/catalog-service/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const shutdownTimeout = 10 * time.Second

// App связывает конфигурацию, хранилища, usecase и HTTP-сервер.
type App struct {
	cfg            *config.Config
	logger         logger.Logger
	httpSrv        *v1Http.Server
	closer         *closer.Closer
	shutdownCancel context.CancelFunc
}

// NewApp собирает приложение: подключение к PostgreSQL с миграциями,
// хранилище изображений по выбранному бэкенду, usecase каталога и роутер.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	// Контекст для фоновой очистки изображений, живёт до конца shutdown
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	db, err := initPGDB(log, cfg)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		log.Infof("database pool closed")
		return nil
	})

	imageRepo, err := initImageRepo(cfg)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imagesInfra := images.NewImagesInfrastructure(imageRepo, log, shutdownCtx)
	cl.Add(imagesInfra.WaitForCleanup)

	prConv := pgdbConv.NewProductConverterImpl()
	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	transactor := pgdb.NewTransactor(db.Pool)

	catalogUC := usecase.NewCatalogUC(productRepo, imagesInfra, transactor, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC, cfg.Storage)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(httpSrv.Stop)

	return &App{
		cfg:            cfg,
		logger:         log,
		httpSrv:        httpSrv,
		closer:         cl,
		shutdownCancel: shutdownCancel,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения или ошибки.
// Ресурсы закрываются в порядке LIFO: сервер, очистка изображений, пул БД.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("received shutdown signal, stopping gracefully...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer a.shutdownCancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	} else {
		a.logger.Infof("application shutdown complete")
	}

	return appErr
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		log.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// initImageRepo создает хранилище изображений по настроенному бэкенду.
func initImageRepo(cfg *config.Config) (usecase.ImageRepository, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendS3:
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := clients.EnsureBucket(ctx, minioClient, cfg.Minio.BucketName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		return imagestore.NewMinioImageRepo(minioClient, cfg.Minio), nil
	default:
		return imagestore.NewFSImageRepo(cfg.Storage)
	}
}
