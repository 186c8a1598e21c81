package images

import (
	"context"
	"encoding/hex"
	"fmt"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/jitter"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/google/uuid"
)

// ImagesInfrastructure управляет записью, удалением и фоновой очисткой
// файлов изображений поверх выбранного хранилища.
type ImagesInfrastructure struct {
	imageRepo   usecase.ImageRepository
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewImagesInfrastructure(imageRepo usecase.ImageRepository, logger logger.Logger, shutdownCtx context.Context) *ImagesInfrastructure {
	return &ImagesInfrastructure{
		imageRepo:   imageRepo,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// StoreImage записывает файл под устойчивым к коллизиям именем:
// случайный токен в 128 бит плюс оригинальное имя файла через подчёркивание.
// Одинаковые оригинальные имена при этом не пересекаются без проверки занятости.
func (m *ImagesInfrastructure) StoreImage(ctx context.Context, req *usecase.StoreImageReq) (*usecase.StoreImageRes, error) {
	objectKey := objectKeyFor(req.Upload.Filename)

	image := domain.NewImage(objectKey, req.Upload.Data, req.Upload.Size, req.Upload.ContentType)

	key, err := m.imageRepo.Save(ctx, image)
	if err != nil {
		return nil, err
	}

	return usecase.NewStoreImageRes(key, m.imageRepo.URL(key)), nil
}

// RemoveImage удаляет файл, на который ссылается публичный URL.
// Отсутствие файла считается успешной очисткой.
func (m *ImagesInfrastructure) RemoveImage(ctx context.Context, imageURL string) error {
	return m.imageRepo.Delete(ctx, path.Base(imageURL))
}

// CleanupImages запускает фоновую очистку указанных ключей
func (m *ImagesInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupKeys(keys)
}

// cleanupKeys удаляет указанные объекты с экспоненциальной задержкой и jitter.
func (m *ImagesInfrastructure) cleanupKeys(keys []string) {
	defer m.wg.Done()
	const (
		op          = "ImagesInfrastructure.cleanupKeys"
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 10 * time.Second
	)
	m.logger.Infof("%s: cleaning up orphaned keys", op)

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if err := m.imageRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < maxAttempts-1 {
				sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)

				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения фоновых задач очистки с учётом таймаута завершения приложения.
func (m *ImagesInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("image cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

// objectKeyFor формирует имя объекта: <32 hex-символа>_<базовое имя файла>.
// Базовое имя отсекает возможные компоненты пути из клиентского имени файла.
func objectKeyFor(filename string) string {
	token := uuid.New()
	return fmt.Sprintf("%s_%s", hex.EncodeToString(token[:]), filepath.Base(filename))
}
