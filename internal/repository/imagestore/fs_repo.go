package imagestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/jimlawless/whereami"
)

// FSImageRepo реализует хранилище изображений поверх локальной директории.
// Файлы доступны клиентам по публичному префиксу через раздачу статики.
type FSImageRepo struct {
	dir          string
	publicPrefix string
}

func NewFSImageRepo(cfg *cfg.StorageCfg) (*FSImageRepo, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &FSImageRepo{
		dir:          cfg.UploadDir,
		publicPrefix: cfg.PublicPrefix,
	}, nil
}

// Save синхронно записывает файл целиком и возвращает ключ объекта.
func (f *FSImageRepo) Save(_ context.Context, image *domain.Image) (string, error) {
	// ключ приводится к базовому имени, чтобы запись не вышла за пределы директории
	key := filepath.Base(image.ObjectKey)

	if err := os.WriteFile(filepath.Join(f.dir, key), image.Bytes, 0o644); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return key, nil
}

// Delete удаляет файл по ключу. Отсутствующий файл не является ошибкой.
func (f *FSImageRepo) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(f.dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// URL возвращает публичный путь, по которому файл раздаётся как статика.
func (f *FSImageRepo) URL(key string) string {
	return f.publicPrefix + "/" + key
}
