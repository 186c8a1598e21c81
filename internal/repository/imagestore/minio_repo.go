package imagestore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// MinioImageRepo реализует хранилище изображений поверх MinIO.
type MinioImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewMinioImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *MinioImageRepo {
	return &MinioImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Save загружает изображение в MinIO и возвращает ключ объекта.
func (m *MinioImageRepo) Save(ctx context.Context, image *domain.Image) (string, error) {
	reader := bytes.NewReader(image.Bytes)

	info, err := m.mc.PutObject(ctx, m.cfg.BucketName, image.ObjectKey, reader, image.Size, minio.PutObjectOptions{
		ContentType: image.ContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
// Отсутствующий объект MinIO удаляет без ошибки.
func (m *MinioImageRepo) Delete(ctx context.Context, key string) error {
	if err := m.mc.RemoveObject(ctx, m.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// URL возвращает публичный адрес объекта в бакете.
func (m *MinioImageRepo) URL(key string) string {
	scheme := "http"
	if m.cfg.MinioUseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.MinioEndpoint, m.cfg.BucketName, key)
}
