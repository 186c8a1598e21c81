package images_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure/images"
	"github.com/DRSN-tech/catalog-service/internal/repository/imagestore"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var objectKeyPattern = regexp.MustCompile(`^[0-9a-f]{32}_foo\.png$`)

func newInfra(t *testing.T) (*images.ImagesInfrastructure, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := imagestore.NewFSImageRepo(&cfg.StorageCfg{
		UploadDir:    dir,
		PublicPrefix: "/static/images",
	})
	require.NoError(t, err)

	return images.NewImagesInfrastructure(repo, logger.NewSlogLogger(), context.Background()), dir
}

func TestStoreImage_CollisionResistantName(t *testing.T) {
	infra, dir := newInfra(t)

	content := []byte("payload")
	res, err := infra.StoreImage(context.TODO(), usecase.NewStoreImageReq(
		*usecase.NewUpload(content, "image/png", int64(len(content)), "foo.png"),
	))
	require.NoError(t, err)

	assert.Regexp(t, objectKeyPattern, res.Key)
	assert.Equal(t, "/static/images/"+res.Key, res.URL)

	got, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestStoreImage_SameFilenameDoesNotCollide(t *testing.T) {
	infra, _ := newInfra(t)

	upload := *usecase.NewUpload([]byte("a"), "image/png", 1, "foo.png")

	first, err := infra.StoreImage(context.TODO(), usecase.NewStoreImageReq(upload))
	require.NoError(t, err)
	second, err := infra.StoreImage(context.TODO(), usecase.NewStoreImageReq(upload))
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestRemoveImage_MissingFileIsSuccess(t *testing.T) {
	infra, _ := newInfra(t)

	err := infra.RemoveImage(context.TODO(), "/static/images/no_such_file.png")
	require.NoError(t, err)
}

func TestRemoveImage_DeletesByPublicURL(t *testing.T) {
	infra, dir := newInfra(t)

	res, err := infra.StoreImage(context.TODO(), usecase.NewStoreImageReq(
		*usecase.NewUpload([]byte("x"), "image/png", 1, "foo.png"),
	))
	require.NoError(t, err)

	require.NoError(t, infra.RemoveImage(context.TODO(), res.URL))

	_, err = os.Stat(filepath.Join(dir, res.Key))
	require.True(t, os.IsNotExist(err))
}

func TestCleanupImages_RemovesKeysInBackground(t *testing.T) {
	infra, dir := newInfra(t)

	res, err := infra.StoreImage(context.TODO(), usecase.NewStoreImageReq(
		*usecase.NewUpload([]byte("x"), "image/png", 1, "foo.png"),
	))
	require.NoError(t, err)

	infra.CleanupImages([]string{res.Key})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, infra.WaitForCleanup(ctx))

	_, err = os.Stat(filepath.Join(dir, res.Key))
	require.True(t, os.IsNotExist(err))
}
