package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"vitrine_server/config"
	"vitrine_server/database"
	"vitrine_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// downConnector fails every connection attempt, so any statement or
// transaction against the database errors out immediately.
type downConnector struct{}

func (downConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("database unavailable")
}

func (downConnector) Driver() driver.Driver { return downDriver{} }

type downDriver struct{}

func (downDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("database unavailable")
}

func newUnavailableDB() *database.DB {
	sqldb := sql.OpenDB(downConnector{})
	return &database.DB{DB: bun.NewDB(sqldb, pgdialect.New())}
}

func newTestProductService(store *fakeStore) *ProductService {
	logger := testLogger()
	return NewProductService(logger, newUnavailableDB(), store, NewCacheService(logger, config.GetConfig()))
}

func TestCreateProductStoreFailureCleansEarlierUploads(t *testing.T) {
	store := newFakeStore()
	store.failAfter = 1 // primary succeeds, the first secondary fails

	files := multipartFiles(t, "main.jpg", "side.jpg")
	ps := newTestProductService(store)

	_, err := ps.Create(context.Background(), &ProductCreateInput{
		Name:           "Chair",
		Price:          10,
		PrimaryFile:    files[0],
		SecondaryFiles: files[1:],
		CreatedBy:      1,
	})

	require.Error(t, err)
	assert.Empty(t, store.blobs, "the successfully written primary is removed again")
}

func TestCreateProductPersistFailureCleansAllUploads(t *testing.T) {
	store := newFakeStore()
	files := multipartFiles(t, "main.jpg", "side.jpg")
	ps := newTestProductService(store)

	_, err := ps.Create(context.Background(), &ProductCreateInput{
		Name:           "Chair",
		Price:          10,
		PrimaryFile:    files[0],
		SecondaryFiles: files[1:],
		CreatedBy:      1,
	})

	require.Error(t, err)
	assert.Empty(t, store.blobs, "every blob of the failed request is removed")
}

func TestUpdateProductPersistFailureKeepsRemovedBlobs(t *testing.T) {
	store := newFakeStore()
	store.blobs["products/secondary/keep.jpg"] = true
	store.blobs["products/secondary/drop.jpg"] = true

	files := multipartFiles(t, "new.jpg")
	ps := newTestProductService(store)

	current := &tables.Product{
		ID:              7,
		Name:            "Chair",
		SecondaryImages: []string{"products/secondary/keep.jpg", "products/secondary/drop.jpg"},
	}
	input := &ProductUpdateInput{
		SecondaryFiles:     files,
		ExistingSecondary:  []string{"products/secondary/keep.jpg"},
		SecondarySubmitted: true,
	}

	pending := &pendingUploads{}
	_, _, err := ps.update(context.Background(), current, input, pending)
	require.Error(t, err)

	pending.cleanup(store, ps.logger)

	assert.True(t, store.Exists("products/secondary/drop.jpg"),
		"dropped blobs survive a failed update, deletion only happens after commit")
	assert.True(t, store.Exists("products/secondary/keep.jpg"))
	assert.Len(t, store.blobs, 2, "the new upload was cleaned up")
}
