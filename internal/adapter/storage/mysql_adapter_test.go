package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
)

func getMySQLAdapter(t *testing.T) *MySQLAdapter {
	t.Helper()
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/catalogue?parseTime=true&multiStatements=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	adapter := NewMySQLAdapter(db)
	require.NoError(t, adapter.Migrate())
	return adapter
}

func storedItem(sku string) domain.CatalogueItem {
	return domain.CatalogueItem{
		SKU:         sku,
		Name:        "Item Name",
		Description: "Item Desc",
		Category:    domain.CategoryBooks,
		Price:       100.0,
		Inventory:   10,
		CreatedOn:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestMySQLAdapter_CreateAndFindBySKU(t *testing.T) {
	adapter := getMySQLAdapter(t)
	ctx := context.Background()

	item := storedItem("test-" + uuid.NewString())
	id, err := adapter.Create(ctx, item)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))
	t.Cleanup(func() { adapter.Delete(ctx, id) })

	got, err := adapter.FindBySKU(ctx, item.SKU)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, item.SKU, got.SKU)
	assert.Equal(t, item.Name, got.Name)
	assert.Equal(t, item.Description, got.Description)
	assert.Equal(t, item.Category, got.Category)
	assert.Equal(t, item.Price, got.Price)
	assert.Equal(t, item.Inventory, got.Inventory)
	assert.True(t, got.CreatedOn.Equal(item.CreatedOn))
	assert.Nil(t, got.UpdatedOn)
}

func TestMySQLAdapter_FindBySKU_Absent(t *testing.T) {
	adapter := getMySQLAdapter(t)

	got, err := adapter.FindBySKU(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMySQLAdapter_Update(t *testing.T) {
	adapter := getMySQLAdapter(t)
	ctx := context.Background()

	item := storedItem("test-" + uuid.NewString())
	id, err := adapter.Create(ctx, item)
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Delete(ctx, id) })

	item.ID = id
	item.Name = "Renamed"
	item.Price = 42.5
	item.Inventory = 3
	now := time.Now().UTC().Truncate(time.Microsecond)
	item.UpdatedOn = &now
	require.NoError(t, adapter.Update(ctx, item))

	got, err := adapter.FindBySKU(ctx, item.SKU)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 42.5, got.Price)
	assert.Equal(t, 3, got.Inventory)
	require.NotNil(t, got.UpdatedOn)
	assert.True(t, got.UpdatedOn.Equal(now))
}

func TestMySQLAdapter_Delete(t *testing.T) {
	adapter := getMySQLAdapter(t)
	ctx := context.Background()

	item := storedItem("test-" + uuid.NewString())
	id, err := adapter.Create(ctx, item)
	require.NoError(t, err)

	require.NoError(t, adapter.Delete(ctx, id))

	got, err := adapter.FindBySKU(ctx, item.SKU)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMySQLAdapter_FindAllSortedByName(t *testing.T) {
	adapter := getMySQLAdapter(t)
	ctx := context.Background()

	suffix := uuid.NewString()
	names := []string{"zz-" + suffix, "aa-" + suffix, "mm-" + suffix}
	for _, name := range names {
		item := storedItem("test-" + uuid.NewString())
		item.Name = name
		id, err := adapter.Create(ctx, item)
		require.NoError(t, err)
		t.Cleanup(func() { adapter.Delete(ctx, id) })
	}

	items, err := adapter.FindAll(ctx)
	require.NoError(t, err)

	var seen []string
	for _, it := range items {
		for _, name := range names {
			if it.Name == name {
				seen = append(seen, it.Name)
			}
		}
	}
	require.Len(t, seen, 3)
	assert.Equal(t, []string{"aa-" + suffix, "mm-" + suffix, "zz-" + suffix}, seen)
}
