package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/toomuch2learn/catalogue-service/internal/adapter/storage/migrations"
	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
)

const itemColumns = "id, sku_number, item_name, description, category, price, inventory, created_on, updated_on"

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// Migrate applies the embedded schema migrations. Running against an
// up-to-date database is a no-op.
func (m *MySQLAdapter) Migrate() error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	driver, err := migratemysql.WithInstance(m.db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return fmt.Errorf("migration instance: %w", err)
	}

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) FindAll(ctx context.Context) ([]domain.CatalogueItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM catalogue_items ORDER BY item_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CatalogueItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (m *MySQLAdapter) FindBySKU(ctx context.Context, sku string) (*domain.CatalogueItem, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM catalogue_items WHERE sku_number = ?`, sku)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

func (m *MySQLAdapter) Create(ctx context.Context, item domain.CatalogueItem) (int64, error) {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO catalogue_items (sku_number, item_name, description, category, price, inventory, created_on, updated_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.SKU, item.Name, item.Description, item.Category, item.Price,
		item.Inventory, item.CreatedOn, item.UpdatedOn,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (m *MySQLAdapter) Update(ctx context.Context, item domain.CatalogueItem) error {
	_, err := m.db.ExecContext(ctx, `
		UPDATE catalogue_items
		SET item_name = ?, description = ?, category = ?, price = ?, inventory = ?, updated_on = ?
		WHERE id = ?`,
		item.Name, item.Description, item.Category, item.Price,
		item.Inventory, item.UpdatedOn, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Delete(ctx context.Context, id int64) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM catalogue_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.CatalogueItem, error) {
	var item domain.CatalogueItem
	var updatedOn sql.NullTime
	err := row.Scan(
		&item.ID, &item.SKU, &item.Name, &item.Description, &item.Category,
		&item.Price, &item.Inventory, &item.CreatedOn, &updatedOn,
	)
	if err != nil {
		return nil, err
	}
	if updatedOn.Valid {
		t := updatedOn.Time
		item.UpdatedOn = &t
	}
	return &item, nil
}
