package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// ItemParams holds the user-supplied fields for a new item report.
type ItemParams struct {
	Name        string
	Type        string
	Category    string
	Location    string
	Date        string
	Description string
	Image       string
}

// CreateItem inserts a new item report and returns it with its assigned ID.
func CreateItem(ctx context.Context, db *sql.DB, p ItemParams) (*model.Item, error) {
	var image any
	if p.Image != "" {
		image = p.Image
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, type, category, location, date, description, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Type, p.Category, p.Location, p.Date, p.Description, image,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if no such item exists.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, name, type, category, location, date, description, image, created_at
		 FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items in insertion order, optionally restricted to
// one report type.
func ListItems(ctx context.Context, db *sql.DB, typeFilter string) ([]model.Item, error) {
	var rows *sql.Rows
	var err error

	if typeFilter != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT id, name, type, category, location, date, description, image, created_at
			 FROM items WHERE type = ? ORDER BY id`, typeFilter,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT id, name, type, category, location, date, description, image, created_at
			 FROM items ORDER BY id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// FindMatches returns all candidate matches for an item: reports in the same
// category with the opposite type. A lost report matches found reports and
// vice versa, so an item never matches itself.
func FindMatches(ctx context.Context, db *sql.DB, item *model.Item) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, type, category, location, date, description, image, created_at
		 FROM items WHERE category = ? AND type != ? ORDER BY id`,
		item.Category, item.Type,
	)
	if err != nil {
		return nil, fmt.Errorf("finding matches: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var location, date, description, image sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Type, &item.Category,
		&location, &date, &description, &image, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	item.Location = location.String
	item.Date = date.String
	item.Description = description.String
	item.Image = image.String
	return item, nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
