package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// LOAD CATALOG (STARTUP ONLY, READ-ONLY AFTERWARDS)
// --------------------------------------------------
func (r *PostgresRepository) Load(ctx context.Context) (*Catalog, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	items, index, err := loadItems(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := loadModifiers(ctx, tx, items, index); err != nil {
		return nil, err
	}

	categories, err := loadCategories(ctx, tx)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errors.New("menu_items table is empty")
	}

	return New(items, categories)
}

func loadItems(ctx context.Context, tx pgx.Tx) ([]Item, map[string]int, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, name, category, base_price::text, description, available
		FROM menu_items
		ORDER BY position, id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("query menu_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	index := map[string]int{}

	for rows.Next() {
		var (
			item  Item
			price string
		)
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&price,
			&item.Description,
			&item.Available,
		); err != nil {
			return nil, nil, err
		}

		item.BasePrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, nil, fmt.Errorf("item %q: invalid base_price %q", item.ID, price)
		}
		item.Modifiers = Modifiers{Required: []ModifierGroup{}, Optional: []ModifierGroup{}}

		index[item.ID] = len(items)
		items = append(items, item)
	}

	return items, index, rows.Err()
}

func loadModifiers(ctx context.Context, tx pgx.Tx, items []Item, index map[string]int) error {
	rows, err := tx.Query(ctx, `
		SELECT
			g.item_id,
			g.id,
			g.name,
			g.required,
			g.max_selections,
			o.option_id,
			o.name,
			o.price::text
		FROM menu_modifier_groups g
		LEFT JOIN menu_modifier_options o
		  ON o.group_id = g.id
		ORDER BY g.item_id, g.position, g.id, o.position
	`)
	if err != nil {
		return fmt.Errorf("query modifiers: %w", err)
	}
	defer rows.Close()

	// group id -> (item index, required, position within the item's slice)
	type groupRef struct {
		item     int
		required bool
		pos      int
	}
	groups := map[int64]groupRef{}

	for rows.Next() {
		var (
			itemID, groupName    string
			groupID              int64
			required             bool
			maxSelections        int
			optionID, optionName *string
			optionPrice          *string
		)
		if err := rows.Scan(
			&itemID,
			&groupID,
			&groupName,
			&required,
			&maxSelections,
			&optionID,
			&optionName,
			&optionPrice,
		); err != nil {
			return err
		}

		i, ok := index[itemID]
		if !ok {
			return fmt.Errorf("modifier group %d references unknown item %q", groupID, itemID)
		}

		ref, seen := groups[groupID]
		if !seen {
			group := ModifierGroup{Name: groupName, MaxSelections: maxSelections, Options: []ModifierOption{}}
			mods := &items[i].Modifiers
			if required {
				ref = groupRef{item: i, required: true, pos: len(mods.Required)}
				mods.Required = append(mods.Required, group)
			} else {
				ref = groupRef{item: i, required: false, pos: len(mods.Optional)}
				mods.Optional = append(mods.Optional, group)
			}
			groups[groupID] = ref
		}

		if optionID == nil {
			continue
		}

		price := decimal.Zero
		if optionPrice != nil {
			price, err = decimal.NewFromString(*optionPrice)
			if err != nil {
				return fmt.Errorf("option %q: invalid price %q", *optionID, *optionPrice)
			}
		}
		option := ModifierOption{ID: *optionID, Price: price}
		if optionName != nil {
			option.Name = *optionName
		}

		mods := &items[ref.item].Modifiers
		if ref.required {
			mods.Required[ref.pos].Options = append(mods.Required[ref.pos].Options, option)
		} else {
			mods.Optional[ref.pos].Options = append(mods.Optional[ref.pos].Options, option)
		}
	}

	return rows.Err()
}

func loadCategories(ctx context.Context, tx pgx.Tx) ([]Category, error) {
	rows, err := tx.Query(ctx, `
		SELECT c.name, COALESCE(array_agg(i.id ORDER BY i.position, i.id) FILTER (WHERE i.id IS NOT NULL), '{}')
		FROM menu_categories c
		LEFT JOIN menu_items i
		  ON i.category = c.name
		GROUP BY c.name, c.position
		ORDER BY c.position
	`)
	if err != nil {
		return nil, fmt.Errorf("query menu_categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.Name, &cat.ItemIDs); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

// --------------------------------------------------
// SAVE CATALOG (REPLACES THE WHOLE MENU ATOMICALLY)
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, c *Catalog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// options and groups go with the items (ON DELETE CASCADE)
	if _, err := tx.Exec(ctx, `DELETE FROM menu_items`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM menu_categories`); err != nil {
		return err
	}

	for pos, cat := range c.Categories() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_categories (name, position)
			VALUES ($1, $2)
		`, cat.Name, pos); err != nil {
			return fmt.Errorf("insert category %q: %w", cat.Name, err)
		}
	}

	for pos, item := range c.Items() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_items (id, name, category, base_price, description, available, position)
			VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
		`, item.ID, item.Name, item.Category, item.BasePrice.StringFixed(2), item.Description, item.Available, pos); err != nil {
			return fmt.Errorf("insert item %q: %w", item.ID, err)
		}

		if err := saveGroups(ctx, tx, item.ID, item.Modifiers.Required, true); err != nil {
			return err
		}
		if err := saveGroups(ctx, tx, item.ID, item.Modifiers.Optional, false); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func saveGroups(ctx context.Context, tx pgx.Tx, itemID string, groups []ModifierGroup, required bool) error {
	for pos, group := range groups {
		var groupID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO menu_modifier_groups (item_id, name, required, max_selections, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, itemID, group.Name, required, group.MaxSelections, pos).Scan(&groupID)
		if err != nil {
			return fmt.Errorf("insert modifier group %q of %q: %w", group.Name, itemID, err)
		}

		for optPos, option := range group.Options {
			if _, err := tx.Exec(ctx, `
				INSERT INTO menu_modifier_options (group_id, option_id, name, price, position)
				VALUES ($1, $2, $3, $4::numeric, $5)
			`, groupID, option.ID, option.Name, option.Price.StringFixed(2), optPos); err != nil {
				return fmt.Errorf("insert option %q of %q: %w", option.ID, itemID, err)
			}
		}
	}
	return nil
}
