package repository

import (
	"context"
	"fmt"

	"dinelt/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func (r *cartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return beginTx(ctx, r.pool, r.logger)
}

func (r *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO carts (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, created_at, updated_at
	`

	var c model.Cart
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get or create cart")
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return &c, nil
}

func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	return r.listItems(ctx, r.pool, cartID)
}

func (r *cartRepository) ListItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) ([]model.CartItem, error) {
	return r.listItems(ctx, tx, cartID)
}

func (r *cartRepository) listItems(ctx context.Context, q querier, cartID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.food_id, f.name, f.price, f.restaurant_id, ci.quantity
		FROM cart_items ci
		JOIN foods f ON f.id = ci.food_id
		WHERE ci.cart_id = $1
		ORDER BY f.restaurant_id, f.name
	`

	rows, err := q.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CartItem, error) {
		var it model.CartItem
		err := row.Scan(&it.ID, &it.CartID, &it.FoodID, &it.FoodName, &it.FoodPrice, &it.RestaurantID, &it.Quantity)
		return it, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan cart item rows")
		return nil, fmt.Errorf("failed to scan cart items: %w", err)
	}

	return items, nil
}

// LockTx takes the cart row lock that serialises item writes against checkout.
func (r *cartRepository) LockTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	var id uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&id); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to lock cart")
		return fmt.Errorf("failed to lock cart: %w", err)
	}
	return nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID, foodID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (id, cart_id, food_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, food_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`

	return r.withLock(ctx, cartID, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, uuid.New(), cartID, foodID, quantity); err != nil {
			r.logger.Error().Err(err).
				Str("cart_id", cartID.String()).
				Str("food_id", foodID.String()).
				Msg("failed to upsert cart item")
			return fmt.Errorf("failed to upsert cart item: %w", err)
		}
		return r.touch(ctx, tx, cartID)
	})
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (bool, error) {
	var updated bool
	err := r.withLock(ctx, cartID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE cart_items SET quantity = $3 WHERE id = $2 AND cart_id = $1`,
			cartID, itemID, quantity)
		if err != nil {
			r.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to update cart item")
			return fmt.Errorf("failed to update cart item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		updated = true
		return r.touch(ctx, tx, cartID)
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $2 AND cart_id = $1`, cartID, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to remove cart item")
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}
	return true, r.touch(ctx, r.pool, cartID)
}

func (r *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return r.clear(ctx, r.pool, cartID)
}

// RemoveItemsTx deletes the given lines within the provided transaction.
func (r *cartRepository) RemoveItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = ANY($2::uuid[])`,
		cartID, uuidStrings(itemIDs)); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to remove cart items")
		return fmt.Errorf("failed to remove cart items: %w", err)
	}
	return r.touch(ctx, tx, cartID)
}

func (r *cartRepository) clear(ctx context.Context, q querier, cartID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return r.touch(ctx, q, cartID)
}

func (r *cartRepository) touch(ctx context.Context, q querier, cartID uuid.UUID) error {
	if _, err := q.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}
	return nil
}

// withLock runs fn in a transaction holding the cart row lock.
func (r *cartRepository) withLock(ctx context.Context, cartID uuid.UUID, fn func(tx pgx.Tx) error) (err error) {
	tx, err := beginTx(ctx, r.pool, r.logger)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = r.LockTx(ctx, tx, cartID); err != nil {
		return err
	}
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart transaction: %w", err)
	}
	return nil
}
