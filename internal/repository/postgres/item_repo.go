package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"splittab/internal/domain"
	"splittab/internal/port"
)

type itemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new PostgreSQL-backed ItemRepository.
func NewItemRepo(db *sqlx.DB) port.ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *domain.Item, splits []domain.Split) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("itemRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO items (id, receipt_id, name, price, is_tax_or_charge, charge_type, item_order, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.ExecContext(ctx, query,
		item.ID, item.ReceiptID, item.Name, item.Price, item.IsTaxOrCharge,
		item.ChargeType, item.ItemOrder, item.Quantity, item.UnitPrice)
	if err != nil {
		return fmt.Errorf("itemRepo.Create: %w", err)
	}

	if err := insertSplits(ctx, tx, item.ID, splits); err != nil {
		return fmt.Errorf("itemRepo.Create splits: %w", err)
	}
	return tx.Commit()
}

func (r *itemRepo) GetByID(ctx context.Context, receiptID, itemID uuid.UUID) (*domain.Item, error) {
	var item domain.Item
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM items WHERE id = $1 AND receipt_id = $2", itemID, receiptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("itemRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *itemRepo) Update(ctx context.Context, item *domain.Item) error {
	query := `UPDATE items SET name = $1, price = $2, is_tax_or_charge = $3, charge_type = $4,
		item_order = $5, quantity = $6, unit_price = $7
		WHERE id = $8 AND receipt_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Price, item.IsTaxOrCharge, item.ChargeType,
		item.ItemOrder, item.Quantity, item.UnitPrice, item.ID, item.ReceiptID)
	if err != nil {
		return fmt.Errorf("itemRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, receiptID, itemID uuid.UUID) error {
	// Splits and tax distributions cascade at the schema level.
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM items WHERE id = $1 AND receipt_id = $2", itemID, receiptID)
	if err != nil {
		return fmt.Errorf("itemRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepo) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	var items []domain.Item
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM items WHERE receipt_id = $1 ORDER BY item_order, id", receiptID)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByReceipt: %w", err)
	}
	if len(items) == 0 {
		return []domain.ReceiptItem{}, nil
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}

	splitQuery, splitArgs, err := sqlx.In("SELECT * FROM item_splits WHERE item_id IN (?)", itemIDs)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByReceipt splits in: %w", err)
	}
	var splits []domain.Split
	err = r.db.SelectContext(ctx, &splits, r.db.Rebind(splitQuery), splitArgs...)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByReceipt splits: %w", err)
	}

	distQuery, distArgs, err := sqlx.In("SELECT * FROM tax_distributions WHERE item_id IN (?)", itemIDs)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByReceipt distributions in: %w", err)
	}
	var dists []domain.TaxDistribution
	err = r.db.SelectContext(ctx, &dists, r.db.Rebind(distQuery), distArgs...)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByReceipt distributions: %w", err)
	}

	splitsByItem := make(map[uuid.UUID][]domain.Split)
	for _, s := range splits {
		splitsByItem[s.ItemID] = append(splitsByItem[s.ItemID], s)
	}
	distByItem := make(map[uuid.UUID]domain.TaxDistribution)
	for _, d := range dists {
		distByItem[d.ItemID] = d
	}

	out := make([]domain.ReceiptItem, 0, len(items))
	for _, it := range items {
		ri := domain.ReceiptItem{Item: it, Splits: splitsByItem[it.ID]}
		if d, ok := distByItem[it.ID]; ok {
			dist := d
			ri.TaxDistribution = &dist
		}
		out = append(out, ri)
	}
	return out, nil
}

func (r *itemRepo) ReplaceSplits(ctx context.Context, itemID uuid.UUID, splits []domain.Split) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("itemRepo.ReplaceSplits begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM item_splits WHERE item_id = $1", itemID); err != nil {
		return fmt.Errorf("itemRepo.ReplaceSplits delete: %w", err)
	}
	if err := insertSplits(ctx, tx, itemID, splits); err != nil {
		return fmt.Errorf("itemRepo.ReplaceSplits insert: %w", err)
	}
	return tx.Commit()
}

func (r *itemRepo) UpsertTaxDistribution(ctx context.Context, dist *domain.TaxDistribution) error {
	query := `INSERT INTO tax_distributions (id, item_id, distribution_type, custom_data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO UPDATE SET distribution_type = $3, custom_data = $4`
	_, err := r.db.ExecContext(ctx, query, dist.ID, dist.ItemID, dist.Type, dist.CustomData)
	if err != nil {
		return fmt.Errorf("itemRepo.UpsertTaxDistribution: %w", err)
	}
	return nil
}

func insertSplits(ctx context.Context, tx *sqlx.Tx, itemID uuid.UUID, splits []domain.Split) error {
	for i := range splits {
		splits[i].ItemID = itemID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO item_splits (id, item_id, participant_id, split_type, value)
			VALUES ($1, $2, $3, $4, $5)`,
			splits[i].ID, splits[i].ItemID, splits[i].ParticipantID, splits[i].Type, splits[i].Value)
		if err != nil {
			return err
		}
	}
	return nil
}
