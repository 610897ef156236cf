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

type snapshotRepo struct {
	db *sqlx.DB
}

// NewSnapshotRepo creates a new PostgreSQL-backed SnapshotRepository.
func NewSnapshotRepo(db *sqlx.DB) port.SnapshotRepository {
	return &snapshotRepo{db: db}
}

// GetBillSnapshot reads the entire bill graph inside one repeatable-read
// transaction. The engine computes over this snapshot, so a torn read here
// would surface as a wrong settlement.
func (r *snapshotRepo) GetBillSnapshot(ctx context.Context, billID uuid.UUID) (*domain.BillSnapshot, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshotRepo.GetBillSnapshot begin: %w", err)
	}
	defer tx.Rollback()

	snap := &domain.BillSnapshot{}

	err = tx.GetContext(ctx, &snap.Bill, "SELECT * FROM bills WHERE id = $1", billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("snapshotRepo.GetBillSnapshot bill: %w", err)
	}

	err = tx.SelectContext(ctx, &snap.Participants,
		"SELECT * FROM participants WHERE bill_id = $1 ORDER BY name, id", billID)
	if err != nil {
		return nil, fmt.Errorf("snapshotRepo.GetBillSnapshot participants: %w", err)
	}

	err = tx.SelectContext(ctx, &snap.Payments,
		"SELECT * FROM payments WHERE bill_id = $1 ORDER BY id", billID)
	if err != nil {
		return nil, fmt.Errorf("snapshotRepo.GetBillSnapshot payments: %w", err)
	}

	var receipts []domain.Receipt
	err = tx.SelectContext(ctx, &receipts,
		"SELECT * FROM receipts WHERE bill_id = $1 ORDER BY created_at, id", billID)
	if err != nil {
		return nil, fmt.Errorf("snapshotRepo.GetBillSnapshot receipts: %w", err)
	}

	snap.Receipts = make([]domain.SnapshotReceipt, 0, len(receipts))
	for _, receipt := range receipts {
		items, err := loadReceiptItems(ctx, tx, receipt.ID)
		if err != nil {
			return nil, fmt.Errorf("snapshotRepo.GetBillSnapshot items: %w", err)
		}
		snap.Receipts = append(snap.Receipts, domain.SnapshotReceipt{
			Receipt: receipt,
			Items:   items,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("snapshotRepo.GetBillSnapshot commit: %w", err)
	}
	return snap, nil
}

func loadReceiptItems(ctx context.Context, tx *sqlx.Tx, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	var items []domain.Item
	err := tx.SelectContext(ctx, &items,
		"SELECT * FROM items WHERE receipt_id = $1 ORDER BY item_order, id", receiptID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.ReceiptItem{}, nil
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}

	query, args, err := sqlx.In("SELECT * FROM item_splits WHERE item_id IN (?)", itemIDs)
	if err != nil {
		return nil, err
	}
	var splits []domain.Split
	if err := tx.SelectContext(ctx, &splits, tx.Rebind(query), args...); err != nil {
		return nil, err
	}

	query, args, err = sqlx.In("SELECT * FROM tax_distributions WHERE item_id IN (?)", itemIDs)
	if err != nil {
		return nil, err
	}
	var dists []domain.TaxDistribution
	if err := tx.SelectContext(ctx, &dists, tx.Rebind(query), args...); err != nil {
		return nil, err
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
