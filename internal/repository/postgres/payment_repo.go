package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"splittab/internal/domain"
	"splittab/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	query := `INSERT INTO payments (id, bill_id, payer_id, amount, receipt_id)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.BillID, payment.PayerID, payment.Amount, payment.ReceiptID)
	if err != nil {
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments WHERE bill_id = $1 ORDER BY id", billID)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByBill: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) ReplaceForReceipt(ctx context.Context, billID, receiptID uuid.UUID, payment *domain.Payment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("paymentRepo.ReplaceForReceipt begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM payments WHERE bill_id = $1 AND receipt_id = $2", billID, receiptID)
	if err != nil {
		return fmt.Errorf("paymentRepo.ReplaceForReceipt delete: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, bill_id, payer_id, amount, receipt_id)
		VALUES ($1, $2, $3, $4, $5)`,
		payment.ID, payment.BillID, payment.PayerID, payment.Amount, payment.ReceiptID)
	if err != nil {
		return fmt.Errorf("paymentRepo.ReplaceForReceipt insert: %w", err)
	}
	return tx.Commit()
}
