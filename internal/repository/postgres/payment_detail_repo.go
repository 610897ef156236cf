package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"splittab/internal/domain"
	"splittab/internal/port"
)

type paymentDetailRepo struct {
	db *sqlx.DB
}

// NewPaymentDetailRepo creates a new PostgreSQL-backed PaymentDetailRepository.
func NewPaymentDetailRepo(db *sqlx.DB) port.PaymentDetailRepository {
	return &paymentDetailRepo{db: db}
}

func (r *paymentDetailRepo) Create(ctx context.Context, detail *domain.PaymentDetail) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("paymentDetailRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	// A new primary detail demotes the participant's existing one.
	if detail.IsPrimary {
		_, err = tx.ExecContext(ctx,
			"UPDATE payment_details SET is_primary = FALSE WHERE participant_id = $1", detail.ParticipantID)
		if err != nil {
			return fmt.Errorf("paymentDetailRepo.Create demote: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payment_details (id, participant_id, provider_name, account_number, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		detail.ID, detail.ParticipantID, detail.ProviderName, detail.AccountNumber, detail.IsPrimary, detail.CreatedAt)
	if err != nil {
		return fmt.Errorf("paymentDetailRepo.Create: %w", err)
	}
	return tx.Commit()
}

func (r *paymentDetailRepo) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]domain.PaymentDetail, error) {
	var details []domain.PaymentDetail
	err := r.db.SelectContext(ctx, &details,
		"SELECT * FROM payment_details WHERE participant_id = $1 ORDER BY is_primary DESC, created_at", participantID)
	if err != nil {
		return nil, fmt.Errorf("paymentDetailRepo.ListByParticipant: %w", err)
	}
	return details, nil
}

func (r *paymentDetailRepo) SetPrimary(ctx context.Context, participantID, detailID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("paymentDetailRepo.SetPrimary begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE payment_details SET is_primary = FALSE WHERE participant_id = $1", participantID)
	if err != nil {
		return fmt.Errorf("paymentDetailRepo.SetPrimary demote: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE payment_details SET is_primary = TRUE WHERE id = $1 AND participant_id = $2",
		detailID, participantID)
	if err != nil {
		return fmt.Errorf("paymentDetailRepo.SetPrimary: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *paymentDetailRepo) Delete(ctx context.Context, participantID, detailID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM payment_details WHERE id = $1 AND participant_id = $2", detailID, participantID)
	if err != nil {
		return fmt.Errorf("paymentDetailRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
