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

type participantRepo struct {
	db *sqlx.DB
}

// NewParticipantRepo creates a new PostgreSQL-backed ParticipantRepository.
func NewParticipantRepo(db *sqlx.DB) port.ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Create(ctx context.Context, participant *domain.Participant) error {
	query := `INSERT INTO participants (id, bill_id, name) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, participant.ID, participant.BillID, participant.Name)
	if err != nil {
		return fmt.Errorf("participantRepo.Create: %w", err)
	}
	return nil
}

func (r *participantRepo) GetByID(ctx context.Context, billID, participantID uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.db.GetContext(ctx, &participant,
		"SELECT * FROM participants WHERE id = $1 AND bill_id = $2", participantID, billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("participantRepo.GetByID: %w", err)
	}
	return &participant, nil
}

func (r *participantRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Participant, error) {
	var participants []domain.Participant
	err := r.db.SelectContext(ctx, &participants,
		"SELECT * FROM participants WHERE bill_id = $1 ORDER BY name, id", billID)
	if err != nil {
		return nil, fmt.Errorf("participantRepo.ListByBill: %w", err)
	}
	return participants, nil
}

func (r *participantRepo) Delete(ctx context.Context, billID, participantID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM participants WHERE id = $1 AND bill_id = $2", participantID, billID)
	if err != nil {
		return fmt.Errorf("participantRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
