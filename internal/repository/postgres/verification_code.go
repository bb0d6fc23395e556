package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/careerguide-server/internal/model"
)

var _ model.VerificationCodeStore = (*VerificationCodeRepository)(nil)

type VerificationCodeRepository struct {
	db *Connection
}

func NewVerificationCodeRepository(db *Connection) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

func (r *VerificationCodeRepository) Create(ctx context.Context, code model.VerificationCode) error {
	const query = `
        INSERT INTO verification_codes (id, code_hash, uid, email, expires_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}

	if _, err := r.db.Exec(ctx, query, code.ID, code.CodeHash, code.UID, code.Email, code.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}
	return nil
}

func (r *VerificationCodeRepository) GetByHash(ctx context.Context, codeHash []byte) (model.VerificationCode, error) {
	const query = `
        SELECT id, code_hash, uid, email, expires_at, consumed_at, created_at
        FROM verification_codes
        WHERE code_hash = $1
    `
	var vc model.VerificationCode
	err := r.db.QueryRow(ctx, query, codeHash).Scan(
		&vc.ID, &vc.CodeHash, &vc.UID, &vc.Email, &vc.ExpiresAt, &vc.ConsumedAt, &vc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VerificationCode{}, model.ErrNotFound
		}
		return model.VerificationCode{}, fmt.Errorf("failed to get verification code: %w", err)
	}
	return vc, nil
}

func (r *VerificationCodeRepository) Redeem(ctx context.Context, id uuid.UUID) (string, error) {
	const query = `
        WITH consumed AS (
            UPDATE verification_codes
            SET consumed_at = NOW()
            WHERE id = $1 AND consumed_at IS NULL
            RETURNING uid
        )
        UPDATE credentials
        SET email_verified = TRUE, updated_at = NOW()
        FROM consumed
        WHERE credentials.uid = consumed.uid
        RETURNING credentials.email
    `
	var email string
	if err := r.db.QueryRow(ctx, query, id).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrAlreadyConsumed
		}
		return "", fmt.Errorf("failed to redeem verification code: %w", err)
	}
	return email, nil
}
