package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/careerguide-server/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

type CredentialRepository struct {
	db *Connection
}

func NewCredentialRepository(db *Connection) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

const credentialColumns = `uid, email, password_hash, display_name, phone, email_verified, disabled, created_at, updated_at`

func scanCredential(row pgx.Row) (model.Credential, error) {
	var c model.Credential
	err := row.Scan(
		&c.UID, &c.Email, &c.PasswordHash, &c.DisplayName, &c.Phone,
		&c.EmailVerified, &c.Disabled, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *CredentialRepository) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	query := `INSERT INTO credentials (uid, email, password_hash, display_name, phone, email_verified, disabled)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + credentialColumns

	saved, err := scanCredential(r.db.QueryRow(ctx, query,
		credential.UID, credential.Email, credential.PasswordHash, credential.DisplayName,
		credential.Phone, credential.EmailVerified, credential.Disabled,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Credential{}, model.ErrAlreadyExists
		}
		return model.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}

	return saved, nil
}

func (r *CredentialRepository) GetByID(ctx context.Context, uid uuid.UUID) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE uid = $1`

	c, err := scanCredential(r.db.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get credential by id: %w", err)
	}

	return c, nil
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE email = $1`

	c, err := scanCredential(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get credential by email: %w", err)
	}

	return c, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM credentials WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
