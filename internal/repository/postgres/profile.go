package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/careerguide-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	const query = `
        INSERT INTO profiles (uid, email, full_name, role, phone, institution_name, email_verified, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING created_at
    `

	err := r.db.QueryRow(ctx, query,
		profile.UID, profile.Email, profile.FullName, string(profile.Role),
		profile.Phone, profile.InstitutionName, profile.EmailVerified,
	).Scan(&profile.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Profile{}, model.ErrAlreadyExists
		}
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) Get(ctx context.Context, uid uuid.UUID) (model.Profile, error) {
	const query = `
        SELECT uid, email, full_name, role, phone, institution_name, avatar_url,
               email_verified, email_verified_at, created_at, updated_at
        FROM profiles
        WHERE uid = $1
    `

	var (
		p    model.Profile
		role string
	)
	err := r.db.QueryRow(ctx, query, uid).Scan(
		&p.UID, &p.Email, &p.FullName, &role, &p.Phone, &p.InstitutionName, &p.Avatar,
		&p.EmailVerified, &p.EmailVerifiedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Role = model.Role(role)

	p.Documents, err = r.documents(ctx, uid)
	if err != nil {
		return model.Profile{}, err
	}

	return p, nil
}

func (r *ProfileRepository) documents(ctx context.Context, uid uuid.UUID) ([]model.Document, error) {
	const query = `
        SELECT id, name, url, object_key, uploaded_at
        FROM profile_documents
        WHERE uid = $1
        ORDER BY uploaded_at, id
    `

	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile documents: %w", err)
	}
	defer rows.Close()

	documents := []model.Document{}
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Name, &d.URL, &d.ObjectKey, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile document: %w", err)
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profile documents: %w", err)
	}

	return documents, nil
}

func (r *ProfileRepository) Update(ctx context.Context, uid uuid.UUID, update model.ProfileUpdate) error {
	const query = `
        UPDATE profiles
        SET full_name        = COALESCE($2, full_name),
            phone            = COALESCE($3, phone),
            institution_name = COALESCE($4, institution_name),
            updated_at       = NOW()
        WHERE uid = $1
    `

	tag, err := r.db.Exec(ctx, query, uid, update.FullName, update.Phone, update.InstitutionName)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) MarkEmailVerified(ctx context.Context, uid uuid.UUID) (time.Time, error) {
	const query = `
        UPDATE profiles
        SET email_verified    = TRUE,
            email_verified_at = COALESCE(email_verified_at, NOW())
        WHERE uid = $1
        RETURNING email_verified_at
    `

	var verifiedAt time.Time
	if err := r.db.QueryRow(ctx, query, uid).Scan(&verifiedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, model.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to mark profile email verified: %w", err)
	}

	return verifiedAt, nil
}

func (r *ProfileRepository) SetAvatar(ctx context.Context, uid uuid.UUID, url string) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET avatar_url = $2, updated_at = NOW() WHERE uid = $1`, uid, url)
	if err != nil {
		return fmt.Errorf("failed to set avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) AddDocument(ctx context.Context, uid uuid.UUID, document model.Document) error {
	const query = `
        INSERT INTO profile_documents (uid, id, name, url, object_key, uploaded_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.Exec(ctx, query, uid, document.ID, document.Name, document.URL, document.ObjectKey, document.UploadedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to add profile document: %w", err)
	}

	return nil
}

func (r *ProfileRepository) RemoveDocument(ctx context.Context, uid uuid.UUID, documentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profile_documents WHERE uid = $1 AND id = $2`, uid, documentID)
	if err != nil {
		return fmt.Errorf("failed to remove profile document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
