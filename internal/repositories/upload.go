package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
)

// UploadRepository implements models.Repository[*models.UploadRecord] for upload history.
//
// Handles upload record CRUD operations with soft delete support and status-based queries.
type UploadRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.UploadRecord] = (*UploadRepository)(nil)

// NewUploadRepository creates a new UploadRepository with the given database connection
func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

const uploadColumns = `
	id, sequence, card_id, title, file_name, upload_id, transcoded_sha256,
	status, error_message, created_at, updated_at, deleted_at
`

// Create inserts a new upload record into the database with generated ID and sequence
func (r *UploadRepository) Create(upload *models.UploadRecord) error {
	if err := upload.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "uploads")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	upload.SetID(id)
	upload.SetSequence(sequence)

	query := `
		INSERT INTO uploads (
			id, sequence, card_id, title, file_name, upload_id, transcoded_sha256,
			status, error_message, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		upload.CardID(),
		upload.Title(),
		upload.FileName(),
		nullable(upload.UploadID()),
		nullable(upload.TranscodedSha256()),
		upload.Status(),
		nullable(upload.ErrorMessage()),
		upload.CreatedAt(),
		upload.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}

	return nil
}

// Get retrieves an upload record by ID, excluding soft-deleted records
func (r *UploadRepository) Get(id string) (*models.UploadRecord, error) {
	query := "SELECT " + uploadColumns + " FROM uploads WHERE id = ? AND deleted_at IS NULL"

	upload, err := scanUpload(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("upload not found: %s", id)
	}
	return upload, err
}

// Update modifies an existing upload record in the database
func (r *UploadRepository) Update(upload *models.UploadRecord) error {
	if err := upload.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	upload.SetUpdatedAt(now)

	query := `
		UPDATE uploads
		SET upload_id = ?, transcoded_sha256 = ?, status = ?, error_message = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		nullable(upload.UploadID()),
		nullable(upload.TranscodedSha256()),
		upload.Status(),
		nullable(upload.ErrorMessage()),
		now,
		upload.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update upload: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("upload not found or already deleted: %s", upload.ID())
	}

	return nil
}

// Delete soft-deletes an upload record by ID
func (r *UploadRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE uploads SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("upload not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves upload records matching the given criteria, newest first, excluding soft-deleted records.
//
// Supported criteria: "card_id" (string), "status" (string), "limit" (int).
func (r *UploadRepository) List(criteria map[string]any) ([]*models.UploadRecord, error) {
	query := "SELECT " + uploadColumns + " FROM uploads WHERE deleted_at IS NULL"
	args := []any{}

	if cardID, ok := criteria["card_id"].(string); ok && cardID != "" {
		query += " AND card_id = ?"
		args = append(args, cardID)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*models.UploadRecord
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return uploads, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanUpload scans a [sql.Row] or [sql.Rows] into a [models.UploadRecord]
func scanUpload(s scanner) (*models.UploadRecord, error) {
	var (
		id               string
		sequence         int
		cardID           string
		title            string
		fileName         string
		uploadID         sql.NullString
		transcodedSha256 sql.NullString
		status           string
		errorMessage     sql.NullString
		createdAt        time.Time
		updatedAt        time.Time
		deletedAt        sql.NullTime
	)

	err := s.Scan(
		&id, &sequence, &cardID, &title, &fileName, &uploadID, &transcodedSha256,
		&status, &errorMessage, &createdAt, &updatedAt, &deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan upload: %w", err)
	}

	upload := models.NewUploadRecord(sequence, cardID, title, fileName)
	upload.SetID(id)
	upload.SetUploadID(uploadID.String)
	upload.SetTranscodedSha256(transcodedSha256.String)
	upload.SetStatus(status)
	upload.SetErrorMessage(errorMessage.String)
	upload.SetCreatedAt(createdAt)
	upload.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		upload.SetDeletedAt(&deletedAt.Time)
	}

	return upload, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
