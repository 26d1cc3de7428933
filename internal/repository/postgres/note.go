package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"soapify/internal/domain"
	"soapify/internal/domain/models"
	"soapify/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		note.UserID,
		note.FolderID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder does not exist: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note owned by the given user
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, folder_id, title, content, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Notes)

	var note models.Note
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.FolderID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &note, nil
}

// ListByUser lists all notes for a user, last-updated descending
func (r *PostgresNoteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, folder_id, title, content, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// ListByFolder lists notes in one folder (nil = unfiled), last-updated descending
func (r *PostgresNoteRepository) ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.Note, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT id, user_id, folder_id, title, content, created_at, updated_at
			FROM %s
			WHERE user_id = $1 AND folder_id IS NULL
			ORDER BY updated_at DESC
		`, r.tables.Notes)
		args = append(args, userID)
	} else {
		query = fmt.Sprintf(`
			SELECT id, user_id, folder_id, title, content, created_at, updated_at
			FROM %s
			WHERE user_id = $1 AND folder_id = $2
			ORDER BY updated_at DESC
		`, r.tables.Notes)
		args = append(args, userID, *folderID)
	}

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes in folder: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// Update persists title/content/folder changes
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		note.FolderID,
		note.Title,
		note.Content,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder does not exist: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a single note
func (r *PostgresNoteRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByFolder removes every note assigned to the folder.
// Zero deleted rows is fine: an empty folder has nothing to cascade.
func (r *PostgresNoteRepository) DeleteByFolder(ctx context.Context, folderID, userID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = $1 AND user_id = $2
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete notes in folder: %w", err)
	}

	return result.RowsAffected(), nil
}

// scanNotes collects rows into note models
func scanNotes(rows pgx.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.FolderID,
			&note.Title,
			&note.Content,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}
