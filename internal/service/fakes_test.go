package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"soapify/internal/domain"
	"soapify/internal/domain/models"
	"soapify/internal/domain/repositories"
)

// discardLogger keeps test output quiet.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory stand-in for both repositories, tracking the
// order of destructive calls so cascade ordering can be asserted.
type fakeStore struct {
	folders map[string]models.Folder
	notes   map[string]models.Note
	nextID  int

	calls []string

	deleteNotesErr  error
	deleteFolderErr error
	updateNoteErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders: make(map[string]models.Folder),
		notes:   make(map[string]models.Note),
	}
}

func (f *fakeStore) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// --- FolderRepository ---

func (f *fakeStore) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = f.genID("folder")
	f.folders[folder.ID] = *folder
	f.calls = append(f.calls, "createFolder")
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok || folder.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := folder
	return &copied, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if folder.UserID == userID {
			out = append(out, folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, folder *models.Folder) error {
	if _, ok := f.folders[folder.ID]; !ok {
		return domain.ErrNotFound
	}
	f.folders[folder.ID] = *folder
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id, userID string) error {
	f.calls = append(f.calls, "deleteFolder")
	if f.deleteFolderErr != nil {
		return f.deleteFolderErr
	}
	folder, ok := f.folders[id]
	if !ok || folder.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.folders, id)
	return nil
}

// --- NoteRepository ---
// Method names collide with the folder side, so the note half lives on a
// wrapper type sharing the same underlying store.

type fakeNoteRepo struct{ *fakeStore }

func (f fakeNoteRepo) Create(ctx context.Context, note *models.Note) error {
	note.ID = f.genID("note")
	f.notes[note.ID] = *note
	f.calls = append(f.calls, "createNote")
	return nil
}

func (f fakeNoteRepo) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := note
	return &copied, nil
}

func (f fakeNoteRepo) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	var out []models.Note
	for _, note := range f.notes {
		if note.UserID == userID {
			out = append(out, note)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f fakeNoteRepo) ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.Note, error) {
	var out []models.Note
	for _, note := range f.notes {
		if note.UserID == userID && note.InFolder(folderID) {
			out = append(out, note)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f fakeNoteRepo) Update(ctx context.Context, note *models.Note) error {
	f.calls = append(f.calls, "updateNote")
	if f.updateNoteErr != nil {
		return f.updateNoteErr
	}
	if _, ok := f.notes[note.ID]; !ok {
		return domain.ErrNotFound
	}
	f.notes[note.ID] = *note
	return nil
}

func (f fakeNoteRepo) Delete(ctx context.Context, id, userID string) error {
	note, ok := f.notes[id]
	if !ok || note.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.notes, id)
	return nil
}

func (f fakeNoteRepo) DeleteByFolder(ctx context.Context, folderID, userID string) (int64, error) {
	f.calls = append(f.calls, "deleteNotesByFolder")
	if f.deleteNotesErr != nil {
		return 0, f.deleteNotesErr
	}
	var deleted int64
	for id, note := range f.notes {
		if note.UserID == userID && note.FolderID != nil && *note.FolderID == folderID {
			delete(f.notes, id)
			deleted++
		}
	}
	return deleted, nil
}

// --- TransactionManager ---

// fakeTxManager snapshots the store before running the function and
// restores it on failure, mimicking a rollback.
type fakeTxManager struct{ store *fakeStore }

func (m fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	foldersBefore := make(map[string]models.Folder, len(m.store.folders))
	for k, v := range m.store.folders {
		foldersBefore[k] = v
	}
	notesBefore := make(map[string]models.Note, len(m.store.notes))
	for k, v := range m.store.notes {
		notesBefore[k] = v
	}

	if err := fn(ctx); err != nil {
		m.store.folders = foldersBefore
		m.store.notes = notesBefore
		return err
	}
	return nil
}

// seedFolder inserts a folder directly into the fake store.
func (f *fakeStore) seedFolder(id, userID, name string) {
	f.folders[id] = models.Folder{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// seedNote inserts a note directly into the fake store.
func (f *fakeStore) seedNote(id, userID, title string, folderID *string) {
	f.notes[id] = models.Note{
		ID:        id,
		UserID:    userID,
		FolderID:  folderID,
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

var errStoreDown = errors.New("store unavailable")
