package service

import (
	"context"
	"errors"
	"testing"

	"soapify/internal/domain"
	"soapify/internal/domain/models"
	"soapify/internal/domain/services"
	"soapify/internal/httputil"
)

func newNoteServiceForTest(store *fakeStore) services.NoteService {
	return NewNoteService(fakeNoteRepo{store}, store, discardLogger())
}

func TestCreateNote_BlankTitleGetsDefault(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", models.DefaultNoteTitle},
		{"whitespace", "   ", models.DefaultNoteTitle},
		{"explicit", "Follow-up visit", "Follow-up visit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, err := svc.CreateNote(context.Background(), &services.CreateNoteRequest{
				UserID: "user-1",
				Title:  tt.title,
			})
			if err != nil {
				t.Fatalf("CreateNote() error = %v", err)
			}
			if note.Title != tt.want {
				t.Errorf("Title = %q, want %q", note.Title, tt.want)
			}
		})
	}
}

func TestCreateNote_UnknownFolderRejected(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	missing := "folder-missing"
	_, err := svc.CreateNote(context.Background(), &services.CreateNoteRequest{
		UserID:   "user-1",
		Title:    "Orphan",
		FolderID: &missing,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if len(store.notes) != 0 {
		t.Error("note was created despite the bad folder reference")
	}
}

func TestCreateNote_OtherUsersFolderRejected(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	store.seedFolder("folder-a", "user-2", "Not yours")

	folderID := "folder-a"
	_, err := svc.CreateNote(context.Background(), &services.CreateNoteRequest{
		UserID:   "user-1",
		Title:    "Trespass",
		FolderID: &folderID,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateNote_AbsentFolderFieldKeepsAssignment(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	folderID := "folder-a"
	store.seedFolder(folderID, "user-1", "Cardiology")
	store.seedNote("note-1", "user-1", "Chest pain", &folderID)

	title := "Chest pain, day 2"
	note, err := svc.UpdateNote(context.Background(), "note-1", &services.UpdateNoteRequest{
		UserID: "user-1",
		Title:  &title,
	})
	if err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	if note.FolderID == nil || *note.FolderID != folderID {
		t.Errorf("FolderID = %v, want %q", note.FolderID, folderID)
	}
	if note.Title != title {
		t.Errorf("Title = %q, want %q", note.Title, title)
	}
}

func TestUpdateNote_NullFolderMovesToWorkspace(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	folderID := "folder-a"
	store.seedFolder(folderID, "user-1", "Cardiology")
	store.seedNote("note-1", "user-1", "Chest pain", &folderID)

	note, err := svc.UpdateNote(context.Background(), "note-1", &services.UpdateNoteRequest{
		UserID:   "user-1",
		FolderID: httputil.OptionalString{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	if note.FolderID != nil {
		t.Errorf("FolderID = %q, want nil", *note.FolderID)
	}
}

func TestUpdateNote_NoChangesSkipsWrite(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	store.seedNote("note-1", "user-1", "Chest pain", nil)

	note, err := svc.UpdateNote(context.Background(), "note-1", &services.UpdateNoteRequest{
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	if note == nil {
		t.Fatal("expected the unchanged note back")
	}
	for _, call := range store.calls {
		if call == "updateNote" {
			t.Error("a no-op update reached the store")
		}
	}
}

func TestMoveNote_SameFolderIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	folderID := "folder-a"
	store.seedFolder(folderID, "user-1", "Cardiology")
	store.seedNote("note-1", "user-1", "Chest pain", &folderID)
	before := store.notes["note-1"].UpdatedAt

	note, err := svc.MoveNote(context.Background(), "note-1", "user-1", &folderID)
	if err != nil {
		t.Fatalf("MoveNote() error = %v", err)
	}
	if note.FolderID == nil || *note.FolderID != folderID {
		t.Errorf("FolderID = %v, want %q", note.FolderID, folderID)
	}
	if !store.notes["note-1"].UpdatedAt.Equal(before) {
		t.Error("repeat move churned updated_at")
	}
	for _, call := range store.calls {
		if call == "updateNote" {
			t.Error("no-op move reached the store")
		}
	}
}

func TestMoveNote_ToWorkspace(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	folderID := "folder-a"
	store.seedFolder(folderID, "user-1", "Cardiology")
	store.seedNote("note-1", "user-1", "Chest pain", &folderID)

	note, err := svc.MoveNote(context.Background(), "note-1", "user-1", nil)
	if err != nil {
		t.Fatalf("MoveNote() error = %v", err)
	}
	if note.FolderID != nil {
		t.Errorf("FolderID = %q, want nil", *note.FolderID)
	}
}

func TestMoveNote_TargetMustExistAndBeOwned(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	store.seedNote("note-1", "user-1", "Chest pain", nil)
	store.seedFolder("folder-b", "user-2", "Someone else's")

	tests := []struct {
		name   string
		target string
	}{
		{"missing folder", "folder-missing"},
		{"foreign folder", "folder-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			_, err := svc.MoveNote(context.Background(), "note-1", "user-1", &target)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
			if store.notes["note-1"].FolderID != nil {
				t.Error("note moved despite the rejected target")
			}
		})
	}
}

func TestDeleteNote_OtherUsersNoteIsNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newNoteServiceForTest(store)

	store.seedNote("note-1", "user-2", "Private", nil)

	err := svc.DeleteNote(context.Background(), "note-1", "user-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, ok := store.notes["note-1"]; !ok {
		t.Error("another user's note was deleted")
	}
}
