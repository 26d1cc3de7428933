package service

import (
	"context"
	"errors"
	"testing"

	"soapify/internal/domain"
	"soapify/internal/domain/services"
)

func newFolderServiceForTest(store *fakeStore) services.FolderService {
	return NewFolderService(store, fakeNoteRepo{store}, fakeTxManager{store}, discardLogger())
}

func TestCreateFolder_RequiresName(t *testing.T) {
	store := newFakeStore()
	svc := newFolderServiceForTest(store)

	tests := []struct {
		name  string
		input string
	}{
		{"empty name", ""},
		{"whitespace name", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateFolder(context.Background(), &services.CreateFolderRequest{
				UserID: "user-1",
				Name:   tt.input,
			})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateFolder_NormalizesBlankDescription(t *testing.T) {
	store := newFakeStore()
	svc := newFolderServiceForTest(store)

	blank := "   "
	folder, err := svc.CreateFolder(context.Background(), &services.CreateFolderRequest{
		UserID:      "user-1",
		Name:        "Cardiology",
		Description: &blank,
	})
	if err != nil {
		t.Fatalf("CreateFolder() error = %v", err)
	}
	if folder.Description != nil {
		t.Errorf("Description = %v, want nil", *folder.Description)
	}
}

func TestDeleteFolder_CascadesNotesFirst(t *testing.T) {
	store := newFakeStore()
	svc := newFolderServiceForTest(store)

	folderID := "folder-a"
	otherID := "folder-b"
	store.seedFolder(folderID, "user-1", "Cardiology")
	store.seedFolder(otherID, "user-1", "Dermatology")
	store.seedNote("note-1", "user-1", "Chest pain", &folderID)
	store.seedNote("note-2", "user-1", "Palpitations", &folderID)
	store.seedNote("note-3", "user-1", "Rash", &otherID)
	store.seedNote("note-4", "user-1", "Unfiled", nil)

	if err := svc.DeleteFolder(context.Background(), folderID, "user-1"); err != nil {
		t.Fatalf("DeleteFolder() error = %v", err)
	}

	// Member notes and the folder are gone
	if _, ok := store.folders[folderID]; ok {
		t.Error("folder still exists after delete")
	}
	if _, ok := store.notes["note-1"]; ok {
		t.Error("note-1 survived the cascade")
	}
	if _, ok := store.notes["note-2"]; ok {
		t.Error("note-2 survived the cascade")
	}

	// Notes elsewhere are untouched
	if _, ok := store.notes["note-3"]; !ok {
		t.Error("note-3 in another folder was deleted")
	}
	if _, ok := store.notes["note-4"]; !ok {
		t.Error("unfiled note-4 was deleted")
	}

	// Ordering discipline: notes before folder
	var destructive []string
	for _, call := range store.calls {
		if call == "deleteNotesByFolder" || call == "deleteFolder" {
			destructive = append(destructive, call)
		}
	}
	if len(destructive) != 2 || destructive[0] != "deleteNotesByFolder" || destructive[1] != "deleteFolder" {
		t.Errorf("destructive call order = %v, want [deleteNotesByFolder deleteFolder]", destructive)
	}
}

func TestDeleteFolder_NoteDeletionFailureAbortsWholeOperation(t *testing.T) {
	store := newFakeStore()
	store.deleteNotesErr = errStoreDown
	svc := newFolderServiceForTest(store)

	folderID := "folder-a"
	store.seedFolder(folderID, "user-1", "Cardiology")
	store.seedNote("note-1", "user-1", "Chest pain", &folderID)

	err := svc.DeleteFolder(context.Background(), folderID, "user-1")
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v, want wrapped errStoreDown", err)
	}

	// No partial cascade: both the folder and the note survive
	if _, ok := store.folders[folderID]; !ok {
		t.Error("folder was deleted despite note-deletion failure")
	}
	if _, ok := store.notes["note-1"]; !ok {
		t.Error("note was deleted despite the aborted cascade")
	}

	// The folder delete step must never have run
	for _, call := range store.calls {
		if call == "deleteFolder" {
			t.Error("folder delete was attempted after note deletion failed")
		}
	}
}

func TestDeleteFolder_FolderDeletionFailureRestoresNotes(t *testing.T) {
	store := newFakeStore()
	store.deleteFolderErr = errStoreDown
	svc := newFolderServiceForTest(store)

	folderID := "folder-a"
	store.seedFolder(folderID, "user-1", "Cardiology")
	store.seedNote("note-1", "user-1", "Chest pain", &folderID)

	err := svc.DeleteFolder(context.Background(), folderID, "user-1")
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v, want errStoreDown", err)
	}

	// The transaction rolled the note deletion back
	if _, ok := store.notes["note-1"]; !ok {
		t.Error("note deletion was not rolled back")
	}
}

func TestDeleteFolder_OtherUsersFolderIsNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newFolderServiceForTest(store)

	store.seedFolder("folder-a", "user-2", "Someone else's")

	err := svc.DeleteFolder(context.Background(), "folder-a", "user-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateFolder_RenameBumpsUpdatedAt(t *testing.T) {
	store := newFakeStore()
	svc := newFolderServiceForTest(store)

	store.seedFolder("folder-a", "user-1", "Old name")
	before := store.folders["folder-a"].UpdatedAt

	name := "New name"
	folder, err := svc.UpdateFolder(context.Background(), "folder-a", &services.UpdateFolderRequest{
		UserID: "user-1",
		Name:   &name,
	})
	if err != nil {
		t.Fatalf("UpdateFolder() error = %v", err)
	}
	if folder.Name != "New name" {
		t.Errorf("Name = %q, want %q", folder.Name, "New name")
	}
	if !folder.UpdatedAt.After(before) && !folder.UpdatedAt.Equal(before) {
		t.Errorf("UpdatedAt went backwards")
	}
}
