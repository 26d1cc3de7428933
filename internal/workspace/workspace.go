// Package workspace derives the display-ready aggregates for the user's
// folders and notes: per-folder note counts, relative timestamps, and
// search filtering. Everything here is a pure transformation of listed
// records; nothing touches the store.
package workspace

import (
	"sort"
	"strings"
	"time"

	"soapify/internal/domain/models"
)

// FolderView is a folder decorated for display.
type FolderView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Notes       int       `json:"notes"`
	LastUpdated string    `json:"last_updated"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoteView is a note decorated for display.
type NoteView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	FolderID    *string   `json:"folder_id"`
	LastUpdated string    `json:"last_updated"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoteCounts counts notes per folder id. Every folder in folders gets an
// entry, so empty folders report zero rather than a missing key.
func NoteCounts(folders []models.Folder, notes []models.Note) map[string]int {
	counts := make(map[string]int, len(folders))
	for _, f := range folders {
		counts[f.ID] = 0
	}
	for _, n := range notes {
		if n.FolderID != nil {
			counts[*n.FolderID]++
		}
	}
	return counts
}

// BuildFolderViews decorates folders with note counts and relative times.
func BuildFolderViews(folders []models.Folder, notes []models.Note, now time.Time) []FolderView {
	counts := NoteCounts(folders, notes)
	views := make([]FolderView, 0, len(folders))
	for _, f := range folders {
		updated := f.UpdatedAt
		view := FolderView{
			ID:          f.ID,
			Name:        f.Name,
			Notes:       counts[f.ID],
			LastUpdated: FormatTimeAgo(&updated, now),
			UpdatedAt:   updated,
		}
		if f.Description != nil {
			view.Description = *f.Description
		}
		views = append(views, view)
	}
	return views
}

// BuildNoteViews decorates notes with relative times.
func BuildNoteViews(notes []models.Note, now time.Time) []NoteView {
	views := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		updated := n.UpdatedAt
		views = append(views, NoteView{
			ID:          n.ID,
			Title:       n.Title,
			FolderID:    n.FolderID,
			LastUpdated: FormatTimeAgo(&updated, now),
			UpdatedAt:   updated,
		})
	}
	return views
}

// FilterFolders applies a case-insensitive substring match over folder
// name, description, and the formatted relative-time string. An empty
// query returns everything. Results always come back sorted last-updated
// descending, filtered or not.
func FilterFolders(views []FolderView, query string) []FolderView {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]FolderView, 0, len(views))
	for _, v := range views {
		if query == "" || matchesFolder(v, query) {
			filtered = append(filtered, v)
		}
	}

	sortByUpdatedDesc(filtered, func(v FolderView) time.Time { return v.UpdatedAt })
	return filtered
}

// FilterNotes applies a case-insensitive substring match over note title
// and the formatted relative-time string, with the same sorting contract
// as FilterFolders.
func FilterNotes(views []NoteView, query string) []NoteView {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]NoteView, 0, len(views))
	for _, v := range views {
		if query == "" || matchesNote(v, query) {
			filtered = append(filtered, v)
		}
	}

	sortByUpdatedDesc(filtered, func(v NoteView) time.Time { return v.UpdatedAt })
	return filtered
}

func matchesFolder(v FolderView, query string) bool {
	return strings.Contains(strings.ToLower(v.Name), query) ||
		strings.Contains(strings.ToLower(v.Description), query) ||
		strings.Contains(strings.ToLower(v.LastUpdated), query)
}

func matchesNote(v NoteView, query string) bool {
	return strings.Contains(strings.ToLower(v.Title), query) ||
		strings.Contains(strings.ToLower(v.LastUpdated), query)
}

func sortByUpdatedDesc[T any](items []T, updatedAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return updatedAt(items[i]).After(updatedAt(items[j]))
	})
}
