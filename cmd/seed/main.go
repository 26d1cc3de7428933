// Command seed provisions a development database: schema, a confirmed
// test clinician, and a handful of sample folders and notes to click
// around in.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"soapify/internal/auth"
	"soapify/internal/config"
	"soapify/internal/domain/models"
	"soapify/internal/domain/services"
	"soapify/internal/repository/postgres"
	"soapify/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	// Recreate the test clinician through the Supabase admin API so the
	// account is confirmed and signable-in immediately.
	admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)

	if err := admin.DeleteUserByEmail(ctx, cfg.TestUserEmail); err != nil {
		log.Fatalf("Failed to remove stale test user: %v", err)
	}

	userID, err := admin.CreateUser(ctx, cfg.TestUserEmail, cfg.TestUserPassword)
	if err != nil {
		log.Fatalf("Failed to create test user: %v", err)
	}
	if _, err := uuid.Parse(userID); err != nil {
		log.Fatalf("Admin API returned a non-UUID user id %q: %v", userID, err)
	}
	log.Printf("Test user ready: %s (%s)", cfg.TestUserEmail, userID)

	// Give the test clinician a usable profile
	profile := &models.Profile{
		FirstName:      "Sarah",
		LastName:       "Chen",
		Title:          models.DefaultProfileTitle,
		Specialization: "Family Medicine",
		License:        "MD-482913",
	}
	if _, err := admin.UpdateUserMetadata(ctx, userID, profile.Metadata()); err != nil {
		log.Fatalf("Failed to set test user profile: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	folderService := service.NewFolderService(folderRepo, noteRepo, txManager, logger)
	noteService := service.NewNoteService(noteRepo, folderRepo, logger)

	log.Println("Seeding folders and notes...")
	if err := seedSampleData(ctx, folderService, noteService, userID); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}

	log.Println("Done")
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// No ON DELETE action on folder_id: folder deletion removes member
	// notes explicitly inside one transaction, and the constraint exists
	// to catch any path that forgets to.
	createNotes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Notes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			folder_id UUID REFERENCES ` + tables.Folders + `(id),
			title VARCHAR(255) NOT NULL,
			content JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createNotes); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_user ON ` + tables.Folders + `(user_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_user ON ` + tables.Notes + `(user_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_folder ON ` + tables.Notes + `(folder_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			return err
		}
	}

	return nil
}

func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	// Notes reference folders, so they go first
	for _, table := range []string{tables.Notes, tables.Folders} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}

func seedSampleData(
	ctx context.Context,
	folders services.FolderService,
	notes services.NoteService,
	userID string,
) error {
	cardiologyDesc := "Cardiac consults and follow-ups"
	cardiology, err := folders.CreateFolder(ctx, &services.CreateFolderRequest{
		UserID:      userID,
		Name:        "Cardiology",
		Description: &cardiologyDesc,
	})
	if err != nil {
		return err
	}

	routine, err := folders.CreateFolder(ctx, &services.CreateFolderRequest{
		UserID: userID,
		Name:   "Routine Checkups",
	})
	if err != nil {
		return err
	}

	samples := []struct {
		title    string
		folderID *string
		content  models.SOAPContent
	}{
		{
			title:    "Chest pain follow-up",
			folderID: &cardiology.ID,
			content: models.SOAPContent{
				Subjective: "Patient reports intermittent chest tightness on exertion, resolving with rest. No radiation, no dyspnea at rest.",
				Objective:  "BP 138/86, HR 74 regular. Heart sounds normal, no murmurs. ECG shows normal sinus rhythm.",
				Assessment: "Stable angina, low risk by history and exam.",
				Plan:       "Start low-dose aspirin, schedule stress test, follow up in 2 weeks.",
			},
		},
		{
			title:    "Annual physical - healthy adult",
			folderID: &routine.ID,
			content: models.SOAPContent{
				Subjective: "No complaints. Exercises three times weekly, non-smoker.",
				Objective:  "Vitals within normal limits. Exam unremarkable.",
				Assessment: "Healthy adult, routine maintenance.",
				Plan:       "Routine labs, return in one year.",
			},
		},
		{
			// A quick-created blank note sitting at workspace level
			title: "",
		},
	}

	for _, s := range samples {
		content := s.content
		req := &services.CreateNoteRequest{
			UserID:   userID,
			Title:    s.title,
			FolderID: s.folderID,
		}
		if !content.IsEmpty() {
			req.Content = &content
		}
		if _, err := notes.CreateNote(ctx, req); err != nil {
			return err
		}
	}

	return nil
}
