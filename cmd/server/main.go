package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"soapify/internal/auth"
	"soapify/internal/config"
	"soapify/internal/handler"
	"soapify/internal/llm"
	"soapify/internal/llm/prompts"
	"soapify/internal/middleware"
	"soapify/internal/repository/postgres"
	"soapify/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load and validate configuration before anything else: a missing
	// inference API key must abort boot, not fail per-request.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Load the system prompts baked into the binary
	promptRegistry, err := prompts.Load()
	if err != nil {
		log.Fatalf("Failed to load prompts: %v", err)
	}

	// Create the inference client
	llmClient, err := llm.NewClient(llm.Config{
		APIKey:     cfg.OpenAIAPIKey,
		ChatModel:  cfg.ChatModel,
		AudioModel: cfg.AudioModel,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create inference client: %v", err)
	}

	// Supabase admin client for profile metadata
	adminClient := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)

	// Create services
	folderService := service.NewFolderService(folderRepo, noteRepo, txManager, logger)
	noteService := service.NewNoteService(noteRepo, folderRepo, logger)
	soapService := service.NewSOAPService(llmClient, promptRegistry, logger)
	profileService := service.NewProfileService(adminClient, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	workspaceHandler := handler.NewWorkspaceHandler(folderService, noteService, logger)
	soapHandler := handler.NewSOAPHandler(soapService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Workspace view
	mux.HandleFunc("GET /api/workspace", workspaceHandler.GetWorkspace)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Note routes
	mux.HandleFunc("GET /api/notes", noteHandler.ListNotes)
	mux.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	mux.HandleFunc("GET /api/notes/{id}", noteHandler.GetNote)
	mux.HandleFunc("PATCH /api/notes/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.DeleteNote)
	mux.HandleFunc("POST /api/notes/{id}/move", noteHandler.MoveNote)

	// AI routes
	mux.HandleFunc("POST /api/ai/generate-soap", soapHandler.GenerateSOAP)
	mux.HandleFunc("POST /api/ai/explain-soap", soapHandler.ExplainSOAP)
	mux.HandleFunc("POST /api/ai/clinical-assistant", soapHandler.ClinicalAssistant)
	mux.HandleFunc("POST /api/ai/transcribe", soapHandler.Transcribe)

	// Profile routes
	mux.HandleFunc("GET /api/users/me/profile", profileHandler.GetProfile)
	mux.HandleFunc("PATCH /api/users/me/profile", profileHandler.UpdateProfile)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // Transcription uploads can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
