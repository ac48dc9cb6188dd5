package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/floracatalog/config"
	"github.com/camden-git/floracatalog/database"
	"github.com/camden-git/floracatalog/handlers"
	"github.com/camden-git/floracatalog/metadata"
	"github.com/camden-git/floracatalog/plantid"
	"github.com/camden-git/floracatalog/repository"
	"github.com/camden-git/floracatalog/services"
	"github.com/camden-git/floracatalog/storage"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	if dbDir := filepath.Dir(cfg.DatabasePath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create database directory %s: %v", dbDir, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}

	store, err := storage.NewLocalStorage(cfg.FileStoragePath, cfg.OriginalsPath, cfg.ThumbnailsPath, cfg.ThumbnailMaxSize)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize file storage: %v", err)
	}

	var extractor metadata.Extractor
	exifTool := metadata.NewExifTool()
	if exifTool.Available() {
		extractor = exifTool
		log.Printf("Using exiftool for metadata extraction")
	} else {
		extractor = metadata.NewExifFallback()
		log.Printf("exiftool not found, falling back to built-in EXIF parsing")
	}

	photoRepo := repository.NewPhotoRepository(db)
	speciesRepo := repository.NewSpeciesRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	builder := services.NewPhotoBuilder(extractor)
	identifier := &services.Identifier{
		Photos:    photoRepo,
		Species:   speciesRepo,
		Relations: relationRepo,
		Settings:  settingRepo,
		Builder:   builder,
		Store:     store,
		NewClient: func(apiKey string) services.RecognitionClient {
			if apiKey == "" {
				apiKey = cfg.PlantIDAPIKey
			}
			client := plantid.NewClient(apiKey)
			client.BaseURL = cfg.PlantIDBaseURL
			client.Language = cfg.PlantIDLang
			client.Simulate = cfg.SimulationMode
			return client
		},
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing originals in: %s", cfg.OriginalsPath)
	log.Printf("Storing thumbnails in: %s", cfg.ThumbnailsPath)
	log.Printf("Thumbnail max size (longest side): %dpx", cfg.ThumbnailMaxSize)
	if cfg.SimulationMode {
		log.Printf("Plant.ID simulation mode enabled")
	}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	photoHandler := &handlers.PhotoHandler{Repo: photoRepo, SpeciesRepo: speciesRepo, RelationRepo: relationRepo, Builder: builder, Store: store}
	speciesHandler := &handlers.SpeciesHandler{Repo: speciesRepo}
	relationHandler := &handlers.RelationHandler{Repo: relationRepo}
	settingHandler := &handlers.SettingHandler{Repo: settingRepo}
	identifyHandler := &handlers.IdentifyHandler{Identifier: identifier}
	storageHandler := &handlers.StorageHandler{Store: store}

	r.Route("/api", func(r chi.Router) {
		r.Route("/photos", func(r chi.Router) {
			r.Get("/", photoHandler.ListPhotos)
			r.Post("/upload", photoHandler.UploadPhoto)
			r.Post("/extract-metadata", photoHandler.ExtractMetadata)
			r.Route("/{photo_id}", func(r chi.Router) {
				r.Get("/", photoHandler.GetPhoto)
				r.Put("/", photoHandler.UpdatePhoto)
				r.Delete("/", photoHandler.DeletePhoto)
			})
		})

		r.Route("/species", func(r chi.Router) {
			r.Get("/", speciesHandler.ListSpecies)
			r.Post("/", speciesHandler.CreateSpecies)
			r.Route("/{species_id}", func(r chi.Router) {
				r.Get("/", speciesHandler.GetSpecies)
				r.Put("/", speciesHandler.UpdateSpecies)
				r.Delete("/", speciesHandler.DeleteSpecies)
			})
		})

		r.Route("/relations", func(r chi.Router) {
			r.Get("/", relationHandler.ListRelations)
			r.Get("/photo/{photo_id}", relationHandler.ListRelationsByPhoto)
			r.Get("/species/{species_id}", relationHandler.ListRelationsBySpecies)
		})

		r.Route("/identify", func(r chi.Router) {
			r.Post("/", identifyHandler.IdentifyUpload)
			r.Post("/existing/{photo_id}", identifyHandler.IdentifyExisting)
			r.Post("/batch", identifyHandler.IdentifyBatch)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingHandler.ListSettings)
			r.Post("/", settingHandler.CreateSetting)
			r.Route("/{key}", func(r chi.Router) {
				r.Get("/", settingHandler.GetSetting)
				r.Put("/", settingHandler.UpdateSetting)
				r.Delete("/", settingHandler.DeleteSetting)
			})
		})

		r.Get("/storage", storageHandler.ListFiles)

		originalsSubDir := filepath.Base(cfg.OriginalsPath)
		r.Get(fmt.Sprintf("/%s/*", originalsSubDir), handlers.AssetServer(cfg.OriginalsPath, originalsSubDir))
		log.Printf("Registered originals server at /api/%s/*", originalsSubDir)

		thumbnailSubDir := filepath.Base(cfg.ThumbnailsPath)
		r.Get(fmt.Sprintf("/%s/*", thumbnailSubDir), handlers.AssetServer(cfg.ThumbnailsPath, thumbnailSubDir))
		log.Printf("Registered thumbnail server at /api/%s/*", thumbnailSubDir)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
