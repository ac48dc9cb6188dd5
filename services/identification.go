package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
	"github.com/camden-git/floracatalog/plantid"
	"github.com/camden-git/floracatalog/repository"
	"github.com/camden-git/floracatalog/storage"
)

// significanceThreshold is the minimum probability for a candidate to be
// recorded as a relation. Candidates at or below it are dropped.
const significanceThreshold = 0.5

// ErrPhotoFileMissing indicates the photo row exists but its stored file is
// gone from disk.
var ErrPhotoFileMissing = errors.New("photo file not found on disk")

// ErrAllBatchItemsFailed indicates every item of a non-empty identification
// batch failed.
var ErrAllBatchItemsFailed = errors.New("all batch identifications failed")

// RecognitionClient is the slice of the plantid client the pipeline needs.
type RecognitionClient interface {
	Identify(ctx context.Context, imageData []byte) (*plantid.Response, error)
}

// Identifier runs the species identification pipeline: recognition call,
// candidate extraction, species reconciliation and relation bookkeeping.
type Identifier struct {
	Photos    repository.PhotoRepositoryInterface
	Species   repository.SpeciesRepositoryInterface
	Relations repository.RelationRepositoryInterface
	Settings  repository.SettingRepositoryInterface
	Builder   *PhotoBuilder
	Store     *storage.LocalStorage

	// NewClient builds a recognition client for the resolved credential so
	// base URL and simulation mode stay explicit configuration.
	NewClient func(apiKey string) RecognitionClient
}

// BatchItemResult is the per-photo outcome of a successful batch item.
type BatchItemResult struct {
	PhotoID uint                `json:"photo_id"`
	Species []plantid.Candidate `json:"species"`
	Success bool                `json:"success"`
}

// BatchItemError records a failed batch item without aborting its siblings.
type BatchItemError struct {
	PhotoID uint   `json:"photo_id"`
	Error   string `json:"error"`
}

// BatchResult collects per-item outcomes of a batch identification, in input
// order.
type BatchResult struct {
	Results []BatchItemResult `json:"results"`
	Errors  []BatchItemError  `json:"errors"`
}

// clientForRequest resolves the service credential: an explicit override
// wins, otherwise the settings store is consulted. An empty resolved key is
// handed to the client, which decides between simulation and a configuration
// error.
func (s *Identifier) clientForRequest(apiKeyOverride string) RecognitionClient {
	apiKey := apiKeyOverride
	if apiKey == "" {
		key, err := s.Settings.PlantIDAPIKey()
		if err != nil {
			log.Printf("services: failed to read API key from settings: %v", err)
		} else {
			apiKey = key
		}
	}
	return s.NewClient(apiKey)
}

// IdentifyUpload identifies species on a freshly uploaded image, stores the
// file, creates the photo record and attaches qualifying relations. Storage
// and database failures after a successful recognition are logged and the
// candidates still returned, so the caller always sees the identification
// outcome.
func (s *Identifier) IdentifyUpload(ctx context.Context, filename string, file io.Reader, apiKeyOverride, location string) (*models.Photo, []plantid.Candidate, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	client := s.clientForRequest(apiKeyOverride)
	resp, err := client.Identify(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	candidates := plantid.ExtractCandidates(resp)
	log.Printf("services: identified %d species candidates for upload %s", len(candidates), filename)

	storedPath, err := s.Store.SaveOriginal(filename, bytes.NewReader(data))
	if err != nil {
		log.Printf("services: failed to store upload %s: %v", filename, err)
		return nil, candidates, nil
	}

	var userLocation *string
	if location != "" {
		userLocation = &location
	}
	now := time.Now().Format("2006-01-02 15:04:05")
	photo := s.Builder.Build(storedPath, &now, userLocation)

	if thumbPath, err := s.Store.GenerateThumbnail(storedPath); err != nil {
		log.Printf("services: failed to generate thumbnail for %s: %v", storedPath, err)
	} else {
		photo.ThumbnailPath = &thumbPath
	}

	if err := s.Photos.Create(photo); err != nil {
		log.Printf("services: failed to save photo record for %s: %v", storedPath, err)
		return nil, candidates, nil
	}

	s.attachRelations(photo.ID, candidates)
	return photo, candidates, nil
}

// IdentifyExisting re-runs identification on a stored photo, replacing its
// entire relation set with the new outcome. Old relations are removed before
// any new ones are inserted; a mid-insert failure leaves a partial new set,
// which is accepted best-effort behavior.
func (s *Identifier) IdentifyExisting(ctx context.Context, photoID uint, apiKeyOverride string) ([]plantid.Candidate, error) {
	photo, err := s.Photos.GetByID(photoID)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(photo.FilePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPhotoFileMissing, photo.FilePath)
	}

	data, err := os.ReadFile(photo.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo file %s: %w", photo.FilePath, err)
	}

	client := s.clientForRequest(apiKeyOverride)
	resp, err := client.Identify(ctx, data)
	if err != nil {
		return nil, err
	}
	candidates := plantid.ExtractCandidates(resp)
	log.Printf("services: identified %d species candidates for photo ID %d", len(candidates), photoID)

	deleted, err := s.Relations.DeleteByPhoto(photoID)
	if err != nil {
		// without a clean slate the old and new relation sets would be
		// ambiguous, so skip persistence and still return the candidates
		log.Printf("services: failed to remove old relations for photo ID %d: %v", photoID, err)
		return candidates, nil
	}
	if deleted > 0 {
		log.Printf("services: removed %d old relations for photo ID %d", deleted, photoID)
	}

	s.attachRelations(photoID, candidates)
	return candidates, nil
}

// IdentifyBatch identifies species on multiple stored photos sequentially.
// Per-item failures are collected in input order and do not abort the
// remaining items; the batch as a whole fails only when a configuration
// error aborts it or every single item failed.
func (s *Identifier) IdentifyBatch(ctx context.Context, photoIDs []uint, apiKeyOverride string) (*BatchResult, error) {
	result := &BatchResult{
		Results: []BatchItemResult{},
		Errors:  []BatchItemError{},
	}

	log.Printf("services: starting batch identification of %d photos", len(photoIDs))
	for _, photoID := range photoIDs {
		candidates, err := s.IdentifyExisting(ctx, photoID, apiKeyOverride)
		if err != nil {
			// a missing credential categorically fails every item, surface it
			if errors.Is(err, plantid.ErrAPIKeyMissing) {
				return nil, err
			}
			msg := err.Error()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				msg = "photo not found"
			}
			result.Errors = append(result.Errors, BatchItemError{PhotoID: photoID, Error: msg})
			continue
		}
		result.Results = append(result.Results, BatchItemResult{
			PhotoID: photoID,
			Species: candidates,
			Success: true,
		})
	}

	if len(photoIDs) > 0 && len(result.Errors) == len(photoIDs) {
		return result, ErrAllBatchItemsFailed
	}
	return result, nil
}

// attachRelations reconciles each qualifying candidate against the species
// catalog and records a relation. The candidate's rank decides the category:
// index 0 is "primary", every later index "secondary", regardless of the
// absolute confidence values. Per-candidate persistence failures are logged
// and skipped so the rest of the set still lands.
func (s *Identifier) attachRelations(photoID uint, candidates []plantid.Candidate) {
	for i, candidate := range candidates {
		if candidate.Probability <= significanceThreshold {
			continue
		}

		species := &models.Species{ScientificName: candidate.ScientificName}
		if len(candidate.CommonNames) > 0 {
			commonName := candidate.CommonNames[0]
			species.CommonName = &commonName
		}
		if candidate.Family != "" {
			family := candidate.Family
			species.Family = &family
		}
		if localized := plantid.LocalizedCommonName(candidate.ScientificName, candidate.CommonNames); localized != "" {
			species.LocalizedName = &localized
		}

		resolved, err := s.Species.FindOrCreate(species)
		if err != nil {
			log.Printf("services: failed to reconcile species %q: %v", candidate.ScientificName, err)
			continue
		}

		category := models.RelationCategorySecondary
		if i == 0 {
			category = models.RelationCategoryPrimary
		}
		relation := &models.PhotoSpeciesRelation{
			PhotoID:   photoID,
			SpeciesID: resolved.ID,
			Category:  category,
		}
		if err := s.Relations.Create(relation); err != nil {
			log.Printf("services: failed to create relation photo=%d species=%d: %v", photoID, resolved.ID, err)
			continue
		}
		log.Printf("services: linked photo ID %d with species ID %d, category: %s", photoID, resolved.ID, category)
	}
}
