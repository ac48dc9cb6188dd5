package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
	"github.com/camden-git/floracatalog/repository"
	"github.com/camden-git/floracatalog/services"
	"github.com/camden-git/floracatalog/storage"
)

type PhotoHandler struct {
	Repo         repository.PhotoRepositoryInterface
	SpeciesRepo  repository.SpeciesRepositoryInterface
	RelationRepo repository.RelationRepositoryInterface
	Builder      *services.PhotoBuilder
	Store        *storage.LocalStorage
}

// photoSpeciesInfo is a species entry embedded in a photo response, carrying
// the relation's category alongside the catalog fields.
type photoSpeciesInfo struct {
	ID               uint    `json:"id"`
	ScientificName   string  `json:"scientific_name"`
	CommonName       *string `json:"common_name,omitempty"`
	Family           *string `json:"family,omitempty"`
	LocalizedName    *string `json:"localized_name,omitempty"`
	RelationCategory string  `json:"relation_category,omitempty"`
	RelationID       uint    `json:"relation_id,omitempty"`
}

type photoResponse struct {
	ID            uint               `json:"id"`
	FilePath      string             `json:"file_path"`
	Date          *string            `json:"date,omitempty"`
	Location      *string            `json:"location,omitempty"`
	GPSLatitude   *float64           `json:"gps_latitude,omitempty"`
	GPSLongitude  *float64           `json:"gps_longitude,omitempty"`
	GPSAltitude   *float64           `json:"gps_altitude,omitempty"`
	CameraMake    *string            `json:"camera_make,omitempty"`
	CameraModel   *string            `json:"camera_model,omitempty"`
	ThumbnailPath *string            `json:"thumbnail_path,omitempty"`
	Species       []photoSpeciesInfo `json:"species"`
}

func (ph *PhotoHandler) toResponse(photo *models.Photo) photoResponse {
	resp := photoResponse{
		ID:            photo.ID,
		FilePath:      photo.FilePath,
		Date:          photo.Date,
		Location:      photo.Location,
		GPSLatitude:   photo.GPSLatitude,
		GPSLongitude:  photo.GPSLongitude,
		GPSAltitude:   photo.GPSAltitude,
		CameraMake:    photo.CameraMake,
		CameraModel:   photo.CameraModel,
		ThumbnailPath: photo.ThumbnailPath,
		Species:       []photoSpeciesInfo{},
	}

	relations, err := ph.RelationRepo.ListByPhoto(photo.ID)
	if err != nil {
		log.Printf("Error listing relations for photo %d: %v", photo.ID, err)
		return resp
	}
	for _, relation := range relations {
		species, err := ph.SpeciesRepo.GetByID(relation.SpeciesID)
		if err != nil {
			log.Printf("Error fetching species %d for photo %d: %v", relation.SpeciesID, photo.ID, err)
			continue
		}
		resp.Species = append(resp.Species, photoSpeciesInfo{
			ID:               species.ID,
			ScientificName:   species.ScientificName,
			CommonName:       species.CommonName,
			Family:           species.Family,
			LocalizedName:    species.LocalizedName,
			RelationCategory: relation.Category,
			RelationID:       relation.ID,
		})
	}
	return resp
}

// ListPhotos returns photos filtered by the optional species_id, species,
// location and date query parameters.
func (ph *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	filter := repository.PhotoFilter{
		SpeciesName: r.URL.Query().Get("species"),
		Location:    r.URL.Query().Get("location"),
		Date:        r.URL.Query().Get("date"),
	}
	if idStr := r.URL.Query().Get("species_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid species_id format"})
			return
		}
		speciesID := uint(id)
		filter.SpeciesID = &speciesID
	}
	if offStr := r.URL.Query().Get("offset"); offStr != "" {
		if off, err := strconv.Atoi(offStr); err == nil && off >= 0 {
			filter.Offset = off
		}
	}
	if limStr := r.URL.Query().Get("limit"); limStr != "" {
		if lim, err := strconv.Atoi(limStr); err == nil && lim > 0 {
			filter.Limit = lim
		}
	}

	photos, err := ph.Repo.Browse(filter)
	if err != nil {
		log.Printf("Error browsing photos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve photos"})
		return
	}

	responses := make([]photoResponse, 0, len(photos))
	for i := range photos {
		responses = append(responses, ph.toResponse(&photos[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (ph *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, ok := parseIDParam(w, r, "photo_id")
	if !ok {
		return
	}

	photo, err := ph.Repo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Photo not found"})
		} else {
			log.Printf("Error getting photo %d: %v", photoID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve photo"})
		}
		return
	}

	writeJSON(w, http.StatusOK, ph.toResponse(photo))
}

func (ph *PhotoHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, ok := parseIDParam(w, r, "photo_id")
	if !ok {
		return
	}

	var req struct {
		Date         *string  `json:"date"`
		Location     *string  `json:"location"`
		GPSLatitude  *float64 `json:"gps_latitude"`
		GPSLongitude *float64 `json:"gps_longitude"`
		GPSAltitude  *float64 `json:"gps_altitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}

	err := ph.Repo.Update(photoID, req.Date, req.Location, req.GPSLatitude, req.GPSLongitude, req.GPSAltitude)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Photo not found"})
		} else {
			log.Printf("Error updating photo %d: %v", photoID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update photo"})
		}
		return
	}

	photo, err := ph.Repo.GetByID(photoID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Photo updated successfully"})
		return
	}
	writeJSON(w, http.StatusOK, ph.toResponse(photo))
}

func (ph *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, ok := parseIDParam(w, r, "photo_id")
	if !ok {
		return
	}

	photo, err := ph.Repo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Photo not found"})
		} else {
			log.Printf("Error getting photo %d before delete: %v", photoID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete photo"})
		}
		return
	}

	if err := ph.Repo.Delete(photoID); err != nil {
		log.Printf("Error deleting photo %d: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete photo"})
		return
	}

	if r.URL.Query().Get("delete_file") == "true" {
		if err := ph.Store.Delete(photo.FilePath); err != nil {
			log.Printf("Error deleting file %s: %v", photo.FilePath, err)
		}
		if photo.ThumbnailPath != nil {
			if err := ph.Store.Delete(*photo.ThumbnailPath); err != nil {
				log.Printf("Error deleting thumbnail %s: %v", *photo.ThumbnailPath, err)
			}
		}
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// UploadPhoto stores an uploaded image and creates its photo record, merging
// user-supplied date/location with extracted metadata.
func (ph *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing file upload: " + err.Error()})
		return
	}
	defer file.Close()

	storedPath, err := ph.Store.SaveOriginal(header.Filename, file)
	if err != nil {
		log.Printf("Error storing upload %s: %v", header.Filename, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store uploaded file"})
		return
	}

	var userDate, userLocation *string
	if v := r.FormValue("date"); v != "" {
		userDate = &v
	}
	if v := r.FormValue("location"); v != "" {
		userLocation = &v
	}

	photo := ph.Builder.Build(storedPath, userDate, userLocation)

	if thumbPath, err := ph.Store.GenerateThumbnail(storedPath); err != nil {
		log.Printf("Error generating thumbnail for %s: %v", storedPath, err)
	} else {
		photo.ThumbnailPath = &thumbPath
	}

	if err := ph.Repo.Create(photo); err != nil {
		log.Printf("Error creating photo record for %s: %v", storedPath, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create photo record"})
		return
	}

	writeJSON(w, http.StatusCreated, ph.toResponse(photo))
}

// ExtractMetadata runs the metadata normalizer on an uploaded file without
// creating any records, returning the extracted facts.
func (ph *PhotoHandler) ExtractMetadata(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing file upload: " + err.Error()})
		return
	}
	defer file.Close()

	tempFile, err := os.CreateTemp("", "metadata-*-"+filepath.Base(header.Filename))
	if err != nil {
		log.Printf("Error creating temp file for metadata extraction: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process uploaded file"})
		return
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.ReadFrom(file); err != nil {
		tempFile.Close()
		log.Printf("Error writing temp file %s: %v", tempPath, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process uploaded file"})
		return
	}
	tempFile.Close()

	photo := ph.Builder.Build(tempPath, nil, nil)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":          photo.Date,
		"location":      photo.Location,
		"gps_latitude":  photo.GPSLatitude,
		"gps_longitude": photo.GPSLongitude,
		"gps_altitude":  photo.GPSAltitude,
		"camera_make":   photo.CameraMake,
		"camera_model":  photo.CameraModel,
	})
}

// parseIDParam parses a numeric chi URL parameter, writing a 400 response on
// failure.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
