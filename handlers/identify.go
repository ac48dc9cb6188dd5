package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/plantid"
	"github.com/camden-git/floracatalog/services"
)

// apiKeyHint is the user-actionable message for the missing-credential
// configuration error.
const apiKeyHint = "Plant identification requires a Plant.ID API key; configure it on the administration page."

type IdentifyHandler struct {
	Identifier *services.Identifier
}

// IdentifyUpload identifies species on an uploaded image, stores the image
// and creates a photo record with the qualifying relations attached.
func (ih *IdentifyHandler) IdentifyUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing file upload: "+err.Error())
		return
	}
	defer file.Close()

	apiKey := r.FormValue("api_key")
	location := r.FormValue("location")

	photo, candidates, err := ih.Identifier.IdentifyUpload(r.Context(), header.Filename, file, apiKey, location)
	if err != nil {
		ih.writeIdentifyError(w, err)
		return
	}

	resp := map[string]interface{}{"species": candidates}
	if photo != nil {
		resp["photo_id"] = photo.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// IdentifyExisting re-runs identification on a stored photo, replacing its
// relation set.
func (ih *IdentifyHandler) IdentifyExisting(w http.ResponseWriter, r *http.Request) {
	photoID, ok := parseIDParam(w, r, "photo_id")
	if !ok {
		return
	}

	apiKey := r.URL.Query().Get("api_key")

	candidates, err := ih.Identifier.IdentifyExisting(r.Context(), photoID, apiKey)
	if err != nil {
		ih.writeIdentifyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

// IdentifyBatch identifies species on a list of stored photos, collecting
// per-item errors without aborting the remaining items.
func (ih *IdentifyHandler) IdentifyBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhotoIDs []uint `json:"photo_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if len(req.PhotoIDs) == 0 {
		WriteAPIError(w, http.StatusBadRequest, "INVALID_REQUEST", "photo_ids must be a non-empty list")
		return
	}

	apiKey := r.URL.Query().Get("api_key")

	result, err := ih.Identifier.IdentifyBatch(r.Context(), req.PhotoIDs, apiKey)
	if err != nil {
		if errors.Is(err, services.ErrAllBatchItemsFailed) {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error":  "All identifications failed",
				"errors": result.Errors,
			})
			return
		}
		ih.writeIdentifyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (ih *IdentifyHandler) writeIdentifyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, plantid.ErrAPIKeyMissing):
		WriteAPIError(w, http.StatusBadRequest, "API_KEY_MISSING", apiKeyHint)
	case errors.Is(err, gorm.ErrRecordNotFound):
		WriteAPIError(w, http.StatusNotFound, "PHOTO_NOT_FOUND", "Photo not found")
	case errors.Is(err, services.ErrPhotoFileMissing):
		WriteAPIError(w, http.StatusNotFound, "PHOTO_FILE_MISSING", err.Error())
	default:
		log.Printf("Identification error: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "IDENTIFICATION_FAILED", "Identification failed: "+err.Error())
	}
}
