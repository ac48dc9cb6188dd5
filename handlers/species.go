package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
	"github.com/camden-git/floracatalog/repository"
)

type SpeciesHandler struct {
	Repo repository.SpeciesRepositoryInterface
}

func (sh *SpeciesHandler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	speciesList, err := sh.Repo.List(offset, limit)
	if err != nil {
		log.Printf("Error listing species: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve species"})
		return
	}
	if speciesList == nil {
		speciesList = []models.Species{}
	}
	writeJSON(w, http.StatusOK, speciesList)
}

func (sh *SpeciesHandler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := parseIDParam(w, r, "species_id")
	if !ok {
		return
	}

	species, err := sh.Repo.GetByID(speciesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Species not found"})
		} else {
			log.Printf("Error getting species %d: %v", speciesID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve species"})
		}
		return
	}

	writeJSON(w, http.StatusOK, species)
}

func (sh *SpeciesHandler) CreateSpecies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScientificName string  `json:"scientific_name"`
		CommonName     *string `json:"common_name"`
		Family         *string `json:"family"`
		LocalizedName  *string `json:"localized_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.ScientificName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: scientific_name"})
		return
	}

	species := &models.Species{
		ScientificName: req.ScientificName,
		CommonName:     req.CommonName,
		Family:         req.Family,
		LocalizedName:  req.LocalizedName,
	}
	if err := sh.Repo.Create(species); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") || errors.Is(err, gorm.ErrDuplicatedKey) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Species with this scientific name already exists"})
		} else {
			log.Printf("Error creating species '%s': %v", req.ScientificName, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create species"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, species)
}

func (sh *SpeciesHandler) UpdateSpecies(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := parseIDParam(w, r, "species_id")
	if !ok {
		return
	}

	var req struct {
		ScientificName *string `json:"scientific_name"`
		CommonName     *string `json:"common_name"`
		Family         *string `json:"family"`
		LocalizedName  *string `json:"localized_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}

	err := sh.Repo.Update(speciesID, req.ScientificName, req.CommonName, req.Family, req.LocalizedName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Species not found"})
		} else {
			log.Printf("Error updating species %d: %v", speciesID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update species"})
		}
		return
	}

	updated, err := sh.Repo.GetByID(speciesID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Species updated successfully"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (sh *SpeciesHandler) DeleteSpecies(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := parseIDParam(w, r, "species_id")
	if !ok {
		return
	}

	if err := sh.Repo.Delete(speciesID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Species not found"})
		} else {
			log.Printf("Error deleting species %d: %v", speciesID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete species"})
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
