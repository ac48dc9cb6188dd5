package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/camden-git/floracatalog/models"
	"github.com/camden-git/floracatalog/repository"
)

type RelationHandler struct {
	Repo repository.RelationRepositoryInterface
}

func (rh *RelationHandler) ListRelations(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	relations, err := rh.Repo.List(offset, limit)
	if err != nil {
		log.Printf("Error listing relations: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve relations"})
		return
	}
	if relations == nil {
		relations = []models.PhotoSpeciesRelation{}
	}
	writeJSON(w, http.StatusOK, relations)
}

func (rh *RelationHandler) ListRelationsByPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, ok := parseIDParam(w, r, "photo_id")
	if !ok {
		return
	}

	relations, err := rh.Repo.ListByPhoto(photoID)
	if err != nil {
		log.Printf("Error listing relations for photo %d: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve relations"})
		return
	}
	if relations == nil {
		relations = []models.PhotoSpeciesRelation{}
	}
	writeJSON(w, http.StatusOK, relations)
}

func (rh *RelationHandler) ListRelationsBySpecies(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := parseIDParam(w, r, "species_id")
	if !ok {
		return
	}

	relations, err := rh.Repo.ListBySpecies(speciesID)
	if err != nil {
		log.Printf("Error listing relations for species %d: %v", speciesID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve relations"})
		return
	}
	if relations == nil {
		relations = []models.PhotoSpeciesRelation{}
	}
	writeJSON(w, http.StatusOK, relations)
}
