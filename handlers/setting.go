package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
	"github.com/camden-git/floracatalog/repository"
)

type SettingHandler struct {
	Repo repository.SettingRepositoryInterface
}

func (sh *SettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := sh.Repo.List()
	if err != nil {
		log.Printf("Error listing settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve settings"})
		return
	}
	if settings == nil {
		settings = []models.AppSetting{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"settings": settings})
}

func (sh *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	setting, err := sh.Repo.Get(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Setting not found"})
		} else {
			log.Printf("Error getting setting %q: %v", key, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve setting"})
		}
		return
	}

	writeJSON(w, http.StatusOK, setting)
}

// UpdateSetting updates a setting's value, creating the setting when it does
// not exist yet.
func (sh *SettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req struct {
		Value       *string `json:"value"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Value == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: value"})
		return
	}

	setting, err := sh.Repo.Upsert(key, *req.Value, req.Description)
	if err != nil {
		log.Printf("Error upserting setting %q: %v", key, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update setting"})
		return
	}

	writeJSON(w, http.StatusOK, setting)
}

func (sh *SettingHandler) CreateSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key         string  `json:"key"`
		Value       string  `json:"value"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: key"})
		return
	}

	if _, err := sh.Repo.Get(req.Key); err == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Setting with this key already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking setting %q before create: %v", req.Key, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create setting"})
		return
	}

	setting := &models.AppSetting{
		Key:         req.Key,
		Value:       &req.Value,
		Description: req.Description,
	}
	if err := sh.Repo.Create(setting); err != nil {
		log.Printf("Error creating setting %q: %v", req.Key, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create setting"})
		return
	}

	writeJSON(w, http.StatusCreated, setting)
}

func (sh *SettingHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := sh.Repo.Delete(key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Setting not found"})
		} else {
			log.Printf("Error deleting setting %q: %v", key, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete setting"})
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
