package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/camden-git/floracatalog/storage"
)

// AssetServer creates a handler to serve stored image files from a specific
// directory. It expects the request path to contain the filename after the
// route prefix. Example usage in main.go:
//
//	r.Get("/api/originals/*", AssetServer(store.OriginalsDir(), "originals"))
//	r.Get("/api/thumbnails/*", AssetServer(store.ThumbnailsDir(), "thumbnails"))
//
// where the route prefix matches the subDir name.
func AssetServer(assetDir, subDir string) http.HandlerFunc {
	assetDir = filepath.Clean(assetDir)
	log.Printf("Serving assets for '/api/%s/*' from directory: %s", subDir, assetDir)

	return func(w http.ResponseWriter, r *http.Request) {
		routePrefix := "/api/" + subDir + "/"
		relativePath := strings.TrimPrefix(r.URL.Path, routePrefix)

		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		requestedAssetPath := filepath.Join(assetDir, relativePath)
		cleanedAssetPath := filepath.Clean(requestedAssetPath)

		if !strings.HasPrefix(cleanedAssetPath, assetDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			log.Printf("SECURITY: Attempted asset access outside designated directory: Request='%s', Resolved='%s', Allowed Base='%s'",
				r.URL.Path, cleanedAssetPath, assetDir)
			return
		}

		if _, err := os.Stat(cleanedAssetPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Printf("Error stating asset file %s: %v", cleanedAssetPath, err)
			return
		}

		cacheDuration := 24 * time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("Expires", time.Now().Add(cacheDuration).Format(http.TimeFormat))

		http.ServeFile(w, r, cleanedAssetPath)
	}
}

// StorageHandler exposes a listing of the stored photo originals.
type StorageHandler struct {
	Store *storage.LocalStorage
}

// ListFiles returns the filenames of every stored original in natural sort
// order.
func (sh *StorageHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	names, err := sh.Store.ListOriginals()
	if err != nil {
		log.Printf("Error listing stored files: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to list stored files"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"files": names})
}
