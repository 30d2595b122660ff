package router

import (
	"net/http"

	"drivegallery/internal/delivery/http/handler"
	"drivegallery/internal/delivery/http/middleware"
)

// Handlers holds all HTTP handlers. Drive and Gallery are nil until a
// token has been obtained in OAuth mode; their routes stay unregistered
// and the bootstrap flow remains reachable.
type Handlers struct {
	Drive   *handler.DriveHandler
	Gallery *handler.GalleryHandler
	OAuth   *handler.OAuthHandler
}

// Setup configures all routes for the application. staticDir is served
// at the root for the browser client.
func Setup(handlers Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	cors := middleware.CORS
	logging := middleware.Logging

	// Chain helper
	chain := func(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}

	// ==================
	// Drive file routes
	// ==================
	if handlers.Drive != nil {
		mux.HandleFunc("/api/drive/files", chain(handlers.Drive.List, logging, cors))
		mux.HandleFunc("/api/drive/files/", chain(handlers.Drive.FileByID, logging, cors))
		mux.HandleFunc("/api/drive/upload", chain(handlers.Drive.Upload, logging, cors))
	}

	// ==================
	// Gallery routes
	// ==================
	if handlers.Gallery != nil {
		mux.HandleFunc("/api/drive/3d-folders", chain(handlers.Gallery.Folders, logging, cors))
		mux.HandleFunc("/api/drive/image/", chain(handlers.Gallery.Image, logging, cors))
		mux.HandleFunc("/api/drive/create-uploads-folder", chain(handlers.Gallery.CreateUploadsFolder, logging, cors))
		mux.HandleFunc("/api/drive/save-description", chain(handlers.Gallery.SaveDescription, logging, cors))
		mux.HandleFunc("/api/drive/test-permissions", chain(handlers.Gallery.TestPermissions, logging, cors))
	}

	// ==================
	// OAuth bootstrap routes
	// ==================
	if handlers.OAuth != nil {
		mux.HandleFunc("/api/drive/auth-url", chain(handlers.OAuth.AuthURL, logging, cors))
		mux.HandleFunc("/api/drive/oauth2callback", chain(handlers.OAuth.Callback, logging))
	}

	// ==================
	// Browser client
	// ==================
	mux.HandleFunc("/3d-folders.html", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
	})
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	return mux
}
