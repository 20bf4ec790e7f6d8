package handler

import (
	_ "embed"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"

	"socialhub_backend/internal/httputil"
)

// OpenAPIPath is where the OpenAPI document is served.
const OpenAPIPath = "/api/v1/openapi.json"

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPI handles GET /api/v1/openapi.json
func OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIDocument)
}

// DocsUI serves the Swagger UI under prefix, pointed at the OpenAPI document.
// Requests for the bare prefix are redirected to its index page.
func DocsUI(prefix string) http.Handler {
	prefix = strings.TrimSuffix(prefix, "/")
	ui := httpSwagger.Handler(httpSwagger.URL(OpenAPIPath))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == prefix || r.URL.Path == prefix+"/" {
			http.Redirect(w, r, prefix+"/index.html", http.StatusMovedPermanently)
			return
		}
		ui.ServeHTTP(w, r)
	})
}

// BasicAuth guards next with a username and a bcrypt password hash.
func BasicAuth(username, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != username ||
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="api docs", charset="UTF-8"`)
				httputil.WriteUnauthorized(w, "Invalid documentation credentials")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
