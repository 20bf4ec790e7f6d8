package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/model"
)

// uuidParam parses the named URL parameter as a UUID. On failure it writes a
// 400 with message and returns false.
func uuidParam(w http.ResponseWriter, r *http.Request, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httputil.WriteBadRequest(w, message)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads ?page= and ?limit=. On failure it writes a 400 and returns false.
func pageParams(w http.ResponseWriter, r *http.Request) (model.Page, bool) {
	q := r.URL.Query()
	page, err := model.ParsePage(q.Get("page"), q.Get("limit"))
	if err != nil {
		httputil.WriteDomainError(w, err, "Invalid pagination")
		return model.Page{}, false
	}
	return page, true
}

// writeServiceError maps err to a response and logs it when it is a store failure.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *logrus.Entry, err error, fallback string) {
	if httputil.StatusFor(err) == http.StatusInternalServerError {
		log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).WithError(err).Error(fallback)
	}
	httputil.WriteDomainError(w, err, fallback)
}
