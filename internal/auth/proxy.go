package auth

import (
	"fmt"
	"net/http"
	stdhttputil "net/http/httputil"
	"net/url"

	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/httputil"
)

// NewProxy forwards every /api/auth/* request untouched to the auth service,
// which owns sign-in, sign-up and the rest of the credential lifecycle.
func NewProxy(baseURL string) (http.Handler, error) {
	target, err := url.Parse(baseURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid auth service url %q", baseURL)
	}

	proxy := stdhttputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logrus.WithError(err).WithField("path", r.URL.Path).Error("Auth service proxy failed")
		httputil.WriteError(w, http.StatusBadGateway, httputil.ErrCodeBadGateway, "Authentication service unavailable")
	}

	return proxy, nil
}
