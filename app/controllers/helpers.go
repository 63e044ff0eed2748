// Package controllers holds the HTTP handlers. Each one binds and
// validates the body, calls a service or repository, and writes the
// JSON envelope.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aranya-labs/aranya/pkg/bind"
	"github.com/aranya-labs/aranya/pkg/response"
)

// bindJSON decodes and validates the request body into dest. On failure
// it writes the error response and returns false.
func bindJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	errs, err := bind.JSON(r, dest)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return false
	}
	return true
}

// pathID reads a numeric {param} from the URL, writing a 404 when it is
// missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, param string) (uint, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.NotFound(w)
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query param with a fallback.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
