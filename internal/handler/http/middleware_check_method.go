// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-file-vault/internal/utils"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path is known but the method is not. This handler
// answers 404 instead, so callers cannot tell which paths exist. A request
// the router can actually serve is passed through unchanged.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		writeNotFound(w)
	}
}

// withKnownRoute answers 404 for a method and path the router has no route
// for. It runs ahead of authentication in a group, so an anonymous caller
// gets the same 404 for a wrong method on a protected path as for a path
// that does not exist.
func withKnownRoute(router *chi.Mux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
				writeNotFound(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeNotFound(w http.ResponseWriter) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
