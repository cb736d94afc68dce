// Package middlewares contiene los middlewares HTTP del service.
package middlewares

import "net/http"

// Middleware envuelve un http.Handler. Compatible con chi.Router.Use.
type Middleware func(http.Handler) http.Handler
