package httpserver

import "net/http"

// Routes defines HTTP endpoints.
type Routes struct {
	Fetch  http.Handler
	Status http.Handler
	Health http.Handler
}

// NewRouter sets up HTTP routing.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Fetch != nil {
		mux.Handle("/fetch", method(http.MethodGet, routes.Fetch.ServeHTTP))
	}
	if routes.Status != nil {
		mux.Handle("/status", method(http.MethodGet, routes.Status.ServeHTTP))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health.ServeHTTP))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
