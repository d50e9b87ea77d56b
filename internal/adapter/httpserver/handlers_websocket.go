package httpserver

import (
	"net/http"

	"github.com/centrifugal/centrifuge"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) registerWebsocketRoutes() {
	if s.websocketHandler == nil {
		return
	}
	s.echo.GET("/connection/websocket", echo.WrapHandler(centrifugeAuthMiddleware(s.websocketHandler)))
}

// centrifugeAuthMiddleware passes the surface id from the query string to
// Centrifuge as the connection's user id.
func centrifugeAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		surfaceID := r.URL.Query().Get("surface")
		if surfaceID == "" {
			http.Error(w, "missing surface parameter", http.StatusBadRequest)
			return
		}

		if _, err := uuid.Parse(surfaceID); err != nil {
			http.Error(w, "invalid surface UUID", http.StatusBadRequest)
			return
		}

		cred := &centrifuge.Credentials{UserID: surfaceID}
		r = r.WithContext(centrifuge.SetCredentials(r.Context(), cred))

		next.ServeHTTP(w, r)
	})
}
