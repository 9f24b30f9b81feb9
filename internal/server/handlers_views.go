package server

import (
	"net/http"

	"buzzer/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Buzz()).ServeHTTP(w, r)
}

func (s *Server) handleHostView(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Host()).ServeHTTP(w, r)
}

func (s *Server) handleDisplayView(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Display()).ServeHTTP(w, r)
}
