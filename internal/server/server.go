package server

import (
	"net/http"

	"buzzer/internal/arbiter"
	"buzzer/internal/config"
)

type Server struct {
	arbiter *arbiter.Arbiter
	cfg     config.Config
}

func New(arb *arbiter.Arbiter, cfg config.Config) *Server {
	return &Server{
		arbiter: arb,
		cfg:     cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /host", s.handleHostView)
	mux.HandleFunc("GET /display", s.handleDisplayView)
	mux.HandleFunc("POST /api/buzz", s.handleBuzz)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
