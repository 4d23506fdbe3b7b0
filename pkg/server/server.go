// Package server exposes the conversion pipeline over HTTP, wire-compatible
// with the hosted conversion service: GET / and /health for liveness, POST
// /convert for work, permissive CORS throughout, errors as {"detail": ...}.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/colorpage/colorpage/pkg/convert"
	"github.com/colorpage/colorpage/pkg/lineart"
)

// maxRequestBytes caps /convert request bodies. A 32 MiB body fits any photo
// a phone produces with room for base64 overhead.
const maxRequestBytes = 32 << 20

// Server handles the conversion endpoints on top of a Converter.
type Server struct {
	engine convert.Converter
}

// New returns a server backed by the in-process pipeline.
func New() *Server {
	return &Server{engine: convert.Local{}}
}

// Handler builds the route table with CORS applied to every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/convert", s.handleConvert)
	return withCORS(mux)
}

// ListenAndServe runs the service until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"detail": msg})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "colorpage"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// convertRequest mirrors the service's JSON contract. Fields a client leaves
// out keep the defaults they are initialized with before decoding.
type convertRequest struct {
	Image      string `json:"image"`
	Threshold  int    `json:"threshold"`
	BlurPasses int    `json:"blur_passes"`
	Thickness  int    `json:"thickness"`
	MaxDim     int    `json:"max_dim"`
}

type convertResponse struct {
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	defaults := lineart.Defaults()
	req := convertRequest{
		Threshold:  defaults.Threshold,
		BlurPasses: defaults.BlurPasses,
		Thickness:  defaults.Thickness,
		MaxDim:     defaults.MaxDim,
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	src, err := convert.DecodeDataURL(req.Image)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not decode image data")
		return
	}
	opts := lineart.Options{
		Threshold:  req.Threshold,
		BlurPasses: req.BlurPasses,
		Thickness:  req.Thickness,
		MaxDim:     req.MaxDim,
	}.Clamp()

	res, err := s.engine.Convert(r.Context(), src, opts)
	if err != nil {
		if errors.Is(err, convert.ErrInvalidImage) {
			writeError(w, http.StatusBadRequest, "could not decode image data")
			return
		}
		log.Printf("convert: %v", err)
		writeError(w, http.StatusInternalServerError, "conversion failed")
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Image:  convert.EncodeDataURL(res.PNG),
		Width:  res.Width,
		Height: res.Height,
	})
}
