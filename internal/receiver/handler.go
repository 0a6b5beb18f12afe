package receiver

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/magmaskv/casttompv/internal/logging"
)

// Handler returns the HTTP routes of the receiver.
// Only POST is routed; other methods get 405 and unknown paths 404.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /play", s.handlePlay)
	mux.HandleFunc("POST /test", s.handleTest)
	mux.HandleFunc("POST /testVideo", s.handleTestVideo)
	return mux
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	logRequest(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	url := r.PostForm.Get("url")
	if url == "" {
		http.Error(w, "missing url", http.StatusBadRequest)
		return
	}

	// device is sent unencoded, so reserved characters in it may be mangled
	deviceName := r.PostForm.Get("device")
	if deviceName == "" {
		deviceName = r.Header.Get("X-Device-Name")
	}

	logging.Info("Play request",
		zap.String("url", url),
		zap.String("device", deviceName),
		zap.String("remote_addr", r.RemoteAddr),
	)

	if err := s.player.Play(url); err != nil {
		logging.Error("Playback failed", zap.String("url", url), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeText(w, "Playing")
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	logRequest(r)
	writeText(w, fmt.Sprintf("%s ready", s.cfg.Instance))
}

func (s *Server) handleTestVideo(w http.ResponseWriter, r *http.Request) {
	logRequest(r)

	if err := s.player.Play(s.cfg.SampleURL); err != nil {
		logging.Error("Sample playback failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeText(w, "Playing sample video")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintln(w, body)
}

func logRequest(r *http.Request) {
	headers := make(map[string]string)
	for key, values := range r.Header {
		headers[key] = strings.Join(values, ", ")
	}

	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, headers)

	logging.Debug("Sender details",
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("device_name", r.Header.Get("X-Device-Name")),
		zap.String("device_model", r.Header.Get("X-Device-Model")),
		zap.String("os_version", r.Header.Get("X-Device-Android")),
		zap.String("user_agent", r.Header.Get("User-Agent")),
	)
}
