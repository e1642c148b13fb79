package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dtroode/trueconf-console/internal/model"
)

// sseWriter writes progress events as server-sent events, flushing each one.
type sseWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &sseWriter{w: w, rc: http.NewResponseController(w)}
	_ = s.rc.Flush()

	return s
}

// WriteEvent implements model.EventWriter.
func (s *sseWriter) WriteEvent(event model.ProgressEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", raw); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}

	return nil
}
