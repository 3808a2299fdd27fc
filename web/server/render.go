package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/image-synthesis/pkg/canvas"
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/renderer"
	"github.com/df07/image-synthesis/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string  `json:"scene"`  // Built-in scene ID or scene file name
	Mode   string  `json:"mode"`   // "raytrace", "raster" or "preview"
	Width  int     `json:"width"`  // Image width, 0 keeps the scene's
	Height int     `json:"height"` // Image height, 0 keeps the scene's
	Depth  int     `json:"depth"`  // Raytracing depth, 0 keeps the scene's
	Step   float64 `json:"step"`   // Raster parametric step, 0 uses the default
}

// RenderResult is the final event of a streamed render
type RenderResult struct {
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	TotalPixels int    `json:"totalPixels"`
	PixelsDrawn int    `json:"pixelsDrawn"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and replies with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	img, _, err := s.render(r.Context(), req, NewWebLogger(renderID, nil))
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene while streaming the renderer's console
// output via SSE, then sends the image as the "complete" event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.finish(sseEventChan, writerDone, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	img, stats, err := s.render(ctx, req, webLogger)
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.finish(sseEventChan, writerDone, "error", err.Error())
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		s.finish(sseEventChan, writerDone, "error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	bounds := img.Bounds()
	data, err := json.Marshal(RenderResult{
		ImageData:   imageData,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		TotalPixels: stats.TotalPixels,
		PixelsDrawn: stats.PixelsDrawn,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		s.finish(sseEventChan, writerDone, "error", err.Error())
		return
	}
	s.finish(sseEventChan, writerDone, "complete", string(data))
}

// finish queues the last event, closes the stream and waits for the writer
func (s *Server) finish(sseEventChan chan SSEEvent, writerDone <-chan struct{}, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-writerDone:
	}
	close(sseEventChan)
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents handles writing all SSE events in a single goroutine
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene: query.Get("scene"),
		Mode:  query.Get("mode"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	switch req.Mode {
	case "":
		req.Mode = "raytrace"
	case "raytrace", "raster", "preview":
	default:
		return nil, fmt.Errorf("unknown mode %q", req.Mode)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Step, err = parseFloatParam(query, "step", 0, 1e-4, 0.1); err != nil {
		return nil, err
	}
	return req, nil
}

// loadScene resolves a scene name. File scenes are only looked up inside
// the server's scenes directory.
func (s *Server) loadScene(name string, width, height int) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		name = filepath.Join(s.scenesDir, filepath.Base(name))
	}
	return scene.Load(name, width, height)
}

// render draws the requested scene into an in-memory image
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger) (image.Image, renderer.RenderStats, error) {
	sceneObj, err := s.loadScene(req.Scene, req.Width, req.Height)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	sink := canvas.NewImageSink(sceneObj.Width, sceneObj.Height, sceneObj.Background)
	var stats renderer.RenderStats

	switch req.Mode {
	case "raster", "preview":
		config := renderer.DefaultRasterConfig()
		if req.Step > 0 {
			config.Step = req.Step
		}
		config.Preview = req.Mode == "preview"
		c := canvas.New(sceneObj.Width, sceneObj.Height, sink)
		stats, err = renderer.NewRasterizer(sceneObj, config, logger).RenderContext(ctx, c)

	default:
		config := renderer.DefaultConfig()
		config.MaxDepth = sceneObj.MaxDepth
		if req.Depth > 0 {
			config.MaxDepth = req.Depth
		}
		c := canvas.NewConcurrent(sceneObj.Width, sceneObj.Height, sink)
		stats, err = renderer.NewParallelRaytracer(sceneObj, config, logger).Render(ctx, c)
	}
	if err != nil {
		return nil, stats, err
	}
	return sink.Image(), stats, nil
}

// statusFor maps a render error to an HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene), errors.Is(err, fs.ErrNotExist):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
