package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"

	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type stateResponse struct {
	Position   pointJSON `json:"position"`
	Heading    float64   `json:"heading"`
	PenDown    bool      `json:"penDown"`
	Color      string    `json:"color"`
	Background string    `json:"background"`
	Thickness  int       `json:"thickness"`
	TrailLen   int       `json:"trailLen"`
}

type segmentJSON struct {
	From      pointJSON `json:"from"`
	To        pointJSON `json:"to"`
	Color     string    `json:"color"`
	Thickness int       `json:"thickness"`
}

type moveRequest struct {
	Distance float64 `json:"distance"`
}

type turnRequest struct {
	Degrees float64 `json:"degrees"`
}

type penRequest struct {
	Down bool `json:"down"`
}

type colorRequest struct {
	Name string `json:"name"`
}

type thicknessRequest struct {
	Value int `json:"value"`
}

type ngonRequest struct {
	Sides  int     `json:"sides"`
	Length float64 `json:"length"`
}

// NewAPIV1Mux builds the /api/v1 command surface. Frame may be nil when
// the active surface cannot share frames (the PNG endpoint then answers
// 404).
func NewAPIV1Mux(cmds Commands, frame FrameFunc) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(cmds, frame)))
	return mux
}

func apiV1Router(cmds Commands, frame FrameFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, cmds) })
	mux.HandleFunc("/trail", func(w http.ResponseWriter, r *http.Request) { handleTrail(w, r, cmds) })
	mux.HandleFunc("/canvas.png", func(w http.ResponseWriter, r *http.Request) { handleCanvasPNG(w, r, frame) })
	mux.HandleFunc("/move", func(w http.ResponseWriter, r *http.Request) {
		var req moveRequest
		handleCommand(w, r, &req, func() error { return cmds.Move(req.Distance) })
	})
	mux.HandleFunc("/turn", func(w http.ResponseWriter, r *http.Request) {
		var req turnRequest
		handleCommand(w, r, &req, func() error { return cmds.Turn(req.Degrees) })
	})
	mux.HandleFunc("/pen", func(w http.ResponseWriter, r *http.Request) {
		var req penRequest
		handleCommand(w, r, &req, func() error { return cmds.SetPen(req.Down) })
	})
	mux.HandleFunc("/color", func(w http.ResponseWriter, r *http.Request) {
		var req colorRequest
		handleCommand(w, r, &req, func() error { return cmds.SetColor(req.Name) })
	})
	mux.HandleFunc("/background", func(w http.ResponseWriter, r *http.Request) {
		var req colorRequest
		handleCommand(w, r, &req, func() error { return cmds.SetBackground(req.Name) })
	})
	mux.HandleFunc("/thickness", func(w http.ResponseWriter, r *http.Request) {
		var req thicknessRequest
		handleCommand(w, r, &req, func() error { return cmds.SetThickness(req.Value) })
	})
	mux.HandleFunc("/ngon", func(w http.ResponseWriter, r *http.Request) {
		var req ngonRequest
		handleCommand(w, r, &req, func() error { return cmds.NGon(req.Sides, req.Length) })
	})
	mux.HandleFunc("/reset", func(w http.ResponseWriter, r *http.Request) {
		handleCommand(w, r, nil, cmds.Reset)
	})
	mux.HandleFunc("/clear", func(w http.ResponseWriter, r *http.Request) {
		handleCommand(w, r, nil, cmds.Clear)
	})
	return mux
}

func handleState(w http.ResponseWriter, r *http.Request, cmds Commands) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, stateToResponse(cmds.Snapshot()))
}

func handleTrail(w http.ResponseWriter, r *http.Request, cmds Commands) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	trail := cmds.Trail()
	out := make([]segmentJSON, len(trail))
	for i, seg := range trail {
		out[i] = segmentJSON{
			From:      pointJSON{X: seg.From.X, Y: seg.From.Y},
			To:        pointJSON{X: seg.To.X, Y: seg.To.Y},
			Color:     fmt.Sprintf("#%02x%02x%02x", seg.Color.R, seg.Color.G, seg.Color.B),
			Thickness: seg.Thickness,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func handleCanvasPNG(w http.ResponseWriter, r *http.Request, frame FrameFunc) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if frame == nil {
		writeAPIError(w, http.StatusNotFound, "not_available", "canvas frames are not exposed by this surface")
		return
	}
	img := frame()
	if img == nil {
		writeAPIError(w, http.StatusNotFound, "not_available", "no frame presented yet")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_ = png.Encode(w, img)
}

// handleCommand decodes an optional JSON body into req, runs the
// command and maps its error onto the API taxonomy.
func handleCommand(w http.ResponseWriter, r *http.Request, req interface{}, run func() error) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if req != nil {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_argument", "bad request body: "+err.Error())
			return
		}
	}
	if err := run(); err != nil {
		switch {
		case errors.Is(err, turtle.ErrNotFinite), errors.Is(err, turtle.ErrUnknownColor):
			writeAPIError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		case errors.Is(err, turtle.ErrSurfaceUnavailable):
			writeAPIError(w, http.StatusConflict, "session_stopped", err.Error())
		default:
			writeAPIError(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func stateToResponse(snap state.Snapshot) stateResponse {
	colorName := snap.ColorName
	if colorName == "" {
		colorName = fmt.Sprintf("#%02x%02x%02x", snap.Color.R, snap.Color.G, snap.Color.B)
	}
	bgName := snap.BackgroundName
	if bgName == "" {
		bgName = fmt.Sprintf("#%02x%02x%02x", snap.Background.R, snap.Background.G, snap.Background.B)
	}
	return stateResponse{
		Position:   pointJSON{X: snap.Position.X, Y: snap.Position.Y},
		Heading:    snap.Heading,
		PenDown:    snap.PenDown,
		Color:      colorName,
		Background: bgName,
		Thickness:  snap.Thickness,
		TrailLen:   snap.TrailLen,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
