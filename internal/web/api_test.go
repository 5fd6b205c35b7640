package web

import (
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penniesfromkevin/goturtle/internal/state"
	"github.com/penniesfromkevin/goturtle/turtle"
)

// fakeCommands records the last call and answers with a fixed error.
type fakeCommands struct {
	err  error
	last string

	moveDistance float64
	colorName    string
	ngonSides    int
	ngonLength   float64
}

func (f *fakeCommands) Move(distance float64) error {
	f.last, f.moveDistance = "move", distance
	return f.err
}

func (f *fakeCommands) Turn(degrees float64) error { f.last = "turn"; return f.err }
func (f *fakeCommands) SetPen(down bool) error     { f.last = "pen"; return f.err }

func (f *fakeCommands) SetColor(name string) error {
	f.last, f.colorName = "color", name
	return f.err
}

func (f *fakeCommands) SetBackground(name string) error { f.last = "background"; return f.err }
func (f *fakeCommands) SetThickness(n int) error        { f.last = "thickness"; return f.err }

func (f *fakeCommands) NGon(sides int, length float64) error {
	f.last, f.ngonSides, f.ngonLength = "ngon", sides, length
	return f.err
}

func (f *fakeCommands) Reset() error { f.last = "reset"; return f.err }
func (f *fakeCommands) Clear() error { f.last = "clear"; return f.err }

func (f *fakeCommands) Snapshot() state.Snapshot {
	return state.Snapshot{
		Position:       turtle.Point{X: 12, Y: -8},
		Heading:        90,
		PenDown:        true,
		Color:          color.RGBA{R: 255, A: 255},
		ColorName:      "red",
		Background:     color.RGBA{A: 255},
		BackgroundName: "black",
		Thickness:      3,
		TrailLen:       2,
	}
}

func (f *fakeCommands) Trail() []turtle.Segment {
	return []turtle.Segment{
		{
			From:      turtle.Point{},
			To:        turtle.Point{X: 10},
			Color:     color.RGBA{R: 255, A: 255},
			Thickness: 3,
		},
	}
}

func serve(t *testing.T, cmds Commands, frame FrameFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	NewAPIV1Mux(cmds, frame).ServeHTTP(rr, req)
	return rr
}

func TestCommandOK(t *testing.T) {
	cmds := &fakeCommands{}
	rr := serve(t, cmds, nil, http.MethodPost, "/api/v1/move", `{"distance": 40}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "move", cmds.last)
	assert.Equal(t, 40.0, cmds.moveDistance)

	var resp okResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
}

func TestCommandWithoutBody(t *testing.T) {
	cmds := &fakeCommands{}
	rr := serve(t, cmds, nil, http.MethodPost, "/api/v1/reset", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "reset", cmds.last)
}

func TestNGonRequestFields(t *testing.T) {
	cmds := &fakeCommands{}
	rr := serve(t, cmds, nil, http.MethodPost, "/api/v1/ngon", `{"sides": 6, "length": 80}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 6, cmds.ngonSides)
	assert.Equal(t, 80.0, cmds.ngonLength)
}

func TestCommandRejectsGet(t *testing.T) {
	cmds := &fakeCommands{}
	rr := serve(t, cmds, nil, http.MethodGet, "/api/v1/move", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Empty(t, cmds.last, "the command must not run")
}

func TestCommandBadBody(t *testing.T) {
	cmds := &fakeCommands{}
	rr := serve(t, cmds, nil, http.MethodPost, "/api/v1/move", `{"distance": "far"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, cmds.last)

	var resp apiError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_argument", resp.Error)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not finite", turtle.ErrNotFinite, http.StatusBadRequest, "invalid_argument"},
		{"unknown color", turtle.ErrUnknownColor, http.StatusBadRequest, "invalid_argument"},
		{"stopped", turtle.ErrSurfaceUnavailable, http.StatusConflict, "session_stopped"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmds := &fakeCommands{err: tc.err}
			rr := serve(t, cmds, nil, http.MethodPost, "/api/v1/color", `{"name": "red"}`)

			assert.Equal(t, tc.status, rr.Code)

			var resp apiError
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestStateResponse(t *testing.T) {
	rr := serve(t, &fakeCommands{}, nil, http.MethodGet, "/api/v1/state", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp stateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 12.0, resp.Position.X)
	assert.Equal(t, -8.0, resp.Position.Y)
	assert.Equal(t, 90.0, resp.Heading)
	assert.True(t, resp.PenDown)
	assert.Equal(t, "red", resp.Color)
	assert.Equal(t, "black", resp.Background)
	assert.Equal(t, 3, resp.Thickness)
	assert.Equal(t, 2, resp.TrailLen)
}

func TestTrailResponse(t *testing.T) {
	rr := serve(t, &fakeCommands{}, nil, http.MethodGet, "/api/v1/trail", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []segmentJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 10.0, resp[0].To.X)
	assert.Equal(t, "#ff0000", resp[0].Color)
	assert.Equal(t, 3, resp[0].Thickness)
}

func TestCanvasPNG(t *testing.T) {
	frame := func() *image.RGBA { return image.NewRGBA(image.Rect(0, 0, 8, 8)) }
	rr := serve(t, &fakeCommands{}, frame, http.MethodGet, "/api/v1/canvas.png", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rr.Body.String()[:4])
}

func TestCanvasPNGWithoutFrames(t *testing.T) {
	rr := serve(t, &fakeCommands{}, nil, http.MethodGet, "/api/v1/canvas.png", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// A surface that has not presented yet answers the same way.
	rr = serve(t, &fakeCommands{}, func() *image.RGBA { return nil }, http.MethodGet, "/api/v1/canvas.png", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDevCORSPreflight(t *testing.T) {
	cmds := &fakeCommands{}
	handler := WithDevCORS(NewAPIV1Mux(cmds, nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/move", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, cmds.last)
}
