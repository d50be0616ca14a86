package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/render"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/usecase"
)

func newTestServer(t *testing.T) (*Server, *usecase.Session) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := usecase.NewSession(context.Background(), logger, nil)

	surface, err := canvas.Setup(375, 375, canvas.PixelAspect)
	require.NoError(t, err)
	require.Equal(t, 300, surface.Width)

	return New(logger, session, render.NewCanvas(0), surface), session
}

func serve(server *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) entity.Snapshot {
	t.Helper()

	var snapshot entity.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snapshot))

	return snapshot
}

func TestPing(t *testing.T) {
	server, _ := newTestServer(t)

	rec := serve(server, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestPage(t *testing.T) {
	server, _ := newTestServer(t)

	// When: opening the page
	rec := serve(server, http.MethodGet, "/", "")

	// Then: the board is an image map of the surface size
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/click"`)
	assert.Contains(t, body, "ismap")
	assert.Contains(t, body, `width="300"`)
	assert.Contains(t, body, "X to move")
}

func TestBoardImage(t *testing.T) {
	server, _ := newTestServer(t)

	// When: fetching the board image
	rec := serve(server, http.MethodGet, "/board.png", "")

	// Then: it is a PNG of the surface size
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestClick(t *testing.T) {
	t.Run("Click on a cell makes a move", func(t *testing.T) {
		server, session := newTestServer(t)

		// When: the image map reports a click in the center cell
		rec := serve(server, http.MethodGet, "/click?150,160", "")

		// Then: the move is made and the browser goes back to the page
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, entity.CellPlayer0, session.State().CellAt(1, 1))
	})

	t.Run("Malformed and outside clicks are ignored", func(t *testing.T) {
		server, session := newTestServer(t)

		for _, query := range []string{"", "abc", "10", "10,x", "300,10", "-1,5"} {
			// When: clicking with a useless point
			rec := serve(server, http.MethodGet, "/click?"+query, "")

			// Then: the page is shown again without a move
			assert.Equal(t, http.StatusSeeOther, rec.Code, query)
		}

		assert.Equal(t, entity.NewGameState(), session.State())
	})

	t.Run("New game from the page", func(t *testing.T) {
		server, session := newTestServer(t)
		serve(server, http.MethodGet, "/click?10,10", "")

		// When: pressing the new game button
		rec := serve(server, http.MethodPost, "/reset", "")

		// Then: the board is cleared
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, entity.NewGameState(), session.State())
	})
}

func TestAPI(t *testing.T) {
	t.Run("State of a new game", func(t *testing.T) {
		server, session := newTestServer(t)

		rec := serve(server, http.MethodGet, "/api/state", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, session.Snapshot(), decodeSnapshot(t, rec))
	})

	t.Run("Move", func(t *testing.T) {
		server, _ := newTestServer(t)

		// When: posting a move to the top right cell
		rec := serve(server, http.MethodPost, "/api/move", `{"row":0,"col":2}`)

		// Then: the new board is returned
		require.Equal(t, http.StatusOK, rec.Code)
		snapshot := decodeSnapshot(t, rec)
		assert.Equal(t, entity.PlayerX, snapshot.Board[2])
		assert.Equal(t, entity.PlayerO, snapshot.Turn)
	})

	t.Run("Invalid moves", func(t *testing.T) {
		server, session := newTestServer(t)

		for _, body := range []string{`{"row":3,"col":0}`, `{"row":0}`, `not json`} {
			// When: posting a bad move
			rec := serve(server, http.MethodPost, "/api/move", body)

			// Then: the request is rejected
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}

		assert.Equal(t, entity.NewGameState(), session.State())
	})

	t.Run("Oversized move body", func(t *testing.T) {
		server, session := newTestServer(t)

		// When: posting a move padded far beyond any real move
		body := `{"row":1,"col":1,"pad":"` + strings.Repeat("a", 2*maxMoveBodySize) + `"}`
		rec := serve(server, http.MethodPost, "/api/move", body)

		// Then: the request is rejected without a move
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.NewGameState(), session.State())
	})

	t.Run("Move after the game is won", func(t *testing.T) {
		server, _ := newTestServer(t)

		// Given: X has taken the left column
		for _, body := range []string{`{"row":0,"col":0}`, `{"row":0,"col":1}`, `{"row":1,"col":0}`, `{"row":1,"col":1}`, `{"row":2,"col":0}`} {
			require.Equal(t, http.StatusOK, serve(server, http.MethodPost, "/api/move", body).Code)
		}

		// When: another move is posted
		rec := serve(server, http.MethodPost, "/api/move", `{"row":2,"col":2}`)

		// Then: it conflicts with the finished game
		assert.Equal(t, http.StatusConflict, rec.Code)

		state := decodeSnapshot(t, serve(server, http.MethodGet, "/api/state", ""))
		assert.Equal(t, entity.StatusWon, state.Status)
		assert.Equal(t, entity.PlayerX, state.Winner)
		assert.Empty(t, state.Turn)
	})

	t.Run("Reset", func(t *testing.T) {
		server, session := newTestServer(t)
		serve(server, http.MethodPost, "/api/move", `{"row":1,"col":1}`)
		oldID := session.ID()

		// When: resetting the game
		rec := serve(server, http.MethodPost, "/api/reset", "")

		// Then: a new empty game is returned
		require.Equal(t, http.StatusOK, rec.Code)
		snapshot := decodeSnapshot(t, rec)
		assert.NotEqual(t, oldID, snapshot.SessionID)
		assert.Equal(t, [entity.CellCount]string{}, snapshot.Board)
	})

	t.Run("Wrong method", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := serve(server, http.MethodGet, "/api/move", "")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestMetrics(t *testing.T) {
	server, _ := newTestServer(t)
	serve(server, http.MethodPost, "/api/move", `{"row":1,"col":1}`)

	// When: scraping the metrics
	rec := serve(server, http.MethodGet, "/metrics", "")

	// Then: the game counters are exposed
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tictactoe_moves_total")
	assert.Contains(t, rec.Body.String(), "tictactoe_sessions_total")
}

func TestParsePoint(t *testing.T) {
	x, y, err := parsePoint("12,34")

	require.NoError(t, err)
	assert.InDelta(t, 12.0, x, 0)
	assert.InDelta(t, 34.0, y, 0)
}
