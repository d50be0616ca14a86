package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
)

// a move is two small integers; anything bigger is not a move
const maxMoveBodySize = 1 << 10

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errMalformedMove = errors.New("move must have row and col")

func (that *Server) pageHandler(w http.ResponseWriter, _ *http.Request) {
	that.mu.Lock()
	snapshot := that.session.Snapshot()
	that.mu.Unlock()

	data := pageData{
		Width:   that.surface.Width,
		Height:  that.surface.Height,
		Status:  statusLine(snapshot),
		Version: fmt.Sprintf("%s-%s", snapshot.SessionID, strings.Join(snapshot.Board[:], ".")),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		that.logger.Error("failed to render page", "error", err)
	}
}

func (that *Server) boardImageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.renderer.Render(w, that.surface, that.session.State()); err != nil {
		that.logger.Error("failed to render board", "error", err)
	}
}

// clickHandler - handles a click on the server-side image map. The browser sends the point as "?x,y".
func (that *Server) clickHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "clickHandler", "query", r.URL.RawQuery)

	x, y, err := parsePoint(r.URL.RawQuery)
	if err != nil {
		log.Debug("malformed click", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	}

	row, col, err := that.surface.CellAt(x, y)
	if err != nil {
		log.Debug("click outside the board")
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	}

	that.mu.Lock()
	err = that.session.Move(r.Context(), row, col)
	that.mu.Unlock()

	if err != nil && !errors.Is(err, apperror.ErrGameFinished) {
		log.Error("failed to make move", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Server) resetPageHandler(w http.ResponseWriter, r *http.Request) {
	that.mu.Lock()
	that.session.Reset(r.Context())
	that.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Server) stateHandler(w http.ResponseWriter, _ *http.Request) {
	that.mu.Lock()
	snapshot := that.session.Snapshot()
	that.mu.Unlock()

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) moveHandler(w http.ResponseWriter, r *http.Request) {
	var request moveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMoveBodySize)).Decode(&request); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("failed to decode move: %v", err)})
		return
	}

	if request.Row == nil || request.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMalformedMove.Error()})
		return
	}

	that.mu.Lock()
	err := that.session.Move(r.Context(), *request.Row, *request.Col)
	snapshot := that.session.Snapshot()
	that.mu.Unlock()

	switch {
	case errors.Is(err, apperror.ErrInvalidCoordinate):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrGameFinished):
		that.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case err != nil:
		that.logger.Error("failed to make move", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	default:
		that.writeJSON(w, http.StatusOK, snapshot)
	}
}

func (that *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	that.mu.Lock()
	that.session.Reset(r.Context())
	snapshot := that.session.Snapshot()
	that.mu.Unlock()

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// parsePoint - parses the "x,y" query of an image map click.
func parsePoint(query string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(query, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q has no comma", query)
	}

	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}

	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y: %w", err)
	}

	return float64(x), float64(y), nil
}

func statusLine(snapshot entity.Snapshot) string {
	switch snapshot.Status {
	case entity.StatusWon:
		return snapshot.Winner + " wins"
	case entity.StatusDraw:
		return "Draw"
	default:
		return snapshot.Turn + " to move"
	}
}
