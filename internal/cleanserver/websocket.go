package cleanserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"

	"github.com/cleanmark/htmlcleaner"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsProgress is sent after each cleaned chunk.
type wsProgress struct {
	Type      string `json:"type"`
	Percent   int    `json:"percent"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}

// wsResult carries the final output and closes the exchange.
type wsResult struct {
	Type     string `json:"type"`
	HTML     string `json:"html"`
	Fragment bool   `json:"fragment"`
}

type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// handleCleanWS upgrades the connection, reads a single clean request,
// streams progress frames while the pass runs, and finishes with a
// result frame. One request per connection.
func (s *Server) handleCleanWS(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	var req cleanRequest
	if err := conn.ReadJSON(&req); err != nil {
		if websocket.IsUnexpectedCloseError(err,
			websocket.CloseGoingAway,
			websocket.CloseNormalClosure) {
			log.Warn().Err(err).Msg("websocket read failed")
		}
		return
	}

	start := time.Now()
	var elements int
	out, err := s.cleaner.CleanWithProgress(r.Context(), req.Markup, req.Options,
		func(percent, processed, total int) {
			elements = total
			_ = conn.WriteJSON(wsProgress{Type: "progress", Percent: percent, Processed: processed, Total: total})
		})
	if err != nil {
		log.Warn().Err(err).Msg("clean failed")
		_ = conn.WriteJSON(wsError{Type: "error", Error: err.Error()})
		return
	}

	fragment := htmlcleaner.IsFragment(req.Markup)
	observeClean(fragment, elements, time.Since(start))
	if err := conn.WriteJSON(wsResult{Type: "result", HTML: out, Fragment: fragment}); err != nil {
		log.Warn().Err(err).Msg("websocket write failed")
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
