package server

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
)

// reloadScript reconnects with a delay so a restarting server does not get
// hammered, and reloads the page on any message.
const reloadScript = `<script>(function(){var c=function(){var w=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+"/__reload");w.onmessage=function(){location.reload()};w.onclose=function(){setTimeout(c,1000)}};c()})();</script>`

// reloadHub tracks live-reload WebSocket connections.
type reloadHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newReloadHub() *reloadHub {
	return &reloadHub{conns: make(map[*websocket.Conn]struct{})}
}

// handle upgrades the request and parks the connection until it closes.
func (h *reloadHub) handle(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	ctx := c.Request().Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return nil
		}
	}
}

// broadcast tells every connected browser to reload.
func (h *reloadHub) broadcast() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Write(ctx, websocket.MessageText, []byte("reload"))
	}
}

// injectReloadScript inserts the reload script before </body>, or appends it
// when the page has no closing body tag.
func injectReloadScript(page []byte) []byte {
	marker := []byte("</body>")
	if i := bytes.LastIndex(page, marker); i >= 0 {
		out := make([]byte, 0, len(page)+len(reloadScript))
		out = append(out, page[:i]...)
		out = append(out, reloadScript...)
		out = append(out, page[i:]...)
		return out
	}
	return append(append([]byte(nil), page...), reloadScript...)
}
