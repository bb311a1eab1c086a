package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/taskward/taskward/events"
	"github.com/taskward/taskward/middleware"
)

func formatSSEMessage(ev events.Event) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(ev); err != nil {
		return "", err
	}
	return fmt.Sprintf("event: %s\nretry: %d\ndata: %s\n", ev.Type, 15000, buf.String()), nil
}

// streamTaskEvents writes the session's events as SSE frames until the
// client goes away or a write fails, sending keepalives in between.
func streamTaskEvents(w *bufio.Writer, session *events.Session, done <-chan struct{}, keepAlive time.Duration) {
	keepAliveTickler := time.NewTicker(keepAlive)
	defer keepAliveTickler.Stop()

	for {
		select {
		case <-done:
			return
		case ev := <-session.C:
			msg, err := formatSSEMessage(ev)
			if err != nil {
				log.Printf("Error formatting sse message: %v", err)
				continue
			}
			if _, err := fmt.Fprint(w, msg); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		case <-keepAliveTickler.C:
			fmt.Fprint(w, ":keepalive\n\n")
			if err := w.Flush(); err != nil {
				return
			}
		}
	}
}

// HandleTaskEvents godoc
// @Summary Stream the caller's task mutations as server-sent events
// @Tags tasks
// @Produce text/event-stream
// @Security BearerAuth
// @Router /api/events [get]
func (h *Handlers) HandleTaskEvents(c *fiber.Ctx) error {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		return errMissingIdentity(c)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	session := h.broker.Subscribe(caller.ID)
	notify := c.Context().Done()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.broker.Unsubscribe(session)
		streamTaskEvents(w, session, notify, 15*time.Second)
	}))

	return nil
}
