package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/restaurants-ordering/cleaner"
	"github.com/imkonsowa/restaurants-ordering/events"
)

func (a *Agent) chat(c *gin.Context) {
	var req ChatRequest
	if !a.bind(c, &req) {
		return
	}

	history, err := req.History.Parse()
	if err != nil {
		a.fail(c, err)
		return
	}

	result, err := a.engine.WithMenu(a.squareFor(c)).Chat(c, req.Message, history)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type wsError struct {
	Error string `json:"error"`
}

// chatWS runs one chat turn per inbound frame. The connection holds no
// conversation state: every frame carries the full history.
func (a *Agent) chatWS(c *gin.Context) {
	engine := a.engine.WithMenu(a.squareFor(c))

	conn, err := a.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade ws connection", "error", err)
		return
	}
	defer conn.Close()

	for {
		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("failed to read from ws connection", "error", err)
			}
			return
		}

		var reply any
		history, err := req.History.Parse()
		if err == nil {
			reply, err = engine.Chat(c.Request.Context(), req.Message, history)
		}
		if err != nil {
			reply = wsError{Error: err.Error()}
		}

		if err := conn.WriteJSON(reply); err != nil {
			slog.Error("failed to write to ws connection", "error", err)
			return
		}
	}
}

func (a *Agent) orderSummarization(c *gin.Context) {
	var req SummaryRequest
	if !a.bind(c, &req) {
		return
	}

	history, err := req.History.Parse()
	if err != nil {
		a.fail(c, err)
		return
	}

	result, err := a.summarizer.Summarize(c, history)
	if err != nil {
		a.fail(c, err)
		return
	}

	summary, structured := cleaner.Value(result)
	a.publish(c, events.KindOrderSummarized, events.OrderSummarized{Summary: summary, Structured: structured})

	c.JSON(http.StatusOK, gin.H{"order_summary": summary, "structured": structured})
}
