package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/render"
)

// WSHandler gives every websocket connection its own quiz session, like a browser tab.
// All connections share one high-score store.
type WSHandler struct {
	questions    domain.QuestionSet
	highScores   *app.HighScores
	tickInterval time.Duration
	logger       *zap.Logger
	upgrader     websocket.Upgrader
}

func NewWSHandler(questions domain.QuestionSet, highScores *app.HighScores, tickInterval time.Duration, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		questions:    questions,
		highScores:   highScores,
		tickInterval: tickInterval,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into a quiz session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := h.logger.With(zap.String("session", id))

	// Ticks arrive on the timer goroutine; keep only the latest and never block it.
	ticks := make(chan app.Tick, 1)
	session, err := app.NewSession(h.questions, h.highScores,
		app.WithID(id),
		app.WithLogger(logger),
		app.WithTickInterval(h.tickInterval),
		app.WithTickObserver(func(t app.Tick) {
			select {
			case ticks <- t:
			default:
				select {
				case <-ticks:
				default:
				}
				select {
				case ticks <- t:
				default:
				}
			}
		}),
	)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer session.Close()
	logger.Debug("session opened")

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	ticksDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		defer close(ticksDone)
		for {
			select {
			case t := <-ticks:
				select {
				case send <- outboundMessage[any]{Type: "tick", Payload: t}:
				case <-writerDone:
					return
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	sendView := func() bool {
		return enqueue(send, writerDone, outboundMessage[any]{Type: "view", Payload: render.Render(session.Snapshot(), session.Questions())})
	}

	for ok := sendView(); ok; {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.apply(r.Context(), session, inbound); err != nil {
			ok = enqueue(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
			continue
		}
		ok = sendView()
	}

	session.Close()
	close(closeSignals)
	<-ticksDone
	close(send)
	<-writerDone
	logger.Debug("session closed", zap.String("screen", string(session.Screen())))
}

// enqueue hands msg to the writer. It reports false once the writer has
// stopped, so callers never block on a connection that can no longer be written.
func enqueue(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

func (h *WSHandler) apply(ctx context.Context, session *app.Session, inbound inboundMessage) error {
	switch inbound.Type {
	case render.IntentStart:
		return session.Start(ctx)
	case render.IntentSelect:
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		return session.SelectOption(payload.Option)
	case render.IntentNext:
		return session.Advance(ctx)
	case render.IntentRestart:
		return session.Restart()
	default:
		return errUnsupportedMessage
	}
}
