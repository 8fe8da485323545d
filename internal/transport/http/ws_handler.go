package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"school-trivia/internal/app"
	"school-trivia/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		log:     log,
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

type startPayload struct {
	Variant    string            `json:"variant"`
	Names      []string          `json:"names"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Bank       string            `json:"bank"`
}

type answerPayload struct {
	OptionIndex int `json:"optionIndex"`
}

type joinedPayload struct {
	GameID string `json:"gameId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game use cases.
// Without a gameId query parameter a fresh game is opened.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	game := h.service.Open(r.URL.Query().Get("gameId"))
	gameID := game.ID()
	defer h.service.Leave(gameID)
	log := h.log.With(zap.String("game_id", gameID))

	updates, cancel, err := h.service.Subscribe(r.Context(), gameID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	deliver(send, writerDone, outboundMessage[any]{Type: "joined", Payload: joinedPayload{GameID: gameID}})

	go func() {
		defer close(updatesDone)
		for {
			select {
			case state, ok := <-updates:
				if !ok {
					return
				}
				msgs := []outboundMessage[any]{{Type: "state", Payload: state}}
				if state.Phase == domain.PhaseComplete {
					if summary, ok := h.service.Summary(gameID); ok {
						msgs = append(msgs, outboundMessage[any]{Type: "summary", Payload: summary})
					}
				}
				for _, msg := range msgs {
					select {
					case send <- msg:
					case <-closeSignals:
						return
					}
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatch(r, gameID, inbound); err != nil {
			log.Debug("ws command rejected", zap.String("type", inbound.Type), zap.Error(err))
			deliver(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// deliver queues msg for the writer and gives up once the writer has exited.
func deliver(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

var errUnsupported = errors.New("unsupported message type")

func (h *WSHandler) dispatch(r *http.Request, gameID string, inbound inboundMessage) error {
	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errors.New("invalid start payload")
		}
		_, err := h.service.Start(r.Context(), app.StartRequest{
			GameID:     gameID,
			Variant:    payload.Variant,
			Names:      payload.Names,
			Difficulty: payload.Difficulty,
			BankID:     payload.Bank,
		})
		return err
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errors.New("invalid answer payload")
		}
		return h.service.Answer(gameID, payload.OptionIndex)
	case "next":
		return h.service.Next(gameID)
	case "skip":
		return h.service.Skip(gameID)
	case "restart":
		return h.service.Restart(gameID)
	}
	return errUnsupported
}
