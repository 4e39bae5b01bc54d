package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/logger"
)

const eventError = "error"

// StreamChunk is the data of one stream event. Exactly one field is set.
type StreamChunk struct {
	AudioChunk    []byte                `json:"audioChunk,omitempty"`
	AgentResponse *domain.ChatAnswer    `json:"agentResponse,omitempty"`
	Metadata      *domain.UsageMetadata `json:"metadata,omitempty"`
}

func toChunk(ev domain.StreamEvent) StreamChunk {
	return StreamChunk{
		AudioChunk:    ev.Audio,
		AgentResponse: ev.Answer,
		Metadata:      ev.Usage,
	}
}

// WSMessage wraps an event sent over the websocket.
type WSMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func (s *Server) answer(ctx context.Context, req domain.ChatRequest) (domain.ChatAnswer, error) {
	if err := req.Validate(); err != nil {
		return domain.ChatAnswer{}, err
	}
	return s.chat.Chat(ctx, req.Schema, req.Language, req.Messages)
}

// HandleStream answers a chat turn as server-sent events: audio frames
// while the answer is spoken, then the answer and the speech usage.
func (s *Server) HandleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req domain.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	answer, err := s.answer(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	for ev, err := range s.composer.Stream(ctx, answer, req.Voice) {
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Debug("Client left the stream")
				return
			}
			appErr := reportError(r, err)
			_ = writeEvent(w, rc, eventError, newErrorResponse(r, appErr))
			return
		}
		if err := writeEvent(w, rc, string(ev.Type), toChunk(ev)); err != nil {
			log.Debug("Stream write failed", "error", err)
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event:%s\ndata:%s\n\n", event, payload); err != nil {
		return err
	}
	if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}

// HandleStreamWS serves the same stream over a websocket. The first text
// message is the chat request; closing the socket stops synthesis.
func (s *Server) HandleStreamWS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	var req domain.ChatRequest
	if err := wsjson.Read(r.Context(), conn, &req); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			s.closeWithError(r, conn, apperrors.NewValidationError("malformed request body", "INVALID_BODY", err))
			return
		}
		log.Debug("websocket read failed", "error", err)
		return
	}

	// Cancelled once the client closes the socket.
	ctx := conn.CloseRead(r.Context())

	answer, err := s.answer(ctx, req)
	if err != nil {
		s.closeWithError(r, conn, err)
		return
	}

	for ev, err := range s.composer.Stream(ctx, answer, req.Voice) {
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Debug("Client left the stream")
				return
			}
			s.closeWithError(r, conn, err)
			return
		}
		if err := wsjson.Write(ctx, conn, WSMessage{Event: string(ev.Type), Data: toChunk(ev)}); err != nil {
			log.Debug("websocket write failed", "error", err)
			return
		}
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

func (s *Server) closeWithError(r *http.Request, conn *websocket.Conn, err error) {
	appErr := reportError(r, err)
	_ = wsjson.Write(r.Context(), conn, WSMessage{Event: eventError, Data: newErrorResponse(r, appErr)})

	code := websocket.StatusPolicyViolation
	if appErr.StatusCode >= http.StatusInternalServerError {
		code = websocket.StatusInternalError
	}
	conn.Close(code, http.StatusText(appErr.StatusCode))
}
