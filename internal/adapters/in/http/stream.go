package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/eventbus"

	"github.com/labstack/echo/v4"
)

// AlertSubscriber hands out per-user alert subscriptions.
type AlertSubscriber interface {
	Subscribe(userID kernel.UUID) *eventbus.Subscription
}

// StreamServer pushes alert events to connected users over Server-Sent Events.
type StreamServer struct {
	subscriber AlertSubscriber
}

// NewStreamServer creates the SSE endpoint over the given subscriber.
func NewStreamServer(subscriber AlertSubscriber) *StreamServer {
	return &StreamServer{subscriber: subscriber}
}

// RegisterRoutes attaches the stream endpoint to the echo instance.
func (s *StreamServer) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/notifications/stream", s.Stream)
}

// Stream handles GET /api/v1/notifications/stream.
// It holds the connection open and writes one SSE message per alert addressed
// to the acting user. The stream ends when the client disconnects or the bus
// shuts down.
func (s *StreamServer) Stream(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return badRequest(ctx, "missing or invalid "+HeaderActorID+" header")
	}

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	subscription := s.subscriber.Subscribe(userID)
	defer subscription.Close()

	requestCtx := ctx.Request().Context()
	for {
		select {
		case <-requestCtx.Done():
			return nil
		case event, ok := <-subscription.Events():
			if !ok {
				return nil
			}
			if err := writeEvent(response, event); err != nil {
				return nil
			}
		}
	}
}

// writeEvent frames one alert as an SSE message and flushes it out.
func writeEvent(response *echo.Response, event eventbus.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.Kind, payload); err != nil {
		return err
	}

	response.Flush()
	return nil
}
