// Package sirenws streams Siren documents to clients over WebSocket connections. Each document is
// sent as a single text message.
package sirenws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	siren "github.com/ccbrown/siren-fu"
)

const closeTimeout = time.Second

// Streamer is an http.Handler that upgrades requests to WebSocket connections and sends each
// document produced by Subscribe to the client.
type Streamer struct {
	// If nil, logrus.StandardLogger() is used.
	Logger logrus.FieldLogger

	// If nil, only requests without an Origin header or with one matching the Host are allowed.
	CheckOrigin func(r *http.Request) bool

	// Subscribe is invoked for each request before the connection is upgraded. If it returns an
	// error, the request is rejected with a 400. Otherwise documents received from the channel
	// are sent until the channel is closed, the client goes away, or Close is called. The given
	// context is canceled when the stream ends, and the producer should stop sending then.
	Subscribe func(ctx context.Context, r *http.Request) (<-chan siren.Marshaler, error)

	streamsMutex sync.Mutex
	streams      map[*stream]struct{}
}

type stream struct {
	cancel context.CancelFunc
}

func (s *Streamer) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

// ServeHTTP hijacks the connection. To gracefully close all connections, use Close.
func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	// The request context can't be used here. The http package cancels it once a hijacked
	// connection's handler returns.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	documents, err := s.Subscribe(ctx, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin:       s.CheckOrigin,
		EnableCompression: true,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already responded
		s.logger().WithError(err).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close()

	st := &stream{
		cancel: cancel,
	}
	s.streamsMutex.Lock()
	if s.streams == nil {
		s.streams = map[*stream]struct{}{}
	}
	s.streams[st] = struct{}{}
	s.streamsMutex.Unlock()
	defer func() {
		s.streamsMutex.Lock()
		delete(s.streams, st)
		s.streamsMutex.Unlock()
	}()

	go s.readLoop(conn, cancel)

	for {
		select {
		case <-ctx.Done():
			s.writeClose(conn, websocket.CloseGoingAway)
			return
		case doc, ok := <-documents:
			if !ok {
				// producers commonly close their channel in response to cancelation
				if ctx.Err() != nil {
					s.writeClose(conn, websocket.CloseGoingAway)
				} else {
					s.writeClose(conn, websocket.CloseNormalClosure)
				}
				return
			}
			buf, err := doc.MarshalSiren()
			if err != nil {
				s.logger().WithError(err).Error("unable to encode siren document")
				s.writeClose(conn, websocket.CloseInternalServerErr)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, buf); err != nil {
				s.logger().Warn(errors.Wrap(err, "websocket write error"))
				return
			}
		}
	}
}

// readLoop discards anything the client sends and cancels the stream when the client goes away.
func (s *Streamer) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger().WithError(err).Debug("websocket read error")
			}
			return
		}
	}
}

func (s *Streamer) writeClose(conn *websocket.Conn, code int) {
	msg := websocket.FormatCloseMessage(code, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeTimeout)); err != nil {
		s.logger().WithError(err).Debug("unable to write websocket close message")
	}
}

// Close ends every active stream. Clients receive a "going away" close message.
func (s *Streamer) Close() {
	s.streamsMutex.Lock()
	streams := make([]*stream, 0, len(s.streams))
	for st := range s.streams {
		streams = append(streams, st)
	}
	s.streamsMutex.Unlock()

	for _, st := range streams {
		st.cancel()
	}
}
