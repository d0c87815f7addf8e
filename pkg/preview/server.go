package preview

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/livetree/internal/errors"
	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
	"github.com/vango-dev/livetree/pkg/telemetry"
)

// sendBuffer is the number of pending messages a client may hold before it
// is dropped as too slow.
const sendBuffer = 16

// Target is the App being previewed. *app.App satisfies it.
type Target interface {
	Do(ctx context.Context, fn func() error) error
	Container() dom.Element
}

// Server serves a Target over HTTP and websockets.
type Server struct {
	target   Target
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	gatherer prometheus.Gatherer
	title    string
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

var _ app.Observer = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics counts connected clients in m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithGatherer sets the registry served on /metrics.
// Default: prometheus.DefaultGatherer
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// New creates a Server for target. Register the Server as an observer of
// the App so clients receive updates.
func New(target Target, opts ...Option) *Server {
	s := &Server{
		target:   target,
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
		title:    "livetree preview",
		clients:  make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // preview is a development tool
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "preview")
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		s.Close()
		return err
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	s.logger.Info("preview server stopped")
	return err
}

// ObserveCycle implements app.Observer by pushing the container's HTML to
// every client.
func (s *Server) ObserveCycle(_ context.Context, c app.Cycle) {
	if c.Container == nil {
		return
	}
	s.broadcast(ServerMessage{Type: TypeHTML, HTML: containerHTML(c.Container), Seq: c.Seq})
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		s.drop(c)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="livetree-root">{{.HTML}}</div>
` + clientScript + `
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, err := s.snapshot(r.Context())
	if err != nil {
		s.logger.Warn("page render failed", "error", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, struct {
		Title string
		HTML  template.HTML
	}{s.title, template.HTML(html)})
	if err != nil {
		s.logger.Error("page write failed", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.ClientConnected()
	}
	s.logger.Debug("client connected", "remote", r.RemoteAddr)

	go s.writeLoop(c)

	html, err := s.snapshot(r.Context())
	if err != nil {
		s.logger.Warn("initial render failed", "error", err)
	}
	s.sendTo(c, ServerMessage{Type: TypeHTML, HTML: html})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if err := s.handleMessage(r.Context(), data); err != nil {
			s.sendTo(c, errorMessage(err))
		}
	}

	s.drop(c)
	s.logger.Debug("client disconnected", "remote", r.RemoteAddr)
}

func (s *Server) handleMessage(ctx context.Context, data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.New("E040").WithDetail("message is not valid JSON").Wrap(err)
	}
	if msg.Type != TypeEvent {
		return errors.New("E040").WithDetailf("unknown message type %q", msg.Type)
	}
	if msg.Event == "" || msg.Target == "" {
		return errors.New("E040").WithDetail("event and target are required")
	}

	return s.target.Do(ctx, func() error {
		container := s.target.Container()
		if container == nil {
			return errors.New("E003")
		}
		found := container.OwnerDocument().GetElementByID(msg.Target)
		el, ok := found.(*memdom.Element)
		if !ok || el == nil {
			return errors.New("E040").WithDetailf("no element with id %q", msg.Target)
		}
		fire(el, msg)
		return nil
	})
}

// fire delivers msg on el the way a browser would.
func fire(el *memdom.Element, msg ClientMessage) {
	switch {
	case msg.Event == "input" && msg.Value != nil:
		el.Input(*msg.Value)
	case msg.Event == "change" && msg.Checked != nil:
		if checked, _ := el.Property("checked").(bool); checked != *msg.Checked {
			el.Toggle()
			return
		}
		el.Dispatch(&dom.Event{Type: "change", Data: map[string]any{"checked": *msg.Checked}})
	case msg.Event == "keydown":
		if msg.Value != nil {
			el.SetProperty("value", *msg.Value)
		}
		el.KeyDown(msg.Key)
	default:
		ev := &dom.Event{Type: msg.Event, Key: msg.Key}
		if msg.Value != nil {
			el.SetProperty("value", *msg.Value)
			ev.Value = *msg.Value
		}
		el.Dispatch(ev)
	}
}

// snapshot reads the container's HTML with exclusive access to the App.
func (s *Server) snapshot(ctx context.Context) (string, error) {
	var html string
	err := s.target.Do(ctx, func() error {
		if c := s.target.Container(); c != nil {
			html = containerHTML(c)
		}
		return nil
	})
	return html, err
}

func containerHTML(c dom.Element) string {
	var b strings.Builder
	for _, n := range c.ChildNodes() {
		b.WriteString(memdom.OuterHTML(n))
	}
	return b.String()
}

func errorMessage(err error) ServerMessage {
	msg := ServerMessage{Type: TypeError, Error: err.Error()}
	if e := errors.FromError(err, "E040"); e != nil {
		msg.Code = e.Code
	}
	return msg
}

func (s *Server) broadcast(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	var slow []*client
	s.mu.RLock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	s.mu.RUnlock()

	for _, c := range slow {
		s.logger.Warn("dropping slow client")
		s.drop(c)
	}
}

func (s *Server) sendTo(c *client, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (s *Server) writeLoop(c *client) {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.drop(c)
			break
		}
	}
	c.conn.Close()
}

// drop unregisters c. It is safe to call more than once.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if !ok {
		return
	}
	close(c.send)
	c.conn.Close()
	if s.metrics != nil {
		s.metrics.ClientDisconnected()
	}
}
