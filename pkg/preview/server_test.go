package preview

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/dom"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
	"github.com/vango-dev/livetree/pkg/telemetry"
	"github.com/vango-dev/livetree/pkg/vdom"
)

type model struct {
	Count int
	Name  string
}

type msg struct {
	Inc  bool
	Name string
}

type fixture struct {
	app *app.App[model, msg]
	srv *Server
	reg *prometheus.Registry
	ts  *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{reg: prometheus.NewRegistry()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	view := func(m model) vdom.VNode {
		return vdom.Div(
			vdom.ID("root"),
			vdom.Button(vdom.ID("inc"), vdom.OnClick(f.app.Send(msg{Inc: true})), "+"),
			vdom.Input(vdom.ID("name"), vdom.Value(m.Name), vdom.OnInput(func(ev *dom.Event) {
				f.app.Send(msg{Name: ev.Value})()
			})),
			vdom.Span(vdom.ID("count"), vdom.Number(m.Count)),
			vdom.Span(vdom.ID("greeting"), "hi "+m.Name),
		)
	}
	update := func(m model, ms msg) model {
		if ms.Inc {
			m.Count++
		} else {
			m.Name = ms.Name
		}
		return m
	}
	f.app = app.New(func() model { return model{} }, view, update, app.WithLogger(logger))

	metrics := telemetry.New(telemetry.WithRegistry(f.reg))
	f.srv = New(f.app, WithLogger(logger), WithMetrics(metrics), WithGatherer(f.reg), WithTitle("test"))
	f.app.Observe(metrics)
	f.app.Observe(f.srv)

	doc := memdom.NewDocument()
	if err := f.app.Attach(doc.Body()); err != nil {
		t.Fatal(err)
	}

	f.ts = httptest.NewServer(f.srv.Handler())
	t.Cleanup(func() {
		f.srv.Close()
		f.ts.Close()
	})
	return f
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var m ServerMessage
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return m
}

func gauge(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestPage(t *testing.T) {
	f := newFixture(t)

	status, body := get(t, f.ts.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{
		"<title>test</title>",
		`<div id="livetree-root"><div id="root"><button id="inc">+</button>`,
		`<span id="count">0</span>`,
		"new WebSocket",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q:\n%s", want, body)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	if status, body := get(t, f.ts.URL+"/healthz"); status != http.StatusOK || body != "ok" {
		t.Errorf("/healthz = %d %q", status, body)
	}
	status, body := get(t, f.ts.URL+"/metrics")
	if status != http.StatusOK || !strings.Contains(body, "livetree_mounts_total 1") {
		t.Errorf("/metrics = %d:\n%s", status, body)
	}
}

func TestWebSocketEvents(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)

	first := readMessage(t, conn)
	if first.Type != TypeHTML || !strings.Contains(first.HTML, `<span id="count">0</span>`) {
		t.Fatalf("initial message = %+v", first)
	}
	if got := gauge(t, f.reg, "livetree_preview_clients"); got != 1 {
		t.Errorf("preview_clients = %v, want 1", got)
	}

	if err := conn.WriteJSON(ClientMessage{Type: TypeEvent, Event: "click", Target: "inc"}); err != nil {
		t.Fatal(err)
	}
	update := readMessage(t, conn)
	if update.Type != TypeHTML || update.Seq != 1 || !strings.Contains(update.HTML, `<span id="count">1</span>`) {
		t.Fatalf("update = %+v", update)
	}

	name := "ada"
	if err := conn.WriteJSON(ClientMessage{Type: TypeEvent, Event: "input", Target: "name", Value: &name}); err != nil {
		t.Fatal(err)
	}
	update = readMessage(t, conn)
	if !strings.Contains(update.HTML, `<span id="greeting">hi ada</span>`) {
		t.Errorf("update = %+v", update)
	}
	if f.app.Model().Name != "ada" {
		t.Errorf("Name = %q", f.app.Model().Name)
	}
}

func TestWebSocketBadMessages(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)

	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{`},
		{"unknown type", `{"type":"ping"}`},
		{"missing target", `{"type":"event","event":"click"}`},
		{"unknown target", `{"type":"event","event":"click","target":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.data)); err != nil {
				t.Fatal(err)
			}
			m := readMessage(t, conn)
			if m.Type != TypeError || m.Code != "E040" {
				t.Errorf("reply = %+v, want E040 error", m)
			}
		})
	}
	if f.app.Model().Count != 0 {
		t.Errorf("Count = %d, want 0", f.app.Model().Count)
	}
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)

	f.srv.Close()
	if n := f.srv.ClientCount(); n != 0 {
		t.Errorf("ClientCount() = %d, want 0", n)
	}
	if got := gauge(t, f.reg, "livetree_preview_clients"); got != 0 {
		t.Errorf("preview_clients = %v, want 0", got)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("ReadMessage() after Close succeeded")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.Run(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
