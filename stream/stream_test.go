package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitylab/orbital/nbody"
)

func testConfig() nbody.Config {
	cfg := nbody.DefaultConfig()
	cfg.G = 1
	cfg.MinDist = 1
	return cfg
}

func dialTestServer(t *testing.T, b *Broadcaster) (*websocket.Conn, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(b.Handler())
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	return conn, server
}

func waitForClients(t *testing.T, b *Broadcaster, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", want, b.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcasterDeliversFrames(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	conn, server := dialTestServer(t, b)
	defer server.Close()
	defer conn.Close()

	waitForClients(t, b, 1)

	sys := nbody.NewSystem(testConfig())
	sys.CreateNamed("Probe", 1, 2, 3, 4, 5)
	sys.AddObserver(b)
	sys.Step(0.5)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	var frame nbody.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if frame.Step != 1 {
		t.Errorf("Expected step 1, got %d", frame.Step)
	}
	if len(frame.Bodies) != 1 || frame.Bodies[0].Name != "Probe" {
		t.Errorf("Expected the probe in the frame, got %+v", frame.Bodies)
	}
}

func TestBroadcasterDropsDisconnectedClients(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	conn, server := dialTestServer(t, b)
	defer server.Close()

	waitForClients(t, b, 1)
	conn.Close()
	waitForClients(t, b, 0)
}

func TestBroadcasterCloseRejectsNewConnections(t *testing.T) {
	b := NewBroadcaster()

	server := httptest.NewServer(b.Handler())
	defer server.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	b.Close()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		// The upgrade may still succeed before the server side drops the
		// connection; the first read must fail either way.
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, _, err := conn.ReadMessage(); err == nil {
			t.Error("Expected a closed broadcaster to drop the connection")
		}
		conn.Close()
	}

	if b.ClientCount() != 0 {
		t.Errorf("Expected no clients after Close, got %d", b.ClientCount())
	}
}

func TestBroadcasterOnStepWithNoClients(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	// Must not block or panic with nobody connected.
	b.OnStep(nbody.Frame{Step: 1})
}
