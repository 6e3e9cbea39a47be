package websocket

import (
	"encoding/json"
	"testing"
)

func TestEncode(t *testing.T) {
	data, err := Encode(EventTick, map[string]int{"remaining": 4})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var msg struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if msg.Type != EventTick {
		t.Errorf("Expected type %s, got %s", EventTick, msg.Type)
	}
	if msg.Data["remaining"] != 4 {
		t.Errorf("Expected remaining 4, got %d", msg.Data["remaining"])
	}
}

func TestBroadcastDoesNotBlockWhenFull(t *testing.T) {
	h := NewHub()
	// Sin Run nadie consume; el buffer se llena y el resto se descarta
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.BroadcastMessage(EventTick, i)
	}
	if len(h.broadcast) != cap(h.broadcast) {
		t.Errorf("Expected full buffer, got %d/%d", len(h.broadcast), cap(h.broadcast))
	}
}

func TestStop(t *testing.T) {
	h := NewHub()
	finished := make(chan struct{})
	go func() {
		h.Run()
		close(finished)
	}()

	h.Stop()
	h.Stop()
	<-finished

	if h.ClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", h.ClientCount())
	}
	// después de Stop no bloquea
	h.Unregister(nil)
}

func TestRegisterBuildsInitialStateAfterJoining(t *testing.T) {
	h := NewHub()
	go h.Run()

	clientsSeen := make(chan int, 1)
	h.Register(nil, func() []byte {
		clientsSeen <- h.ClientCount()
		return nil
	})

	if got := <-clientsSeen; got != 1 {
		t.Errorf("Expected client registered before building state, got %d clients", got)
	}
}
