package sessionws

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/session"
)

func TestPublishDeliversEventToRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, 7)
	hub.Register(client)

	hub.Publish(7, session.Event{
		Type:     session.EventStarted,
		Snapshot: session.Snapshot{WorkoutID: 1, State: session.StateRunning},
	})

	select {
	case payload := <-client.send:
		var event session.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("Failed to decode event: %v", err)
		}
		if event.Type != session.EventStarted || event.WorkoutID != 1 {
			t.Errorf("Expected started event for workout 1, got %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected event delivery")
	}

	hub.Unregister(client)
}

func TestPublishDropsEventsForUnknownUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, 7)
	hub.Register(client)

	hub.Publish(8, session.Event{Type: session.EventTick})
	hub.Publish(7, session.Event{Type: session.EventCompleted})

	select {
	case payload := <-client.send:
		var event session.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("Failed to decode event: %v", err)
		}
		if event.Type != session.EventCompleted {
			t.Errorf("Expected only this user's event, got %s", event.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected event delivery")
	}

	hub.Unregister(client)
}

func TestErrorWriteDuringEvictionDoesNotPanic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No reader drains the client, so its buffer fills and the hub
	// evicts it mid-stream while errors are being written concurrently.
	client := NewClient(hub, nil, 7)
	hub.Register(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			client.writeError("unsupported command type")
		}
	}()

	for i := 0; i < 200; i++ {
		hub.Publish(7, session.Event{Type: session.EventTick})
	}
	wg.Wait()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-client.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Expected the stalled client to be evicted")
		}
	}
}
