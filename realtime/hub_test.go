package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case b := <-c.Receive():
		var ev Event
		if err := json.Unmarshal(b, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case b := <-c.Receive():
		t.Fatalf("unexpected event: %s", b)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	admin := hub.NewClient()
	kitchen := hub.NewClient()
	tracker := hub.NewClient()
	hub.Join(RoomAdmin, admin)
	hub.Join(RoomKitchen, kitchen)
	hub.Join(OrderRoom("abc"), tracker)

	hub.Broadcast(EventNewOrder, map[string]string{"id": "abc"}, RoomAdmin, RoomKitchen)

	for _, c := range []*Client{admin, kitchen} {
		ev := receiveEvent(t, c)
		if ev.Event != EventNewOrder {
			t.Errorf("got event %q, want %q", ev.Event, EventNewOrder)
		}
	}
	assertNoEvent(t, tracker)
}

func TestBroadcastDeliversOncePerClient(t *testing.T) {
	hub := NewHub()
	c := hub.NewClient()
	hub.Join(RoomAdmin, c)
	hub.Join(RoomKitchen, c)

	hub.Broadcast(EventNewOrder, nil, RoomAdmin, RoomKitchen)

	receiveEvent(t, c)
	assertNoEvent(t, c)
}

func TestOrderRoomReceivesStatusUpdates(t *testing.T) {
	hub := NewHub()
	tracker := hub.NewClient()
	hub.Join(OrderRoom("o1"), tracker)

	hub.Broadcast(EventOrderStatusUpdated, map[string]string{"id": "o1"},
		RoomAdmin, RoomKitchen, OrderRoom("o1"))

	ev := receiveEvent(t, tracker)
	if ev.Event != EventOrderStatusUpdated {
		t.Errorf("got event %q, want %q", ev.Event, EventOrderStatusUpdated)
	}
}

func TestSlowSubscriberNeverBlocksBroadcast(t *testing.T) {
	hub := NewHub()
	c := hub.NewClient()
	hub.Join(RoomAdmin, c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < sendBuffer*3; i++ {
			hub.Broadcast(EventDashboardUpdate, i, RoomAdmin)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}

	// the buffer holds the earliest events; the rest were dropped
	drained := 0
	for {
		select {
		case <-c.Receive():
			drained++
			continue
		default:
		}
		break
	}
	if drained != sendBuffer {
		t.Errorf("drained %d events, want %d buffered", drained, sendBuffer)
	}
}

func TestCloseLeavesAllRooms(t *testing.T) {
	hub := NewHub()
	c := hub.NewClient()
	hub.Join(RoomAdmin, c)
	hub.Join(OrderRoom("o1"), c)

	hub.Close(c)

	if n := hub.RoomSize(RoomAdmin); n != 0 {
		t.Errorf("admin room still has %d members", n)
	}
	if n := hub.RoomSize(OrderRoom("o1")); n != 0 {
		t.Errorf("order room still has %d members", n)
	}
	if _, ok := <-c.Receive(); ok {
		t.Error("receive channel should be closed")
	}
}

func TestLeaveSingleRoom(t *testing.T) {
	hub := NewHub()
	c := hub.NewClient()
	hub.Join(RoomAdmin, c)
	hub.Join(RoomKitchen, c)

	hub.Leave(RoomAdmin, c)

	hub.Broadcast(EventNewOrder, nil, RoomAdmin)
	assertNoEvent(t, c)
	hub.Broadcast(EventNewOrder, nil, RoomKitchen)
	receiveEvent(t, c)
}
