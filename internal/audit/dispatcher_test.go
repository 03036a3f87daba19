package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

type collectingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectingSink) Emit(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *collectingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &collectingSink{})
	if d != nil {
		t.Fatal("expected nil dispatcher when disabled")
	}

	// All methods are nil-safe.
	d.Emit(context.Background(), Event{EventType: "x"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero drops")
	}
}

func TestDispatcherDeliversEvents(t *testing.T) {
	sink := &collectingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{EventType: "sign_in_success"})
	}
	d.Close()

	if got := sink.count(); got != 5 {
		t.Fatalf("expected 5 delivered events, got %d", got)
	}
}

func TestCloseDrainsBuffer(t *testing.T) {
	sink := &collectingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 64, DropIfFull: true}, sink)

	for i := 0; i < 32; i++ {
		d.Emit(context.Background(), Event{EventType: "logout"})
	}
	d.Close()

	if got := sink.count(); got+int(d.Dropped()) != 32 {
		t.Fatalf("expected delivered+dropped=32, got %d+%d", got, d.Dropped())
	}
}

func TestEmitAfterCloseIsIgnored(t *testing.T) {
	sink := &collectingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 4}, sink)
	d.Close()

	d.Emit(context.Background(), Event{EventType: "late"})

	if got := sink.count(); got != 0 {
		t.Fatalf("expected no deliveries after close, got %d", got)
	}
}

type blockingSink struct {
	release chan struct{}
	once    sync.Once
}

func (s *blockingSink) Emit(context.Context, Event) {
	<-s.release
}

func (s *blockingSink) unblock() {
	s.once.Do(func() { close(s.release) })
}

func TestDropIfFullCountsDrops(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// The first event occupies the worker, the second fills the buffer, and
	// everything after that must be dropped without blocking.
	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "burst"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for d.Dropped() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if d.Dropped() == 0 {
		t.Fatal("expected drops under backpressure")
	}

	sink.unblock()
	d.Close()
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{
		EventType:   "sign_in_success",
		PrincipalID: 7,
		Email:       "alice@example.com",
		Success:     true,
	})

	line := strings.TrimSpace(buf.String())
	var decoded Event
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("emitted line is not valid JSON: %v", err)
	}
	if decoded.EventType != "sign_in_success" || decoded.PrincipalID != 7 {
		t.Fatalf("unexpected decoded event %+v", decoded)
	}
}
