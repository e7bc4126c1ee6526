package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/logging"
	"AIUpdatesMonitor/internal/ports"
)

type fakeChannel struct {
	name  string
	err   error
	sends [][]domain.SeenItem
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(_ context.Context, items []domain.SeenItem) error {
	f.sends = append(f.sends, items)
	return f.err
}

type memoryLog struct {
	records []domain.NotificationRecord
}

func (m *memoryLog) RecordNotification(_ context.Context, rec domain.NotificationRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func batch() []domain.SeenItem {
	return []domain.SeenItem{
		{
			Fingerprint: "fp-1",
			SourceType:  domain.SourceRSS,
			SourceName:  "OpenAI Blog",
			Title:       "GPT-5 launch",
			URL:         "https://openai.com/blog/gpt5",
			FirstSeenAt: time.Now(),
		},
	}
}

func TestDispatchAttemptsAllChannels(t *testing.T) {
	t.Parallel()

	failing := &fakeChannel{name: "email", err: errors.New("smtp auth failed")}
	healthy := &fakeChannel{name: "console"}
	history := &memoryLog{}

	d := NewDispatcher([]ports.NotificationChannel{failing, healthy}, history, logging.New("error"))
	d.Dispatch(context.Background(), batch())

	if len(failing.sends) != 1 || len(healthy.sends) != 1 {
		t.Fatalf("every channel must be attempted: email=%d console=%d", len(failing.sends), len(healthy.sends))
	}

	if len(history.records) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(history.records))
	}
	byChannel := map[string]domain.NotificationRecord{}
	for _, rec := range history.records {
		byChannel[rec.Channel] = rec
	}
	if byChannel["email"].Success {
		t.Fatal("failed channel recorded as success")
	}
	if !strings.Contains(byChannel["email"].ErrorMessage, "smtp auth failed") {
		t.Fatalf("audit record lost the error: %q", byChannel["email"].ErrorMessage)
	}
	if !byChannel["console"].Success {
		t.Fatal("healthy channel recorded as failure")
	}
}

func TestDispatchEmptyBatchIsNoop(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{name: "console"}
	history := &memoryLog{}

	d := NewDispatcher([]ports.NotificationChannel{ch}, history, logging.New("error"))
	d.Dispatch(context.Background(), nil)

	if len(ch.sends) != 0 {
		t.Fatal("empty batch must not reach channels")
	}
	if len(history.records) != 0 {
		t.Fatal("empty batch must not be audited")
	}
}

func TestSendTest(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{name: "console"}
	d := NewDispatcher([]ports.NotificationChannel{ch}, nil, logging.New("error"))

	if err := d.SendTest(context.Background()); err != nil {
		t.Fatalf("SendTest error: %v", err)
	}
	if len(ch.sends) != 1 || len(ch.sends[0]) != 1 {
		t.Fatalf("expected one synthetic item, got %+v", ch.sends)
	}
	if ch.sends[0][0].Title != "Test notification" {
		t.Fatalf("unexpected synthetic title: %s", ch.sends[0][0].Title)
	}
}

func TestSendTestAllChannelsFail(t *testing.T) {
	t.Parallel()

	a := &fakeChannel{name: "email", err: errors.New("down")}
	b := &fakeChannel{name: "desktop", err: errors.New("no dbus")}
	d := NewDispatcher([]ports.NotificationChannel{a, b}, nil, logging.New("error"))

	err := d.SendTest(context.Background())
	var notifyErr *domain.NotificationError
	if !errors.As(err, &notifyErr) {
		t.Fatalf("expected NotificationError when every channel fails, got %v", err)
	}
}

func TestSendTestNoChannels(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil, nil, logging.New("error"))
	if err := d.SendTest(context.Background()); err == nil {
		t.Fatal("expected error with no channels configured")
	}
}

func TestConsoleChannelDigest(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ch := NewConsoleChannelTo(&buf)

	if err := ch.Send(context.Background(), batch()); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"1 new update", "OpenAI Blog", "GPT-5 launch", "https://openai.com/blog/gpt5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("digest missing %q:\n%s", want, out)
		}
	}
}

func TestDesktopChannelSummarizesLongBatches(t *testing.T) {
	t.Parallel()

	var gotMessage string
	ch := &DesktopChannel{notify: func(title, message, icon string) error {
		gotMessage = message
		return nil
	}}

	items := make([]domain.SeenItem, 5)
	for i := range items {
		items[i] = domain.SeenItem{SourceName: "Feed", Title: "Item"}
	}
	if err := ch.Send(context.Background(), items); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if !strings.Contains(gotMessage, "...and 2 more") {
		t.Fatalf("expected overflow summary, got %q", gotMessage)
	}
}

func TestHTMLDigestEscapes(t *testing.T) {
	t.Parallel()

	items := []domain.SeenItem{{SourceName: "Feed", Title: `<script>alert("x")</script>`}}
	html, err := htmlDigest(items)
	if err != nil {
		t.Fatalf("htmlDigest error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("item title must be HTML-escaped")
	}
}
