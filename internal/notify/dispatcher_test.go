package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/formacontact/leadbot/internal/contacts"
	"github.com/formacontact/leadbot/internal/form"
)

type fakeSender struct {
	failFor map[int64]bool
	sent    []int64
}

func (f *fakeSender) Send(_ context.Context, chatID int64, _ string) error {
	f.sent = append(f.sent, chatID)
	if f.failFor[chatID] {
		return errors.New("send failed")
	}
	return nil
}

func testLead() *form.Lead {
	return form.NewLead("Ann", "+7 (916) 123-45-67", form.Meta{
		UserID: 42, ChatID: 42, Username: "ann", DisplayName: "Ann K",
		// Local so the rendered timestamp is stable across TZ settings.
		SentAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.Local),
	})
}

func TestDeliverPrimarySuccessStops(t *testing.T) {
	s := &fakeSender{}
	reg := contacts.NewRegistry()
	reg.Remember(100)
	d := NewDispatcher(Options{OperatorChatID: 7}, s, reg)

	rep := d.Deliver(context.Background(), testLead())
	if !rep.Delivered || rep.DeliveredTo != 7 || rep.Fallback {
		t.Fatalf("report = %+v", rep)
	}
	if len(s.sent) != 1 {
		t.Fatalf("fallback must not run after primary success, sent: %v", s.sent)
	}
}

func TestDeliverFallsBackOnPrimaryFailure(t *testing.T) {
	s := &fakeSender{failFor: map[int64]bool{7: true, 100: true}}
	reg := contacts.NewRegistry()
	reg.Remember(100)
	reg.Remember(200)
	reg.Remember(300)
	d := NewDispatcher(Options{OperatorChatID: 7}, s, reg)

	rep := d.Deliver(context.Background(), testLead())
	if !rep.Delivered || rep.DeliveredTo != 200 || !rep.Fallback {
		t.Fatalf("report = %+v", rep)
	}
	want := []int64{7, 100, 200}
	if len(s.sent) != len(want) {
		t.Fatalf("sent = %v, want %v (stop at first success)", s.sent, want)
	}
	for i := range want {
		if s.sent[i] != want[i] {
			t.Fatalf("sent = %v, want %v (first-seen order)", s.sent, want)
		}
	}
}

func TestDeliverSkipsSubmitter(t *testing.T) {
	s := &fakeSender{}
	reg := contacts.NewRegistry()
	reg.Remember(42) // the submitter's own chat
	reg.Remember(500)
	d := NewDispatcher(Options{}, s, reg)

	rep := d.Deliver(context.Background(), testLead())
	if !rep.Delivered || rep.DeliveredTo != 500 {
		t.Fatalf("report = %+v", rep)
	}
	for _, id := range s.sent {
		if id == 42 {
			t.Fatal("submitter must never be notified about their own lead")
		}
	}
}

func TestDeliverUndelivered(t *testing.T) {
	s := &fakeSender{failFor: map[int64]bool{500: true}}
	reg := contacts.NewRegistry()
	reg.Remember(42)
	reg.Remember(500)
	d := NewDispatcher(Options{}, s, reg)

	rep := d.Deliver(context.Background(), testLead())
	if rep.Delivered {
		t.Fatalf("report = %+v, want undelivered", rep)
	}
	if rep.Attempts != 1 {
		t.Errorf("attempts = %d, want 1 (submitter excluded, no primary)", rep.Attempts)
	}
}

func TestDeliverNoCandidates(t *testing.T) {
	s := &fakeSender{}
	reg := contacts.NewRegistry()
	reg.Remember(42)
	d := NewDispatcher(Options{}, s, reg)

	rep := d.Deliver(context.Background(), testLead())
	if rep.Delivered || rep.Attempts != 0 {
		t.Fatalf("report = %+v, want zero attempts", rep)
	}
}

func TestOperatorMessage(t *testing.T) {
	msg := OperatorMessage(testLead())
	for _, part := range []string{"Ann", "+7 (916) 123-45-67", "User ID: 42", "@ann", "01.06.2025 12:30:00"} {
		if !strings.Contains(msg, part) {
			t.Errorf("operator message missing %q:\n%s", part, msg)
		}
	}
}

func TestOperatorMessageNoUsername(t *testing.T) {
	lead := testLead()
	lead.Username = ""
	if !strings.Contains(OperatorMessage(lead), "@не указан") {
		t.Error("missing username placeholder")
	}
}
