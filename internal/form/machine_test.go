package form

import (
	"strings"
	"testing"
	"time"

	"github.com/formacontact/leadbot/core/telegram/state"
	"github.com/formacontact/leadbot/internal/phone"
)

func newTestMachine() *Machine {
	return NewMachine(phone.DefaultPlan, nil)
}

func TestStartShowsMenu(t *testing.T) {
	m := newTestMachine()
	res := m.Advance(state.StateIdle, Input{Kind: KindStart})
	if res.Next != state.StateIdle {
		t.Fatalf("next = %q, want idle", res.Next)
	}
	if !res.Clear {
		t.Error("start must reset the conversation")
	}
	if len(res.Replies) != 1 || !res.Replies[0].Menu {
		t.Fatalf("expected a single menu reply, got %+v", res.Replies)
	}
}

func TestStartDeepLinkSkipsMenu(t *testing.T) {
	m := newTestMachine()
	for _, token := range []string{"form", "request", "application", " Form "} {
		res := m.Advance(state.StateIdle, Input{Kind: KindStart, Payload: token})
		if res.Next != StateWaitingName {
			t.Errorf("payload %q: next = %q, want waiting_name", token, res.Next)
		}
		if len(res.Replies) != 1 || res.Replies[0].Menu {
			t.Errorf("payload %q: menu must be skipped", token)
		}
	}

	res := m.Advance(state.StateIdle, Input{Kind: KindStart, Payload: "unknown"})
	if res.Next != state.StateIdle {
		t.Errorf("unknown payload: next = %q, want idle", res.Next)
	}
}

func TestBeginOpensForm(t *testing.T) {
	m := newTestMachine()
	res := m.Advance(state.StateIdle, Input{Kind: KindBegin})
	if res.Next != StateWaitingName || !res.Clear {
		t.Fatalf("begin: got %+v", res)
	}
}

func TestTextWithoutConversation(t *testing.T) {
	m := newTestMachine()
	res := m.Advance(state.StateIdle, Input{Kind: KindText, Text: "hello"})
	if res.Next != state.StateIdle || res.Lead != nil || res.Clear {
		t.Fatalf("idle text: got %+v", res)
	}
	if len(res.Replies) != 1 || !strings.Contains(res.Replies[0].Text, "/start") {
		t.Fatalf("expected start hint, got %+v", res.Replies)
	}
}

func TestNameTooShort(t *testing.T) {
	m := newTestMachine()
	res := m.Advance(StateWaitingName, Input{Kind: KindText, Text: " A "})
	if res.Next != StateWaitingName {
		t.Errorf("next = %q, want waiting_name (no transition)", res.Next)
	}
	if res.Name != "" {
		t.Errorf("name must not be captured, got %q", res.Name)
	}
	if len(res.Replies) != 1 {
		t.Fatalf("expected one re-prompt, got %d replies", len(res.Replies))
	}
}

func TestNameAccepted(t *testing.T) {
	m := newTestMachine()
	res := m.Advance(StateWaitingName, Input{Kind: KindText, Text: "  Ann  "})
	if res.Next != StateWaitingPhone {
		t.Errorf("next = %q, want waiting_phone", res.Next)
	}
	if res.Name != "Ann" {
		t.Errorf("name = %q, want Ann", res.Name)
	}
	if res.Lead != nil {
		t.Error("no lead expected at the name step")
	}
}

func TestPhoneInvalidKeepsState(t *testing.T) {
	m := newTestMachine()
	res := m.Advance(StateWaitingPhone, Input{Kind: KindText, Text: "123456", Name: "Ann"})
	if res.Next != StateWaitingPhone || res.Clear {
		t.Fatalf("invalid phone: got %+v", res)
	}
	if res.Lead != nil {
		t.Error("no lead may be emitted for an invalid phone")
	}
}

func TestPhoneValidEmitsLead(t *testing.T) {
	m := newTestMachine()
	sent := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	meta := Meta{UserID: 42, ChatID: 42, Username: "ann", DisplayName: "Ann K", SentAt: sent}
	res := m.Advance(StateWaitingPhone, Input{Kind: KindText, Text: "+7 916 123 45 67", Name: "Ann", Meta: meta})

	if res.Next != state.StateIdle || !res.Clear {
		t.Fatalf("valid phone must end the conversation, got %+v", res)
	}
	if res.Lead == nil {
		t.Fatal("expected a lead")
	}
	if res.Lead.Phone != "+7 (916) 123-45-67" {
		t.Errorf("phone = %q, want formatted home-plan number", res.Lead.Phone)
	}
	if res.Lead.Name != "Ann" || res.Lead.UserID != 42 || !res.Lead.SubmittedAt.Equal(sent) {
		t.Errorf("lead fields: %+v", res.Lead)
	}
	if res.Lead.ID == "" {
		t.Error("lead id must be set")
	}
	if len(res.Replies) != 1 || !strings.Contains(res.Replies[0].Text, "+7 (916) 123-45-67") {
		t.Fatalf("confirmation must echo the formatted phone, got %+v", res.Replies)
	}
}

func TestAdvanceDeterministic(t *testing.T) {
	m := newTestMachine()
	in := Input{Kind: KindText, Text: "Ann"}
	a := m.Advance(StateWaitingName, in)
	b := m.Advance(StateWaitingName, in)
	if a.Next != b.Next || a.Name != b.Name || len(a.Replies) != len(b.Replies) {
		t.Fatalf("Advance is not deterministic: %+v vs %+v", a, b)
	}
}
