package app

import (
	"context"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/formacontact/leadbot/core/telegram/state"
	"github.com/formacontact/leadbot/internal/contacts"
	"github.com/formacontact/leadbot/internal/form"
	"github.com/formacontact/leadbot/internal/notify"
	"github.com/formacontact/leadbot/internal/phone"
)

// submitContext fakes the update that completes a form. Send failures
// are injectable to model Telegram outages on the confirmation reply.
type submitContext struct {
	tele.Context
	values  map[string]interface{}
	sendErr error
	sent    []string
}

func newSubmitContext(sendErr error) *submitContext {
	return &submitContext{values: map[string]interface{}{}, sendErr: sendErr}
}

func (c *submitContext) Get(key string) interface{}      { return c.values[key] }
func (c *submitContext) Set(key string, v interface{})   { c.values[key] = v }
func (c *submitContext) Update() tele.Update             { return tele.Update{ID: 1} }
func (c *submitContext) Sender() *tele.User              { return &tele.User{ID: 10, Username: "ann"} }
func (c *submitContext) Chat() *tele.Chat                { return &tele.Chat{ID: 20} }

func (c *submitContext) Send(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return c.sendErr
}

type recordingSender struct {
	sent []int64
}

func (s *recordingSender) Send(ctx context.Context, chatID int64, text string) error {
	s.sent = append(s.sent, chatID)
	return nil
}

func newTestApp(sender notify.Sender) *App {
	a := &App{
		cfg:      &Config{Notify: NotifyConfig{OperatorChatID: 7}},
		machine:  form.NewMachine(phone.DefaultPlan, nil),
		sessions: state.NewMemoryManager(),
		contacts: contacts.NewRegistry(),
	}
	a.notifier.Store(notify.NewDispatcher(notify.Options{OperatorChatID: 7}, sender, a.contacts))
	return a
}

func submitPhone(t *testing.T, a *App, c *submitContext) error {
	t.Helper()
	a.sessions.SetState(10, form.StateWaitingPhone)
	a.sessions.SetTemp(10, tempName, "Ann")
	return a.apply(c, form.Input{
		Kind: form.KindText,
		Text: "+7 916 123 45 67",
		Meta: form.Meta{UserID: 10, ChatID: 20, Username: "ann"},
	})
}

func TestSubmitDeliversLeadAndConfirms(t *testing.T) {
	rs := &recordingSender{}
	a := newTestApp(rs)
	c := newSubmitContext(nil)

	if err := submitPhone(t, a, c); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(rs.sent) != 1 || rs.sent[0] != 7 {
		t.Fatalf("lead must reach the operator chat, got %v", rs.sent)
	}
	if len(c.sent) != 1 {
		t.Fatalf("expected one confirmation reply, got %v", c.sent)
	}
	if a.sessions.InProgress(10) {
		t.Fatal("conversation must be cleared after submission")
	}
}

func TestSubmitDeliversLeadWhenConfirmationFails(t *testing.T) {
	rs := &recordingSender{}
	a := newTestApp(rs)
	c := newSubmitContext(context.DeadlineExceeded)

	err := submitPhone(t, a, c)
	if err == nil {
		t.Fatal("expected the failed confirmation send to surface")
	}
	// The handover happens before the user-facing reply: a Telegram
	// outage on the confirmation must never lose the lead.
	if len(rs.sent) != 1 || rs.sent[0] != 7 {
		t.Fatalf("lead must reach the operator despite the reply failure, got %v", rs.sent)
	}
	if a.sessions.InProgress(10) {
		t.Fatal("conversation must be cleared after submission")
	}
}
