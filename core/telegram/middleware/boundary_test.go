package middleware

import (
	"errors"
	"testing"

	"github.com/formacontact/leadbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// apologyContext records Send calls; everything else is unused by the
// middleware under test.
type apologyContext struct {
	tele.Context
	sent []string
}

func (c *apologyContext) Send(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func TestBoundaryApologizesOnHandlerError(t *testing.T) {
	_ = logger.InitLogger(nil)

	h := ErrorBoundaryMiddleware(BoundaryOptions{Apology: "sorry"})(func(tele.Context) error {
		return errors.New("boom")
	})

	c := &apologyContext{}
	if err := h(c); err != nil {
		t.Fatalf("boundary must swallow handler errors, got %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "sorry" {
		t.Fatalf("expected one apology, got %v", c.sent)
	}
}

func TestPanicInRoutedHandlerReachesBoundary(t *testing.T) {
	_ = logger.InitLogger(nil)

	// Routers wrap handlers in RecoverMiddleware; the boundary sits
	// outside that chain. The user must still get an answer on panic.
	h := ErrorBoundaryMiddleware(BoundaryOptions{Apology: "sorry"})(
		RecoverMiddleware(func(tele.Context) error {
			panic("boom")
		}),
	)

	c := &apologyContext{}
	if err := h(c); err != nil {
		t.Fatalf("panic must not escape the chain, got %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "sorry" {
		t.Fatalf("expected one apology after panic, got %v", c.sent)
	}
}

func TestRecoverReturnsPanicAsError(t *testing.T) {
	_ = logger.InitLogger(nil)

	h := RecoverMiddleware(func(tele.Context) error {
		panic("boom")
	})
	if err := h(&apologyContext{}); err == nil {
		t.Fatal("recovered panic must surface as an error")
	}
}
