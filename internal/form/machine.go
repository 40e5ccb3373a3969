// Package form implements the lead-intake conversation: a two-field
// (name, phone) dialog expressed as a pure transition function over
// explicit FSM states. The surrounding bot applies transition results
// to the session store and dispatches completed leads.
package form

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/formacontact/leadbot/core/telegram/state"
	"github.com/formacontact/leadbot/internal/phone"
)

// Conversation states owned by the intake form. state.StateIdle means
// no active form.
const (
	StateWaitingName  state.State = "form_waiting_name"
	StateWaitingPhone state.State = "form_waiting_phone"
)

// InputKind discriminates the events the machine reacts to.
type InputKind int

const (
	// KindStart is the /start command, optionally with a deep-link payload.
	KindStart InputKind = iota
	// KindBegin is the explicit "begin" menu interaction.
	KindBegin
	// KindText is a free-form text message.
	KindText
)

// Meta carries the identity and timing of the inbound update.
type Meta struct {
	UserID      int64
	ChatID      int64
	Username    string
	DisplayName string
	SentAt      time.Time
}

// Input is one inbound event as seen by the machine. Name is the value
// accumulated by a previous step, supplied by the caller from the
// session store so Advance stays a pure function.
type Input struct {
	Kind    InputKind
	Text    string
	Payload string // deep-link argument of KindStart
	Name    string
	Meta    Meta
}

// Reply is an outgoing message the caller must deliver to the user.
type Reply struct {
	Text     string
	Markdown bool
	Menu     bool // attach the single-button welcome menu
}

// Result describes the full effect of one transition.
type Result struct {
	Next    state.State
	Replies []Reply
	Lead    *Lead  // non-nil when the form completed
	Name    string // captured name to persist, when non-empty
	Clear   bool   // drop the whole conversation entry
}

// Machine advances the intake conversation. It holds only static
// configuration; all per-user state lives in the session store.
type Machine struct {
	Plan        phone.Plan
	StartTokens map[string]struct{}
}

// DefaultStartTokens are the deep-link arguments that skip the welcome
// menu and open the form directly.
func DefaultStartTokens() map[string]struct{} {
	return map[string]struct{}{
		"form":        {},
		"request":     {},
		"application": {},
	}
}

// NewMachine builds a Machine with the given home plan and start
// tokens; nil tokens fall back to the defaults.
func NewMachine(plan phone.Plan, tokens map[string]struct{}) *Machine {
	if tokens == nil {
		tokens = DefaultStartTokens()
	}
	return &Machine{Plan: plan, StartTokens: tokens}
}

// Advance computes the transition for one input given the current
// conversation state. It is deterministic and side-effect free.
func (m *Machine) Advance(cur state.State, in Input) Result {
	switch in.Kind {
	case KindStart:
		return m.start(in)
	case KindBegin:
		return Result{
			Next:    StateWaitingName,
			Clear:   true,
			Replies: []Reply{{Text: msgAskName, Markdown: true}},
		}
	}

	switch cur {
	case StateWaitingName:
		return m.captureName(in)
	case StateWaitingPhone:
		return m.capturePhone(in)
	default:
		return Result{
			Next:    state.StateIdle,
			Replies: []Reply{{Text: msgStartHint}},
		}
	}
}

func (m *Machine) start(in Input) Result {
	token := strings.ToLower(strings.TrimSpace(in.Payload))
	if _, ok := m.StartTokens[token]; ok && token != "" {
		return Result{
			Next:    StateWaitingName,
			Clear:   true,
			Replies: []Reply{{Text: msgAskNameDeepLink, Markdown: true}},
		}
	}
	return Result{
		Next:    state.StateIdle,
		Clear:   true,
		Replies: []Reply{{Text: msgWelcome, Markdown: true, Menu: true}},
	}
}

func (m *Machine) captureName(in Input) Result {
	name := strings.TrimSpace(in.Text)
	if utf8.RuneCountInString(name) < 2 {
		return Result{
			Next:    StateWaitingName,
			Replies: []Reply{{Text: msgNameTooShort}},
		}
	}
	return Result{
		Next:    StateWaitingPhone,
		Name:    name,
		Replies: []Reply{{Text: msgAskPhone, Markdown: true}},
	}
}

func (m *Machine) capturePhone(in Input) Result {
	cleaned := phone.Clean(in.Text)
	if !m.Plan.Valid(cleaned) {
		return Result{
			Next:    StateWaitingPhone,
			Replies: []Reply{{Text: msgPhoneInvalid, Markdown: true}},
		}
	}
	formatted := m.Plan.Format(cleaned)
	lead := NewLead(in.Name, formatted, in.Meta)
	return Result{
		Next:    state.StateIdle,
		Clear:   true,
		Lead:    lead,
		Replies: []Reply{{Text: msgConfirmation(in.Name, formatted), Markdown: true}},
	}
}
