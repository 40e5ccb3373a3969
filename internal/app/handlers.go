package app

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/formacontact/leadbot/core/logger"
	"log/slog"

	tghelpers "github.com/formacontact/leadbot/core/telegram/helpers"
	"github.com/formacontact/leadbot/core/telegram/keyboard"
	"github.com/formacontact/leadbot/core/telegram/state"
	"github.com/formacontact/leadbot/internal/form"
)

// tempName is the session key holding the captured name between steps.
const tempName = "form_name"

func (a *App) handleStart(c tele.Context) error {
	payload := ""
	if msg := c.Message(); msg != nil {
		payload = msg.Payload
	}
	return a.apply(c, form.Input{
		Kind:    form.KindStart,
		Payload: payload,
		Meta:    metaFrom(c),
	})
}

func (a *App) handleBegin(c tele.Context) error {
	return a.apply(c, form.Input{
		Kind: form.KindBegin,
		Meta: metaFrom(c),
	})
}

func (a *App) handleFormText(c tele.Context) error {
	return a.apply(c, form.Input{
		Kind: form.KindText,
		Text: c.Text(),
		Meta: metaFrom(c),
	})
}

// handleIdleText answers free text outside an active form.
func (a *App) handleIdleText(c tele.Context) error {
	return a.handleFormText(c)
}

func (a *App) handleHelp(c tele.Context) error {
	chatID := int64(0)
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	return tghelpers.SendMD(c, msgHelp(chatID))
}

func (a *App) handleContacts(c tele.Context) error {
	return tghelpers.SendMD(c, msgContacts(a.cfg.Notify.OperatorChatID, a.contacts.Known()))
}

// apply feeds one input through the form machine and performs the
// resulting effects: session updates, replies, and lead delivery.
func (a *App) apply(c tele.Context, in form.Input) error {
	userID := in.Meta.UserID
	cur := a.sessions.GetState(userID)

	if in.Name == "" {
		if v, ok := a.sessions.GetTemp(userID, tempName); ok {
			if s, ok := v.(string); ok {
				in.Name = s
			}
		}
	}

	res := a.machine.Advance(cur, in)

	if res.Clear {
		a.sessions.Clear(userID)
	}
	if res.Name != "" {
		a.sessions.SetTemp(userID, tempName, res.Name)
	}
	if res.Next != state.StateIdle {
		a.sessions.SetState(userID, res.Next)
	}

	// Hand a completed lead to the operator side before answering the
	// user: a failed confirmation send must never lose the lead.
	if res.Lead != nil {
		logger.Info(tghelpers.BuildContext(c), "service.form", "form.completed",
			slog.String("lead_id", res.Lead.ID),
			slog.Int64("user_id", userID),
			slog.Int64("chat_id", res.Lead.ChatID),
		)
		a.deliver(c, res.Lead)
	}

	for _, rep := range res.Replies {
		var err error
		switch {
		case rep.Menu:
			err = tghelpers.SendMD(c, rep.Text, welcomeMenu())
		case rep.Markdown:
			err = tghelpers.SendMD(c, rep.Text)
		default:
			err = tghelpers.SendText(c, rep.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// deliver hands a completed lead to the operator side. Delivery failures
// are logged and journaled; the submitting user already got their
// confirmation and is never shown an operator-side problem.
func (a *App) deliver(c tele.Context, lead *form.Lead) {
	d := a.notifier.Load()
	if d == nil {
		return
	}
	ctx := tghelpers.BuildContext(c)
	rep := d.Deliver(ctx, lead)
	if a.store != nil {
		// Record failures are logged inside the store.
		_ = a.store.Record(ctx, *lead, rep)
	}
}

func welcomeMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: form.BeginButtonText, Unique: beginCallbackKey},
	})
}

func metaFrom(c tele.Context) form.Meta {
	var m form.Meta
	if sender := c.Sender(); sender != nil {
		m.UserID = sender.ID
		m.Username = sender.Username
		m.DisplayName = strings.TrimSpace(strings.TrimSpace(sender.FirstName) + " " + strings.TrimSpace(sender.LastName))
	}
	if chat := c.Chat(); chat != nil {
		m.ChatID = chat.ID
	}
	if msg := c.Message(); msg != nil {
		m.SentAt = msg.Time()
	}
	return m
}
