// Package app assembles the lead-intake bot: configuration, the intake
// form machine, the known-contacts registry, lead delivery, and the
// optional Postgres journal, wired into the shared bot runtime.
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/formacontact/leadbot/core/bootstrap"
	"github.com/formacontact/leadbot/core/cmd"
	"github.com/formacontact/leadbot/core/logger"
	coretelegram "github.com/formacontact/leadbot/core/telegram"
	"github.com/formacontact/leadbot/core/telegram/commands"
	"github.com/formacontact/leadbot/core/telegram/middleware"
	"github.com/formacontact/leadbot/core/telegram/router"
	"github.com/formacontact/leadbot/core/telegram/state"
	"github.com/formacontact/leadbot/internal/contacts"
	"github.com/formacontact/leadbot/internal/form"
	"github.com/formacontact/leadbot/internal/leadstore"
	"github.com/formacontact/leadbot/internal/notify"
	"log/slog"
)

// beginCallbackKey identifies the welcome-menu button that opens the form.
const beginCallbackKey = "new_request"

// App holds the bot's long-lived components.
type App struct {
	cfg      *Config
	machine  *form.Machine
	sessions state.Manager
	contacts *contacts.Registry
	store    *leadstore.Store

	// notifier is built in OnStart once the bot instance exists.
	notifier atomic.Pointer[notify.Dispatcher]
}

// Bootstrap initializes infrastructure and builds the application.
func Bootstrap(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		machine:  form.NewMachine(cfg.Plan(), cfg.StartTokens()),
		sessions: state.NewMemoryManager(),
		contacts: contacts.NewRegistry(),
	}
	if res.DB != nil {
		a.store = leadstore.New(res.DB)
	}
	return a, nil
}

// TelegramRunOptions wires commands, callbacks, FSM handlers, and
// middlewares into run options for the shared bot runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Оформить заявку",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "Справка и ID чата",
	})
	reg.RegisterCommand("/contacts", commands.Command{
		Handler:     a.handleContacts,
		Description: "Чаты для доставки заявок",
		AdminOnly:   true,
	})

	if err := reg.RegisterCallback(beginCallbackKey, a.handleBegin); err != nil {
		return coretelegram.RunOptions{}, err
	}
	reg.SetTextFallback(a.handleIdleText)

	state.RegisterHandler(form.StateWaitingName, a.handleFormText)
	state.RegisterHandler(form.StateWaitingPhone, a.handleFormText)

	rejectAdmin := func(c tele.Context) error {
		return c.Send(msgAdminOnly)
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: rejectAdmin,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.sessions, reg, router.TextOptions{})...)

	mws := coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil)
	mws = append(mws,
		coretelegram.Middleware{Name: "contacts", Use: contacts.Middleware(a.contacts)},
		coretelegram.Middleware{Name: "boundary", Use: middleware.ErrorBoundaryMiddleware(middleware.BoundaryOptions{
			Apology: msgApology,
		})},
	)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart:     a.onStart,
	}, nil
}

// onStart builds the lead dispatcher around the live bot instance and
// replays any journaled leads that never reached an operator.
func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	sender := notify.SenderFunc(func(ctx context.Context, chatID int64, text string) error {
		_, err := rt.Bot.Send(tele.ChatID(chatID), text)
		return err
	})
	d := notify.NewDispatcher(notify.Options{
		OperatorChatID: a.cfg.Notify.OperatorChatID,
	}, sender, a.contacts)
	a.notifier.Store(d)

	if a.store != nil {
		rctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if _, err := a.store.RedeliverPending(rctx, d); err != nil {
			logger.SVCLeads.Warn("startup redelivery failed",
				slog.String("event", "leads.redeliver"),
				slog.String("err", err.Error()),
			)
		}
	}
	return nil
}
