package middleware

import (
	"runtime/debug"

	"github.com/formacontact/leadbot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// BoundaryOptions configures the error boundary applied around handlers.
type BoundaryOptions struct {
	// Apology is sent to the chat when a handler fails. Empty disables the reply.
	Apology string
}

// ErrorBoundaryMiddleware converts handler errors and panics into a log entry
// plus a single apology message, so one broken update never kills the bot and
// the user is never left without an answer.
func ErrorBoundaryMiddleware(opts BoundaryOptions) tele.MiddlewareFunc {
	apologize := func(c tele.Context) {
		if opts.Apology == "" {
			return
		}
		if err := c.Send(opts.Apology); err != nil {
			logger.TG.Warn("apology send failed",
				slog.String("event", "tg.apology_failed"),
				slog.Any("err", err),
			)
		}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.TG.Error("handler panic",
						slog.String("event", "tg.handler_panic"),
						slog.Any("err", r),
						slog.String("stack", string(debug.Stack())),
					)
					apologize(c)
				}
			}()

			if err := next(c); err != nil {
				logger.TG.Error("handler failed",
					slog.String("event", "tg.handler_error"),
					slog.Any("err", err),
				)
				apologize(c)
			}
			return nil
		}
	}
}
