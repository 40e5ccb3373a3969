package contacts

import tele "gopkg.in/telebot.v4"

// Middleware records the origin chat of every inbound update before
// passing it on. Wired globally so the fallback list accumulates from
// all traffic, not just form submissions.
func Middleware(reg *Registry) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if chat := c.Chat(); chat != nil {
				reg.Remember(chat.ID)
			}
			return next(c)
		}
	}
}
