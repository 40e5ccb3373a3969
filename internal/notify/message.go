package notify

import (
	"fmt"
	"strings"

	tghelpers "github.com/formacontact/leadbot/core/telegram/helpers"
	"github.com/formacontact/leadbot/internal/form"
)

// OperatorMessage renders the plain-text notification sent to the
// operator chat for a completed lead.
func OperatorMessage(lead *form.Lead) string {
	username := strings.TrimSpace(lead.Username)
	if username == "" {
		username = "не указан"
	}
	var b strings.Builder
	b.WriteString("🎊 НОВАЯ ЗАЯВКА! 🎊\n\n")
	fmt.Fprintf(&b, "🌟 Имя: %s\n", lead.Name)
	fmt.Fprintf(&b, "📱 Телефон: %s\n", lead.Phone)
	fmt.Fprintf(&b, "🆔 User ID: %d\n", lead.UserID)
	fmt.Fprintf(&b, "👤 Telegram: @%s (%s)\n", username, lead.DisplayName)
	fmt.Fprintf(&b, "🗨️ Chat ID: %d\n", lead.ChatID)
	fmt.Fprintf(&b, "⏰ Время: %s\n", tghelpers.FormatDateTime(lead.SubmittedAt))
	b.WriteString("\n🚀 Клиент готов к сотрудничеству!")
	return b.String()
}
