package app

import (
	"fmt"
	"strings"
)

const msgApology = `😔 Упс! Что-то пошло не так! 😔
✨ Попробуйте еще раз или начните заново: /start ✨`

const msgAdminOnly = "🔒 Эта команда доступна только администратору."

func msgHelp(chatID int64) string {
	return fmt.Sprintf(`ℹ️ *Справка*

🚀 /start — оформить заявку

🆔 ID этого чата: `+"`%d`"+`
💬 Сообщите этот ID администратору, чтобы заявки приходили сюда.`, chatID)
}

func msgContacts(operatorChatID int64, known []int64) string {
	var b strings.Builder
	b.WriteString("📇 *Доставка заявок*\n\n")
	if operatorChatID != 0 {
		fmt.Fprintf(&b, "🎯 Основной чат: `%d`\n", operatorChatID)
	} else {
		b.WriteString("🎯 Основной чат: не задан\n")
	}
	fmt.Fprintf(&b, "👥 Известных чатов: %d\n", len(known))
	for _, id := range known {
		fmt.Fprintf(&b, "• `%d`\n", id)
	}
	return b.String()
}
