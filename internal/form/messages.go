package form

import (
	"fmt"

	"github.com/formacontact/leadbot/core/telegram/format"
)

// User-facing texts of the intake dialog. Single language by design.
const (
	msgWelcome = `🎉 *ДОБРО ПОЖАЛОВАТЬ В МИР НЕДВИЖИМОСТИ!* 🎉

🏡 Ваш личный помощник по анализу недвижимости ждет вас!

🌈 Что мы предлагаем:
🔥 Профессиональные консультации
💎 Эксклюзивные предложения
🚀 Быстрый анализ рынка
🎯 Персональный подход

💫 Готовы начать? Жмите кнопку ниже! 👇`

	msgAskName = `🌟 *КАК ВАС ЗОВУТ?* 🌟

✨ Введите ваше имя:
💫 Мы хотим знать, как к вам обращаться!`

	msgAskNameDeepLink = `🌟 *ДОБРО ПОЖАЛОВАТЬ! ДАВАЙТЕ ОФОРМИМ ЗАЯВКУ!* 🌟

✨ Для начала введите ваше имя:
💫 Мы хотим знать, как к вам обращаться!`

	msgNameTooShort = `🎭 Упс! Имя должно быть длиннее! 🎭
✨ Введите имя минимум из 2 символов ✨`

	msgAskPhone = `🎯 *ОТЛИЧНО! ТЕПЕРЬ ТЕЛЕФОН!* 🎯

📱 Укажите номер телефона для связи:

🇷🇺 *Российские номера:*
🌟 +7 916 123 45 67
🌟 8 (916) 123-45-67
🌟 79161234567
🌟 9161234567

🌍 *Международные номера:*
🔥 +380 67 123 45 67 (Украина)
🔥 +1 555 123 4567 (США/Канада)
🔥 +49 30 12345678 (Германия)
🔥 +44 20 7946 0958 (Великобритания)`

	msgPhoneInvalid = `🚨 УПС! ЧТО-ТО ПОШЛО НЕ ТАК! 🚨

💡 *Требования к номеру:*
🎯 От 7 до 15 цифр
🎯 Только цифры и символ +
🎯 Российские или международные номера

🌟 *Попробуйте эти форматы:*
💫 +7 916 123 45 67
💫 8 (916) 123-45-67
💫 +380 67 123 45 67

💪 Попробуйте еще раз! У вас получится!`

	msgStartHint = `🌈 Давайте начнем с команды /start! 🌈
✨ Приключение ждет! ✨`

	// BeginButtonText labels the single welcome-menu action.
	BeginButtonText = "🌟 Оставить заявку 🌟"
)

func msgConfirmation(name, phoneFormatted string) string {
	escaped, err := format.EscapeMarkdown(name, format.MarkdownV1, "")
	if err != nil {
		escaped = name
	}
	return fmt.Sprintf(`🎉 *ПОТРЯСАЮЩЕ! ЗАЯВКА ПРИНЯТА!* 🎉

✨ *Ваши данные:* ✨
🌟 Имя: %s
📱 Телефон: %s

🚀 Наш специалист скоро свяжется с вами!
🌈 Хотите оставить еще одну заявку? Жмите /start!`, escaped, phoneFormatted)
}
