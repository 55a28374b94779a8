package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mersinbot/masters-backend/internal/goroutine"
	"github.com/mersinbot/masters-backend/internal/logger"
)

// AdminNotifier отправляет уведомления администраторам в Telegram.
// Все отправки best-effort: ошибки логируются и не пробрасываются,
// уведомление не должно мешать основной операции.
type AdminNotifier struct {
	bot         *tgbotapi.BotAPI
	adminChatID int64
	adminIDs    []int64
}

// NewAdminNotifier создаёт нотификатор. Пустой токен допустим — тогда
// уведомления просто пишутся в лог (удобно для локальной разработки).
func NewAdminNotifier(botToken string, adminChatID int64, adminIDs []int64) (*AdminNotifier, error) {
	n := &AdminNotifier{adminChatID: adminChatID, adminIDs: adminIDs}

	if botToken == "" {
		logger.Log.Warn("notify: BOT_TOKEN пуст, уведомления администраторам отключены")
		return n, nil
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("notify: не удалось создать бота: %w", err)
	}
	n.bot = bot
	return n, nil
}

// MasterSubmitted уведомляет о новой анкете мастера на модерацию.
func (n *AdminNotifier) MasterSubmitted(masterID int64, name, phone string) {
	n.send(fmt.Sprintf("Новая анкета мастера #%d на модерацию:\n%s, %s", masterID, name, phone))
}

// ComplaintCreated уведомляет о жалобе на мастера.
func (n *AdminNotifier) ComplaintCreated(complaintID, masterID int64, text string) {
	n.send(fmt.Sprintf("Жалоба #%d на мастера #%d:\n%s", complaintID, masterID, text))
}

// PremiumRequested уведомляет о заявке на премиум-размещение.
func (n *AdminNotifier) PremiumRequested(requestID, masterID int64) {
	n.send(fmt.Sprintf("Заявка #%d на премиум от мастера #%d", requestID, masterID))
}

// ServiceRequested уведомляет о консьерж-заявке.
func (n *AdminNotifier) ServiceRequested(requestID int64, categories, phone, name string) {
	n.send(fmt.Sprintf("Консьерж-заявка #%d:\n%s\n%s, %s", requestID, categories, name, phone))
}

// send рассылает текст в админский чат или каждому администратору.
func (n *AdminNotifier) send(text string) {
	if n.bot == nil {
		logger.Log.Infof("notify (выключено): %s", text)
		return
	}

	goroutine.SafeGo(func() {
		targets := n.adminIDs
		if n.adminChatID != 0 {
			targets = []int64{n.adminChatID}
		}
		for _, chatID := range targets {
			msg := tgbotapi.NewMessage(chatID, text)
			if _, err := n.bot.Send(msg); err != nil {
				logger.Log.Errorf("notify: не удалось отправить сообщение в чат %d: %v", chatID, err)
			}
		}
	})
}
