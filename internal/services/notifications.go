package services

import (
	"fmt"
	"log"

	"routine-tracker/internal/utils"
)

// NotificationSender is how services push messages without depending on the
// bot package.
type NotificationSender interface {
	SendMessage(text string) error
}

type NotificationService struct {
	sender   NotificationSender
	progress *ProgressService
}

func NewNotificationService(sender NotificationSender, progress *ProgressService) *NotificationService {
	return &NotificationService{
		sender:   sender,
		progress: progress,
	}
}

// SendDailySummary pushes the end-of-day recap, scheduled late evening in
// São Paulo time.
func (ns *NotificationService) SendDailySummary() {
	today := utils.TodayKey()
	summary, err := ns.progress.DaySummary(today)
	if err != nil {
		log.Printf("⚠️ Erro ao montar resumo do dia: %v", err)
		return
	}

	message := fmt.Sprintf(
		"📊 <b>Resumo do dia %s</b>\n\n"+
			"✅ Tarefas: %d/%d (%.0f%%)\n"+
			"⭐ Pontos: %d/%d\n\n"+
			"Amanhã é um novo dia! 🌅",
		utils.DisplayDate(today),
		summary.Done,
		summary.Total,
		summary.Percentage,
		summary.Points,
		summary.MaxPoints,
	)

	if err := ns.sender.SendMessage(message); err != nil {
		log.Printf("❌ Erro ao enviar resumo do dia: %v", err)
	}
}

// SendSyncReport notifies only when a scheduled sync fails; successes just go
// to the log to avoid spamming the chat.
func (ns *NotificationService) SendSyncReport(result SyncResult) {
	if result.Success {
		log.Printf("✅ Sync agendado: %s", result.Message)
		return
	}

	message := "⚠️ <b>Sincronização automática falhou</b>\n\n" + result.Message
	if result.Debug != "" {
		message += "\n\n<pre>" + result.Debug + "</pre>"
	}

	if err := ns.sender.SendMessage(message); err != nil {
		log.Printf("❌ Erro ao enviar relatório de sync: %v", err)
	}
}
