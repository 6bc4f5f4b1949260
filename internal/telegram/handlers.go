package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"routine-tracker/internal/database"
	"routine-tracker/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handlers.go - handlers dos comandos do bot

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	message := `🎯 <b>Routine Tracker</b>

Comandos disponíveis:
/hoje - Tarefas de hoje (toque para marcar)
/resumo - Resumo do dia
/mes - Progresso dos últimos 30 dias
/tarefas - Lista de tarefas cadastradas
/add [período] [pontos] [nome] - Nova tarefa
/del [id] - Remover tarefa
/sync - Sincronizar com a planilha
/diagnostico - Inspecionar a resposta da planilha
/reset - Zerar o dia de hoje
/help - Ajuda

Exemplo:
/add manha 2 Meditar 10 min`

	b.SendMessageOrLogError(message)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	b.handleStart(msg)
}

func (b *Bot) handleHoje(msg *tgbotapi.Message) {
	today := utils.TodayKey()

	defs, err := b.services.Task.Definitions()
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao carregar tarefas")
		return
	}

	rec, err := b.services.Task.Record(today)
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao carregar o dia")
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📅 <b>Tarefas de %s</b>\n\n", utils.DisplayDate(today)))

	for _, period := range []database.Period{database.Morning, database.Afternoon, database.Night} {
		wrote := false
		for _, def := range defs {
			if def.Period != period {
				continue
			}
			if !wrote {
				message.WriteString(fmt.Sprintf("<b>%s</b>\n", database.PeriodNames[period]))
				wrote = true
			}
			message.WriteString(fmt.Sprintf("%s %s (%d pt)\n",
				utils.CheckmarkFor(rec.Tasks[def.ID]), def.Label, def.Points))
		}
		if wrote {
			message.WriteString("\n")
		}
	}

	message.WriteString(fmt.Sprintf("⭐ Pontos: %d/%d", rec.TotalPoints, database.TotalPossiblePoints(defs)))

	b.SendMessageOrLogError(message.String())

	keyboardMsg := tgbotapi.NewMessage(b.chatID, "👇 Toque para marcar/desmarcar:")
	keyboardMsg.ReplyMarkup = b.taskKeyboard(defs, rec)
	if _, err := b.bot.Send(keyboardMsg); err != nil {
		b.SendMessageOrLogError("❌ Erro ao enviar teclado")
	}
}

func (b *Bot) handleResumo(msg *tgbotapi.Message) {
	today := utils.TodayKey()

	summary, err := b.services.Progress.DaySummary(today)
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao montar o resumo")
		return
	}

	message := fmt.Sprintf(
		"📊 <b>Resumo de %s</b>\n\n"+
			"✅ Tarefas: %d/%d (%.0f%%)\n"+
			"⭐ Pontos: %d/%d",
		utils.DisplayDate(summary.Date),
		summary.Done,
		summary.Total,
		summary.Percentage,
		summary.Points,
		summary.MaxPoints,
	)

	b.SendMessageOrLogError(message)
}

func (b *Bot) handleMes(msg *tgbotapi.Message) {
	progress, err := b.services.Progress.MonthlyProgress()
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao montar o progresso do mês")
		return
	}

	var message strings.Builder
	message.WriteString("📈 <b>Últimos 30 dias</b>\n\n")

	if len(progress.Days) == 0 {
		message.WriteString("📭 Nenhum dia registrado ainda")
	} else {
		for _, day := range progress.Days {
			message.WriteString(fmt.Sprintf("%s  ✅ %d/%d  ⭐ %d\n",
				utils.DisplayDate(day.Date), day.Done, day.Total, day.Points))
		}
		message.WriteString(fmt.Sprintf(
			"\nDias ativos: %d/%d\nPontos no período: %d\n\n%s",
			progress.ActiveDays, len(progress.Days), progress.TotalPoints, progress.Insight,
		))
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleTarefas(msg *tgbotapi.Message) {
	defs, err := b.services.Task.Definitions()
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao carregar tarefas")
		return
	}

	var message strings.Builder
	message.WriteString("📋 <b>Tarefas cadastradas</b>\n\n")
	for _, def := range defs {
		message.WriteString(fmt.Sprintf("%s <b>%s</b> (%d pt)\n<code>%s</code>\n\n",
			database.PeriodEmojis[def.Period], def.Label, def.Points, def.ID))
	}

	b.SendMessageOrLogError(message.String())
}

// handleAdd: /add [manha|tarde|noite] [pontos] [nome da tarefa]
func (b *Bot) handleAdd(msg *tgbotapi.Message) {
	parts := strings.Fields(strings.TrimPrefix(msg.Text, "/add "))
	if len(parts) < 3 {
		b.SendMessageOrLogError("❌ Uso: /add [manha|tarde|noite] [pontos] [nome]")
		return
	}

	period := database.Period(strings.ToLower(parts[0]))
	points, err := strconv.Atoi(parts[1])
	if err != nil {
		b.SendMessageOrLogError("❌ Pontos inválidos. Uso: /add manha 1 Leitura")
		return
	}
	label := strings.Join(parts[2:], " ")

	def, err := b.services.Task.Add(label, period, points)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf("✅ Tarefa criada: %s %s (%d pt)",
		database.PeriodEmojis[def.Period], def.Label, def.Points))
}

func (b *Bot) handleDel(msg *tgbotapi.Message) {
	id := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/del "))
	if id == "" {
		b.SendMessageOrLogError("❌ Uso: /del [id] (veja os ids em /tarefas)")
		return
	}

	if err := b.services.Task.Remove(id); err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}

	b.SendMessageOrLogError("🗑 Tarefa removida")
}

func (b *Bot) handleSync(msg *tgbotapi.Message) {
	b.SendMessageOrLogError("🔄 Sincronizando com a planilha...")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result := b.services.Sync.SyncNow(ctx)

	message := result.Message
	if result.Debug != "" {
		message += "\n\n<pre>" + result.Debug + "</pre>"
	}
	b.SendMessageOrLogError(message)
}

func (b *Bot) handleDiagnostico(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	report, err := b.services.Sync.Diagnose(ctx)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}

	var message strings.Builder
	message.WriteString("🔍 <b>Diagnóstico da planilha</b>\n\n")
	message.WriteString(fmt.Sprintf("Status: <b>%s</b>\n", report.Status))
	if report.Error != "" {
		message.WriteString(fmt.Sprintf("Erro: %s\n", report.Error))
	}
	if report.StructureType != "" {
		message.WriteString(fmt.Sprintf("Estrutura: %s\n", report.StructureType))
	}
	message.WriteString(fmt.Sprintf("Linhas: %d\n", report.RowCount))
	if len(report.Headers) > 0 {
		message.WriteString(fmt.Sprintf("Colunas: %s\n", strings.Join(report.Headers, ", ")))
	}
	if report.RawSnippet != "" {
		message.WriteString("\n<pre>" + report.RawSnippet + "</pre>")
	}

	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleReset(msg *tgbotapi.Message) {
	today := utils.TodayKey()

	rec, err := b.services.Task.ResetDay(today)
	if err != nil {
		b.SendMessageOrLogError("❌ Erro ao zerar o dia")
		return
	}

	b.services.Sync.PushDayAsync(rec)
	b.SendMessageOrLogError(fmt.Sprintf("🔄 Dia %s zerado", utils.DisplayDate(today)))
}
