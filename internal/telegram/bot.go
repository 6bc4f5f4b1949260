package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	"routine-tracker/internal/database"
	"routine-tracker/internal/services"
	"routine-tracker/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	services *services.ServiceManager
	handlers map[string]func(*tgbotapi.Message)
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar o bot: %v", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		services: serviceManager,
		handlers: make(map[string]func(*tgbotapi.Message)),
	}

	bot.registerHandlers()
	log.Printf("🤖 Bot inicializado: %s", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleStart
	b.handlers["/hoje"] = b.handleHoje
	b.handlers["/resumo"] = b.handleResumo
	b.handlers["/mes"] = b.handleMes
	b.handlers["/tarefas"] = b.handleTarefas
	b.handlers["/sync"] = b.handleSync
	b.handlers["/diagnostico"] = b.handleDiagnostico
	b.handlers["/reset"] = b.handleReset
	b.handlers["/help"] = b.handleHelp
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.Chat.ID != b.chatID {
		b.SendMessageOrLogError("⛔ Acesso negado")
		return
	}

	b.handleMessage(update.Message)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		return
	}

	switch {
	case strings.HasPrefix(text, "/add "):
		b.handleAdd(msg)
	case strings.HasPrefix(text, "/del "):
		b.handleDel(msg)
	default:
		if strings.HasPrefix(text, "/") {
			parts := strings.Fields(text)
			command := parts[0]

			if handler, exists := b.handlers[command]; exists {
				handler(msg)
			} else {
				b.SendMessageOrLogError("❌ Comando desconhecido. Use /help")
			}
		}
	}
}

func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer func(bot *tgbotapi.BotAPI, c tgbotapi.Chattable) {
		if _, err := bot.Request(c); err != nil {
			log.Printf("⚠️ Erro respondendo callback: %v", err)
		}
	}(b.bot, tgbotapi.NewCallback(callback.ID, "✅"))

	if callback.Message.Chat.ID != b.chatID {
		return
	}

	data := callback.Data
	log.Printf("Callback recebido: %s", data)

	if strings.HasPrefix(data, "toggle_") {
		b.handleToggle(strings.TrimPrefix(data, "toggle_"), callback.Message.MessageID)
	}
}

// handleToggle flips a task for today, persists it and refreshes the inline
// keyboard in place. The updated day is pushed to the sheet best effort.
func (b *Bot) handleToggle(taskID string, messageID int) {
	today := utils.TodayKey()

	rec, err := b.services.Task.Toggle(today, taskID)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ Erro ao marcar tarefa: %v", err))
		return
	}

	b.services.Sync.PushDayAsync(rec)

	defs, err := b.services.Task.Definitions()
	if err != nil {
		return
	}

	markup := b.taskKeyboard(defs, rec)
	edit := tgbotapi.NewEditMessageReplyMarkup(b.chatID, messageID, markup)
	if _, err := b.bot.Request(edit); err != nil {
		log.Printf("⚠️ Erro ao atualizar teclado: %v", err)
	}
}

// taskKeyboard builds one button per task showing its current state.
func (b *Bot) taskKeyboard(defs []database.TaskDefinition, rec database.DayRecord) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, def := range defs {
		label := fmt.Sprintf("%s %s %s",
			utils.CheckmarkFor(rec.Tasks[def.ID]),
			database.PeriodEmojis[def.Period],
			def.Label,
		)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "toggle_"+def.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
