package app

import (
	"context"
	"log"

	"routine-tracker/internal/config"
	"routine-tracker/internal/database"
	"routine-tracker/internal/services"
	"routine-tracker/internal/telegram"
	"routine-tracker/internal/utils"

	"github.com/robfig/cron/v3"
)

type Application struct {
	config     *config.Config
	db         *database.Database
	bot        *telegram.Bot
	services   *services.ServiceManager
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(cfg *config.Config) (*Application, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	serviceManager := services.NewServiceManager(db, cfg.Sheet.URL, cfg.Sheet.PushURL)
	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, serviceManager)
	if err != nil {
		db.Close()
		return nil, err
	}

	serviceManager.SetNotificationSender(bot)
	ctx, cancel := context.WithCancel(context.Background())

	app := &Application{
		config:     cfg,
		db:         db,
		bot:        bot,
		services:   serviceManager,
		cron:       cron.New(cron.WithLocation(utils.Location())),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	app.setupCronJobs()

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Iniciando aplicação...")

	go a.bot.Start(a.ctx)

	a.cron.Start()

	// Garante o conjunto padrão de tarefas no primeiro uso.
	if _, err := a.services.Task.Definitions(); err != nil {
		log.Printf("⚠️ Erro ao carregar tarefas: %v", err)
	}

	a.sendWelcomeMessage()

	log.Printf("✅ Aplicação iniciada. Bot: @%s", a.bot.GetUsername())

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Parando aplicação...")

	a.cancelFunc()
	a.cron.Stop()

	if err := a.db.Close(); err != nil {
		log.Printf("⚠️ Erro ao fechar o banco: %v", err)
	}

	log.Println("✅ Aplicação parada")
	return nil
}

func (a *Application) setupCronJobs() {
	// Sincronização periódica com a planilha
	if a.services.Sync.Enabled() {
		_, err := a.cron.AddFunc(a.config.Sheet.SyncCron, func() {
			result := a.services.Sync.SyncNow(a.ctx)
			a.services.Notification.SendSyncReport(result)
		})
		if err != nil {
			panic(err)
		}
	}

	// Resumo do dia às 23:55 (horário de São Paulo)
	_, err := a.cron.AddFunc("55 23 * * *", func() {
		a.services.Notification.SendDailySummary()
	})
	if err != nil {
		panic(err)
	}
}

func (a *Application) sendWelcomeMessage() {
	message := `🎯 <b>Routine Tracker</b>

Seu rastreador de rotina está no ar!

Hoje: ` + utils.DisplayDate(utils.TodayKey()) + `

Use os comandos:
/hoje - tarefas de hoje
/resumo - resumo do dia
/mes - progresso de 30 dias
/sync - sincronizar com a planilha
/diagnostico - inspecionar a planilha
/tarefas - lista de tarefas
/help - ajuda`

	if err := a.bot.SendMessage(message); err != nil {
		log.Printf("⚠️ Erro ao enviar boas-vindas: %v", err)
	}
}
