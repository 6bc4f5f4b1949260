package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"routine-tracker/internal/app"
	"routine-tracker/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erro ao carregar configuração: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("❌ Erro ao criar aplicação: %v", err)
	}

	if err := application.Start(); err != nil {
		log.Fatalf("❌ Erro ao iniciar aplicação: %v", err)
	}
	defer application.Stop()

	waitForShutdown()
	log.Println("👋 Encerrando")
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}
