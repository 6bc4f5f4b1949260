package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	Telegram struct {
		Token  string
		ChatID int64
	}
	Sheet struct {
		URL      string // inbound webhook (GET); empty disables sync
		PushURL  string // outbound webhook (POST); empty disables push
		SyncCron string
	}
	Database struct {
		Path string
	}
}

func Load() (*Config, error) {
	token := getEnv("TG_TOKEN", "")
	if token == "" {
		return nil, fmt.Errorf("TG_TOKEN não definido. Configure a variável de ambiente")
	}

	chatIDStr := getEnv("TG_CHAT_ID", "")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TG_CHAT_ID não definido")
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TG_CHAT_ID inválido: %v", err)
	}

	cfg := &Config{}
	cfg.Telegram.Token = token
	cfg.Telegram.ChatID = chatID
	cfg.Sheet.URL = getEnv("SHEET_URL", "")
	cfg.Sheet.PushURL = getEnv("SHEET_PUSH_URL", "")
	cfg.Sheet.SyncCron = getEnv("SYNC_CRON", "*/30 * * * *")
	cfg.Database.Path = getEnv("DB_PATH", "./routine-tracker.db")

	log.Printf("✅ Configuração carregada: BD=%s, planilha=%v", cfg.Database.Path, cfg.Sheet.URL != "")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
