package services

import (
	"routine-tracker/internal/database"
)

type ServiceManager struct {
	Notification *NotificationService
	Progress     *ProgressService
	Task         *TaskService
	Sync         *SyncService
	repository   *database.Repository
}

func NewServiceManager(db *database.Database, sheetURL, pushURL string) *ServiceManager {
	repo := database.NewRepository(db)

	return &ServiceManager{
		Notification: nil,
		Progress:     NewProgressService(repo),
		Task:         NewTaskService(repo),
		Sync:         NewSyncService(repo, sheetURL, pushURL),
		repository:   repo,
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm.Progress)
}
