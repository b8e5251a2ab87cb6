package events

import (
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
)

const (
	RequestCreated      = "request.created"
	RequestUpdated      = "request.updated"
	RequestStageChanged = "request.stage_changed"
	RequestAssigned     = "request.assigned"
	RequestDeleted      = "request.deleted"
)

// RequestEvent публикуется после успешной записи заявки в БД.
type RequestEvent struct {
	Kind      string
	RequestID uint64
	// nil для удалённой заявки.
	Request *dto.RequestDTO
	ActorID uint64
	// Пользователь, привязанный к назначенному технику (если есть).
	TechnicianUserID uint64
	PreviousStage    entities.Stage
}

func (e RequestEvent) Name() string {
	return e.Kind
}
