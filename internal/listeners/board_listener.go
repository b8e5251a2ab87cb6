package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"maintenance-system/internal/events"
	"maintenance-system/pkg/eventbus"
)

// BoardNotifier: то, что слушателю нужно от WebSocket-хаба.
type BoardNotifier interface {
	Broadcast(messageType string, payload interface{}) error
	SendMessageToUser(userID uint64, payload interface{}, messageType string) error
}

// Сообщение лично технику при назначении на него заявки.
const AssignedToYou = "request.assigned_to_you"

type boardPayload struct {
	RequestID     uint64      `json:"requestId"`
	Request       interface{} `json:"request,omitempty"`
	PreviousStage string      `json:"previousStage,omitempty"`
	ActorID       uint64      `json:"actorId,omitempty"`
}

// BoardListener пересылает изменения заявок на открытые канбан-доски.
type BoardListener struct {
	notifier BoardNotifier
	logger   *zap.Logger
}

func NewBoardListener(notifier BoardNotifier, logger *zap.Logger) *BoardListener {
	return &BoardListener{notifier: notifier, logger: logger}
}

func (l *BoardListener) Register(bus *eventbus.Bus) {
	for _, name := range []string{
		events.RequestCreated,
		events.RequestUpdated,
		events.RequestStageChanged,
		events.RequestAssigned,
		events.RequestDeleted,
	} {
		bus.Subscribe(name, l.handle)
	}
	l.logger.Info("BoardListener подписан на события заявок")
}

func (l *BoardListener) handle(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}

	payload := boardPayload{
		RequestID:     e.RequestID,
		PreviousStage: string(e.PreviousStage),
		ActorID:       e.ActorID,
	}
	if e.Request != nil {
		payload.Request = e.Request
	}

	if err := l.notifier.Broadcast(e.Kind, payload); err != nil {
		return fmt.Errorf("рассылка %s: %w", e.Kind, err)
	}

	if e.Kind == events.RequestAssigned && e.TechnicianUserID != 0 && e.TechnicianUserID != e.ActorID {
		if err := l.notifier.SendMessageToUser(e.TechnicianUserID, payload, AssignedToYou); err != nil {
			return fmt.Errorf("уведомление технику: %w", err)
		}
	}

	l.logger.Debug("Событие заявки отправлено на доску",
		zap.String("event", e.Kind),
		zap.Uint64("requestID", e.RequestID),
	)
	return nil
}
