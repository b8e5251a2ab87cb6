// Package lifecycle держит правила жизненного цикла заявки на обслуживание:
// заполнение по оборудованию, автопереходы стадий и вычисление просрочки.
// Пакет не ходит в БД, время берётся из подставляемых часов.
package lifecycle

import (
	"math"
	"strings"
	"time"

	"github.com/aarondl/null/v8"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
)

// Patch: частичное обновление заявки. nil означает «поле не трогаем».
type Patch struct {
	Subject     *string
	Description *string
	Type        *entities.RequestType
	Priority    *entities.Priority
	Stage       *entities.Stage
	// 0 снимает исполнителя и автоперехода не вызывает.
	AssignedTechnicianID *uint64
	ScheduledDate        *time.Time
	CompletedDate        *time.Time
	Duration             *float64
	Notes                *string
}

type Option func(*Engine)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithClearCompletedOnReopen включает сброс completedDate при выходе из Repaired.
func WithClearCompletedOnReopen(enabled bool) Option {
	return func(e *Engine) {
		e.clearCompletedOnReopen = enabled
	}
}

type Engine struct {
	now                    func() time.Time
	clearCompletedOnReopen bool
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now: текущее время по часам движка.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Create готовит новую заявку. equipment == nil значит, что оборудования нет.
// Команда и категория копируются с оборудования, только если не заданы явно.
func (e *Engine) Create(draft entities.Request, equipment *entities.Equipment) (entities.Request, error) {
	if equipment == nil {
		return entities.Request{}, apperrors.NotFoundf("оборудование %d", draft.EquipmentID)
	}

	r := draft
	r.EquipmentID = equipment.ID
	if r.TeamID == 0 {
		r.TeamID = equipment.MaintenanceTeamID
	}
	if r.Category == "" {
		r.Category = equipment.Category
	}
	if r.Priority == "" {
		r.Priority = entities.PriorityMedium
	}
	if r.Stage == "" {
		r.Stage = entities.StageNew
	}

	if err := Validate(r); err != nil {
		return entities.Request{}, err
	}

	r.IsOverdue = IsOverdue(r.Stage, r.ScheduledDate, e.now())
	return r, nil
}

// Update применяет patch и затем автоправила: Repaired без completedDate
// получает текущее время, назначение техника на New переводит в In Progress.
func (e *Engine) Update(current entities.Request, patch Patch) (entities.Request, error) {
	now := e.now()
	next := current

	if patch.Subject != nil {
		next.Subject = *patch.Subject
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Type != nil {
		next.Type = *patch.Type
	}
	if patch.Priority != nil {
		next.Priority = *patch.Priority
	}
	if patch.Stage != nil {
		next.Stage = *patch.Stage
	}
	if patch.AssignedTechnicianID != nil {
		if *patch.AssignedTechnicianID == 0 {
			next.AssignedTechnicianID = null.Uint64{}
		} else {
			next.AssignedTechnicianID = null.Uint64From(*patch.AssignedTechnicianID)
		}
	}
	if patch.ScheduledDate != nil {
		next.ScheduledDate = *patch.ScheduledDate
	}
	if patch.CompletedDate != nil {
		next.CompletedDate = null.TimeFrom(*patch.CompletedDate)
	}
	if patch.Duration != nil {
		next.Duration = *patch.Duration
	}
	if patch.Notes != nil {
		next.Notes = *patch.Notes
	}

	if patch.Stage != nil && *patch.Stage == entities.StageRepaired && patch.CompletedDate == nil {
		next.CompletedDate = null.TimeFrom(now)
	}

	// Срабатывает после правила Repaired, поэтому completedDate может остаться заполненной.
	if patch.AssignedTechnicianID != nil && *patch.AssignedTechnicianID != 0 && current.Stage == entities.StageNew {
		next.Stage = entities.StageInProgress
	}

	if patch.CompletedDate == nil {
		e.reopen(current, &next)
	}

	if err := Validate(next); err != nil {
		return entities.Request{}, err
	}

	next.IsOverdue = IsOverdue(next.Stage, next.ScheduledDate, now)
	return next, nil
}

// SetStage: перенос карточки на доске. Исполнителя не трогает.
func (e *Engine) SetStage(current entities.Request, stage entities.Stage) (entities.Request, error) {
	if !stage.IsValid() {
		return entities.Request{}, apperrors.NewValidationError("недопустимая стадия %q", stage)
	}

	now := e.now()
	next := current
	next.Stage = stage
	if stage == entities.StageRepaired {
		next.CompletedDate = null.TimeFrom(now)
	}
	e.reopen(current, &next)

	next.IsOverdue = IsOverdue(next.Stage, next.ScheduledDate, now)
	return next, nil
}

// Assign назначает техника. Из New заявка уходит в In Progress.
func (e *Engine) Assign(current entities.Request, technicianID uint64) (entities.Request, error) {
	if technicianID == 0 {
		return entities.Request{}, apperrors.NewValidationError("technicianId обязателен")
	}

	next := current
	next.AssignedTechnicianID = null.Uint64From(technicianID)
	if current.Stage == entities.StageNew {
		next.Stage = entities.StageInProgress
	}

	next.IsOverdue = IsOverdue(next.Stage, next.ScheduledDate, e.now())
	return next, nil
}

// Derive проставляет вычисляемые при чтении поля.
func (e *Engine) Derive(r entities.Request) entities.Request {
	r.IsOverdue = IsOverdue(r.Stage, r.ScheduledDate, e.now())
	return r
}

func (e *Engine) DeriveAll(list []entities.Request) []entities.Request {
	now := e.now()
	for i := range list {
		list[i].IsOverdue = IsOverdue(list[i].Stage, list[i].ScheduledDate, now)
	}
	return list
}

func (e *Engine) reopen(current entities.Request, next *entities.Request) {
	if e.clearCompletedOnReopen && current.Stage == entities.StageRepaired && next.Stage != entities.StageRepaired {
		next.CompletedDate = null.Time{}
	}
}

// IsOverdue: плановая дата в прошлом, а заявка ещё не закрыта.
func IsOverdue(stage entities.Stage, scheduled time.Time, now time.Time) bool {
	if scheduled.IsZero() || stage.IsClosed() {
		return false
	}
	return scheduled.Before(now)
}

// Validate проверяет обязательные поля и закрытые множества значений.
func Validate(r entities.Request) error {
	var problems []string

	if strings.TrimSpace(r.Subject) == "" {
		problems = append(problems, "subject обязателен")
	}
	if r.EquipmentID == 0 {
		problems = append(problems, "equipment обязателен")
	}
	if !r.Type.IsValid() {
		problems = append(problems, "недопустимый тип заявки \""+string(r.Type)+"\"")
	}
	if !r.Priority.IsValid() {
		problems = append(problems, "недопустимый приоритет \""+string(r.Priority)+"\"")
	}
	if !r.Stage.IsValid() {
		problems = append(problems, "недопустимая стадия \""+string(r.Stage)+"\"")
	}
	if r.Category != "" && !r.Category.IsValid() {
		problems = append(problems, "недопустимая категория \""+string(r.Category)+"\"")
	}
	if r.ScheduledDate.IsZero() {
		problems = append(problems, "scheduledDate обязателен")
	}
	if r.Duration < 0 || math.IsNaN(r.Duration) || math.IsInf(r.Duration, 0) {
		problems = append(problems, "duration не может быть отрицательной")
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError("%s", strings.Join(problems, "; "))
	}
	return nil
}
