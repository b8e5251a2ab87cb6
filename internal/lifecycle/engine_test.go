package lifecycle

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func cncMachine() *entities.Equipment {
	return &entities.Equipment{
		ID:                7,
		Name:              "CNC Machine",
		SerialNumber:      "CNC-2023-001",
		MaintenanceTeamID: 1,
		Category:          entities.CategoryMachinery,
		Status:            entities.EquipmentActive,
	}
}

func openRequest(stage entities.Stage) entities.Request {
	return entities.Request{
		ID:            42,
		Subject:       "Шпиндель шумит",
		EquipmentID:   7,
		Type:          entities.RequestCorrective,
		Priority:      entities.PriorityHigh,
		Stage:         stage,
		ScheduledDate: fixedNow.Add(24 * time.Hour),
		TeamID:        1,
		Category:      entities.CategoryMachinery,
		CreatedBy:     3,
	}
}

func TestIsOverdue(t *testing.T) {
	past := fixedNow.Add(-time.Hour)
	future := fixedNow.Add(time.Hour)

	cases := []struct {
		stage     entities.Stage
		scheduled time.Time
		want      bool
	}{
		{entities.StageNew, past, true},
		{entities.StageInProgress, past, true},
		{entities.StageRepaired, past, false},
		{entities.StageScrap, past, false},
		{entities.StageNew, future, false},
		{entities.StageInProgress, future, false},
		{entities.StageRepaired, future, false},
		{entities.StageScrap, future, false},
		{entities.StageNew, fixedNow, false},
		{entities.StageNew, time.Time{}, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsOverdue(tc.stage, tc.scheduled, fixedNow), "%s @ %s", tc.stage, tc.scheduled)
	}
}

func TestCreateCopiesTeamAndCategoryFromEquipment(t *testing.T) {
	e := newTestEngine()

	got, err := e.Create(entities.Request{
		Subject:       "Плановая смазка",
		EquipmentID:   7,
		Type:          entities.RequestPreventive,
		ScheduledDate: fixedNow.Add(-24 * time.Hour),
		CreatedBy:     3,
	}, cncMachine())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), got.TeamID)
	assert.Equal(t, entities.CategoryMachinery, got.Category)
	assert.Equal(t, entities.StageNew, got.Stage)
	assert.Equal(t, entities.PriorityMedium, got.Priority)
	assert.True(t, got.IsOverdue)
}

func TestCreateKeepsExplicitTeamAndCategory(t *testing.T) {
	e := newTestEngine()

	got, err := e.Create(entities.Request{
		Subject:       "Проверка проводки",
		EquipmentID:   7,
		Type:          entities.RequestCorrective,
		TeamID:        3,
		Category:      entities.CategoryElectronics,
		ScheduledDate: fixedNow.Add(time.Hour),
	}, cncMachine())
	require.NoError(t, err)

	assert.Equal(t, uint64(3), got.TeamID)
	assert.Equal(t, entities.CategoryElectronics, got.Category)
	assert.False(t, got.IsOverdue)
}

func TestCreateUnknownEquipment(t *testing.T) {
	_, err := newTestEngine().Create(entities.Request{Subject: "x", EquipmentID: 99}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	e := newTestEngine()

	cases := map[string]entities.Request{
		"пустая тема":          {Subject: " ", Type: entities.RequestCorrective, ScheduledDate: fixedNow},
		"неверный тип":         {Subject: "a", Type: "Emergency", ScheduledDate: fixedNow},
		"неверный приоритет":   {Subject: "a", Type: entities.RequestCorrective, Priority: "Urgent", ScheduledDate: fixedNow},
		"неверная стадия":      {Subject: "a", Type: entities.RequestCorrective, Stage: "Done", ScheduledDate: fixedNow},
		"неверная категория":   {Subject: "a", Type: entities.RequestCorrective, Category: "Boats", ScheduledDate: fixedNow},
		"нет плановой даты":    {Subject: "a", Type: entities.RequestCorrective},
		"отрицательная длител": {Subject: "a", Type: entities.RequestCorrective, ScheduledDate: fixedNow, Duration: -1},
	}

	for name, draft := range cases {
		_, err := e.Create(draft, cncMachine())
		assert.True(t, apperrors.IsValidationError(err), name)
	}
}

func TestUpdateRepairedStampsCompletedDate(t *testing.T) {
	e := newTestEngine()

	got, err := e.Update(openRequest(entities.StageInProgress), Patch{Stage: utils.ToPtr(entities.StageRepaired)})
	require.NoError(t, err)

	require.True(t, got.CompletedDate.Valid)
	assert.Equal(t, fixedNow, got.CompletedDate.Time)
	assert.False(t, got.IsOverdue)
}

func TestUpdateRepairedKeepsSuppliedCompletedDate(t *testing.T) {
	e := newTestEngine()
	supplied := fixedNow.Add(-48 * time.Hour)

	got, err := e.Update(openRequest(entities.StageInProgress), Patch{
		Stage:         utils.ToPtr(entities.StageRepaired),
		CompletedDate: &supplied,
	})
	require.NoError(t, err)

	assert.Equal(t, supplied, got.CompletedDate.Time)
}

func TestUpdateAssignOnNewAdvancesStage(t *testing.T) {
	e := newTestEngine()

	got, err := e.Update(openRequest(entities.StageNew), Patch{AssignedTechnicianID: utils.ToPtr(uint64(5))})
	require.NoError(t, err)

	assert.Equal(t, entities.StageInProgress, got.Stage)
	assert.Equal(t, null.Uint64From(5), got.AssignedTechnicianID)
}

func TestUpdateAssignOverridesRepairedWhenCurrentIsNew(t *testing.T) {
	e := newTestEngine()

	got, err := e.Update(openRequest(entities.StageNew), Patch{
		Stage:                utils.ToPtr(entities.StageRepaired),
		AssignedTechnicianID: utils.ToPtr(uint64(5)),
	})
	require.NoError(t, err)

	assert.Equal(t, entities.StageInProgress, got.Stage)
	assert.True(t, got.CompletedDate.Valid, "completedDate остаётся от правила Repaired")
}

func TestUpdateAssignDoesNotMoveLaterStages(t *testing.T) {
	e := newTestEngine()

	for _, stage := range []entities.Stage{entities.StageInProgress, entities.StageRepaired, entities.StageScrap} {
		got, err := e.Update(openRequest(stage), Patch{AssignedTechnicianID: utils.ToPtr(uint64(5))})
		require.NoError(t, err)
		assert.Equal(t, stage, got.Stage)
	}
}

func TestUpdateUnassign(t *testing.T) {
	e := newTestEngine()
	current := openRequest(entities.StageNew)
	current.AssignedTechnicianID = null.Uint64From(5)

	got, err := e.Update(current, Patch{AssignedTechnicianID: utils.ToPtr(uint64(0))})
	require.NoError(t, err)

	assert.False(t, got.AssignedTechnicianID.Valid)
	assert.Equal(t, entities.StageNew, got.Stage)
}

func TestUpdateRecomputesOverdue(t *testing.T) {
	e := newTestEngine()

	got, err := e.Update(openRequest(entities.StageNew), Patch{ScheduledDate: utils.ToPtr(fixedNow.Add(-time.Minute))})
	require.NoError(t, err)
	assert.True(t, got.IsOverdue)

	got, err = e.Update(got, Patch{Stage: utils.ToPtr(entities.StageScrap)})
	require.NoError(t, err)
	assert.False(t, got.IsOverdue)
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	e := newTestEngine()

	_, err := e.Update(openRequest(entities.StageNew), Patch{Duration: utils.ToPtr(-0.5)})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = e.Update(openRequest(entities.StageNew), Patch{Stage: utils.ToPtr(entities.Stage("Done"))})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = e.Update(openRequest(entities.StageNew), Patch{Subject: utils.ToPtr("")})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestReopenKeepsCompletedDateByDefault(t *testing.T) {
	e := newTestEngine()
	current := openRequest(entities.StageRepaired)
	current.CompletedDate = null.TimeFrom(fixedNow.Add(-time.Hour))

	got, err := e.SetStage(current, entities.StageInProgress)
	require.NoError(t, err)
	assert.True(t, got.CompletedDate.Valid)

	got, err = e.Update(current, Patch{Stage: utils.ToPtr(entities.StageNew)})
	require.NoError(t, err)
	assert.True(t, got.CompletedDate.Valid)
}

func TestReopenClearsCompletedDateWhenConfigured(t *testing.T) {
	e := newTestEngine(WithClearCompletedOnReopen(true))
	current := openRequest(entities.StageRepaired)
	current.CompletedDate = null.TimeFrom(fixedNow.Add(-time.Hour))

	got, err := e.SetStage(current, entities.StageInProgress)
	require.NoError(t, err)
	assert.False(t, got.CompletedDate.Valid)

	got, err = e.Update(current, Patch{Stage: utils.ToPtr(entities.StageNew)})
	require.NoError(t, err)
	assert.False(t, got.CompletedDate.Valid)

	got, err = e.Update(current, Patch{Notes: utils.ToPtr("ещё в работе")})
	require.NoError(t, err)
	assert.True(t, got.CompletedDate.Valid, "стадия не менялась")
}

func TestSetStage(t *testing.T) {
	e := newTestEngine()
	current := openRequest(entities.StageInProgress)
	current.AssignedTechnicianID = null.Uint64From(5)
	current.ScheduledDate = fixedNow.Add(-time.Hour)

	got, err := e.SetStage(current, entities.StageRepaired)
	require.NoError(t, err)

	assert.Equal(t, entities.StageRepaired, got.Stage)
	assert.Equal(t, fixedNow, got.CompletedDate.Time)
	assert.Equal(t, null.Uint64From(5), got.AssignedTechnicianID)
	assert.False(t, got.IsOverdue)

	_, err = e.SetStage(current, "Archived")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestSetStageRepairedOverwritesCompletedDate(t *testing.T) {
	e := newTestEngine()
	current := openRequest(entities.StageRepaired)
	current.CompletedDate = null.TimeFrom(fixedNow.Add(-72 * time.Hour))

	got, err := e.SetStage(current, entities.StageRepaired)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got.CompletedDate.Time)
}

func TestAssign(t *testing.T) {
	e := newTestEngine()

	got, err := e.Assign(openRequest(entities.StageNew), 9)
	require.NoError(t, err)
	assert.Equal(t, entities.StageInProgress, got.Stage)
	assert.Equal(t, null.Uint64From(9), got.AssignedTechnicianID)

	got, err = e.Assign(openRequest(entities.StageRepaired), 9)
	require.NoError(t, err)
	assert.Equal(t, entities.StageRepaired, got.Stage)

	_, err = e.Assign(openRequest(entities.StageNew), 0)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestDeriveUsesReadTime(t *testing.T) {
	now := fixedNow
	e := NewEngine(WithClock(func() time.Time { return now }))

	r := openRequest(entities.StageNew)
	r.ScheduledDate = fixedNow.Add(time.Hour)
	assert.False(t, e.Derive(r).IsOverdue)

	now = fixedNow.Add(2 * time.Hour)
	assert.True(t, e.Derive(r).IsOverdue, "просрочка появляется без записи")

	list := e.DeriveAll([]entities.Request{r, openRequest(entities.StageScrap)})
	assert.True(t, list[0].IsOverdue)
	assert.False(t, list[1].IsOverdue)
}

func TestScenarioCNCMachineLifecycle(t *testing.T) {
	e := newTestEngine()

	created, err := e.Create(entities.Request{
		Subject:       "Вибрация шпинделя",
		EquipmentID:   7,
		Type:          entities.RequestCorrective,
		ScheduledDate: fixedNow.Add(-24 * time.Hour),
		CreatedBy:     3,
	}, cncMachine())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.TeamID)
	assert.Equal(t, entities.CategoryMachinery, created.Category)
	assert.Equal(t, entities.StageNew, created.Stage)
	assert.True(t, created.IsOverdue)

	assigned, err := e.Assign(created, 11)
	require.NoError(t, err)
	assert.Equal(t, entities.StageInProgress, assigned.Stage)
	assert.Equal(t, uint64(11), assigned.AssignedTechnicianID.Uint64)

	repaired, err := e.SetStage(assigned, entities.StageRepaired)
	require.NoError(t, err)
	assert.WithinDuration(t, fixedNow, repaired.CompletedDate.Time, time.Second)
	assert.False(t, repaired.IsOverdue)
}
