package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageClosedSet(t *testing.T) {
	for _, s := range Stages {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Stage("Done").IsValid())
	assert.False(t, Stage("new").IsValid())

	assert.True(t, StageRepaired.IsClosed())
	assert.True(t, StageScrap.IsClosed())
	assert.False(t, StageNew.IsClosed())
	assert.False(t, StageInProgress.IsClosed())
}

func TestOtherEnums(t *testing.T) {
	assert.True(t, EquipmentUnderMaintenance.IsValid())
	assert.False(t, EquipmentStatus("Broken").IsValid())
	assert.True(t, RequestPreventive.IsValid())
	assert.False(t, RequestType("Emergency").IsValid())
	assert.True(t, PriorityCritical.IsValid())
	assert.False(t, Priority("Urgent").IsValid())
	assert.True(t, DepartmentWarehouse.IsValid())
	assert.True(t, CategoryTools.IsValid())
	assert.True(t, SpecializationIT.IsValid())
	assert.False(t, UserRole("Admin").IsValid())
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Tom Wilson":       "TW",
		"sarah connor":     "SC",
		"Alex":             "A",
		"Jean Claude Van":  "JC",
		"  Иван   Петров ": "ИП",
		"":                 "",
	}
	for name, want := range cases {
		assert.Equal(t, want, Initials(name), name)
	}
}
