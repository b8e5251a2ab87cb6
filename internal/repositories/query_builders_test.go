package repositories

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-system/internal/entities"
	"maintenance-system/pkg/types"
)

func TestRequestListQueryFilters(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	sql, args, err := requestListQuery(entities.RequestFilter{
		Stage:        entities.StageInProgress,
		Type:         entities.RequestPreventive,
		EquipmentID:  7,
		TechnicianID: 3,
		StartDate:    null.TimeFrom(start),
		EndDate:      null.TimeFrom(end),
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM maintenance_requests r")
	assert.Contains(t, sql, "LEFT JOIN equipments e ON e.id = r.equipment_id")
	assert.Contains(t, sql, "r.stage = $1")
	assert.Contains(t, sql, "r.type = $2")
	assert.Contains(t, sql, "r.equipment_id = $3")
	assert.Contains(t, sql, "r.assigned_technician_id = $4")
	assert.Contains(t, sql, "r.scheduled_date >= $5")
	assert.Contains(t, sql, "r.scheduled_date <= $6")
	assert.Contains(t, sql, "ORDER BY r.created_at DESC")
	assert.Equal(t, []interface{}{"In Progress", "Preventive", uint64(7), uint64(3), start, end}, args)
}

func TestRequestListQueryCustomSortAndPagination(t *testing.T) {
	sql, _, err := requestListQuery(entities.RequestFilter{
		Filter: types.Filter{
			Sort:           map[string]string{"scheduledDate": "asc"},
			WithPagination: true,
			Limit:          10,
			Offset:         20,
		},
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "ORDER BY r.scheduled_date ASC")
	assert.NotContains(t, sql, "r.created_at DESC")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
}

func TestRequestCountQueryHasNoPagination(t *testing.T) {
	sql, _, err := requestCountQuery(entities.RequestFilter{
		Stage:  entities.StageNew,
		Filter: types.Filter{WithPagination: true, Limit: 5},
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT COUNT(r.id)")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "ORDER BY")
}

func TestEquipmentListQuerySearch(t *testing.T) {
	sql, args, err := equipmentListQuery(entities.EquipmentFilter{
		Department: entities.DepartmentProduction,
		Filter:     types.Filter{Search: "cnc"},
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "e.department = $1")
	assert.Contains(t, sql, "(e.name ILIKE $2 OR e.serial_number ILIKE $3 OR e.assigned_to ILIKE $4)")
	assert.Equal(t, []interface{}{"Production", "%cnc%", "%cnc%", "%cnc%"}, args)
}

func TestTechnicianListQuery(t *testing.T) {
	sql, args, err := technicianListQuery(TechnicianFilter{TeamID: 2, OnlyActive: true}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "tc.is_active = $1")
	assert.Contains(t, sql, "tc.team_id = $2")
	assert.Contains(t, sql, "ORDER BY tc.name ASC")
	assert.Equal(t, []interface{}{true, uint64(2)}, args)
}

func TestTeamListQueryOnlyActive(t *testing.T) {
	sql, args, err := teamListQuery(types.Filter{}, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "t.is_active = $1")
	assert.Contains(t, sql, "AS members_count")
	assert.Contains(t, sql, "ORDER BY t.name ASC")
	assert.Equal(t, []interface{}{true}, args)
}

func TestDashboardQueryOverdueMatchesReadTimeRule(t *testing.T) {
	sql, args, err := dashboardQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(*) FILTER (WHERE r.stage = $1)")
	assert.Contains(t, sql, "r.stage NOT IN ($4,$5)")
	assert.Contains(t, sql, "r.scheduled_date < NOW()")
	assert.Contains(t, sql, "COUNT(*) FILTER (WHERE (r.stage NOT IN ($4,$5) AND r.scheduled_date < NOW()))")
	assert.Equal(t, []interface{}{"New", "In Progress", "Repaired", "Repaired", "Scrap"}, args)
}

func TestCountWhereSurfacesConditionErrors(t *testing.T) {
	// Срез нельзя сравнивать через <, squirrel вернёт ошибку.
	broken := sq.And{sq.Lt{"r.scheduled_date": []string{"a", "b"}}}
	_, _, err := psql.Select("COUNT(*)").Column(countWhere(broken)).From(requestTable + " r").ToSql()
	assert.Error(t, err)
}

func TestReportQueries(t *testing.T) {
	sql, _, err := byTeamQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LEFT JOIN maintenance_requests r ON r.team_id = t.id")
	assert.Contains(t, sql, "GROUP BY t.id, t.name")

	sql, _, err = byCategoryQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "GROUP BY r.category")

	sql, args, err := completionQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "AVG(r.duration)")
	assert.Contains(t, sql, "r.completed_date IS NOT NULL")
	assert.Equal(t, []interface{}{"Repaired"}, args)
}

func TestSpecializationValueNeverNil(t *testing.T) {
	assert.NotNil(t, specializationValue(nil))
	assert.Empty(t, specializationValue(nil))
	assert.Equal(t, []string{"CNC"}, specializationValue([]string{"CNC"}))
}
