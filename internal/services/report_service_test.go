package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-system/internal/entities"
)

func TestDashboardIsCachedUntilInvalidated(t *testing.T) {
	reports := &fakeReportRepo{stats: entities.DashboardStats{Total: 4, New: 1, InProgress: 1, Completed: 1, Overdue: 1}}
	cache := newFakeCache()
	svc := NewReportService(reports, newFakeRequestRepo(), cache, time.Minute, testEngine(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), first.Total)

	second, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, reports.dashboardCalls)

	reports.stats.Total = 5
	svc.InvalidateReports(ctx)

	third, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), third.Total)
	assert.Equal(t, 2, reports.dashboardCalls)
}

func TestReportsWithoutCache(t *testing.T) {
	reports := &fakeReportRepo{}
	svc := NewReportService(reports, newFakeRequestRepo(), nil, time.Minute, testEngine(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	_, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reports.dashboardCalls)

	svc.InvalidateReports(ctx)
}

func TestGroupedReports(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, newFakeRequestRepo(), newFakeCache(), time.Minute, testEngine(), zap.NewNop())
	ctx := context.Background()

	byStage, err := svc.ByStage(ctx)
	require.NoError(t, err)
	require.Len(t, byStage, 4)
	assert.Equal(t, entities.StageNew, byStage[0].Stage)
	assert.Equal(t, entities.StageScrap, byStage[3].Stage)

	byTeam, err := svc.ByTeam(ctx)
	require.NoError(t, err)
	require.Len(t, byTeam, 1)
	assert.Equal(t, "Mechanics", byTeam[0].Team.Name)

	byCategory, err := svc.ByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), byCategory[0].Count)

	completion, err := svc.CompletionTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.33, completion.AverageDuration)
	assert.Equal(t, uint64(3), completion.TotalCompleted)
}

func TestExportRequestsIgnoresPagination(t *testing.T) {
	requests := newFakeRequestRepo(existingRequest(1, entities.StageNew, fixedNow.Add(-time.Hour)))
	svc := NewReportService(&fakeReportRepo{}, requests, nil, 0, testEngine(), zap.NewNop())

	filter := entities.RequestFilter{}
	filter.WithPagination = true
	filter.Limit = 1

	list, err := svc.ExportRequests(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsOverdue)
	assert.False(t, requests.lastFilter.WithPagination)
}
