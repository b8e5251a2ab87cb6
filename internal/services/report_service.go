package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/utils"
)

const reportsGenerationKey = "reports:generation"

type ReportServiceInterface interface {
	Dashboard(ctx context.Context) (*dto.DashboardDTO, error)
	ByTeam(ctx context.Context) ([]dto.TeamReportItemDTO, error)
	ByCategory(ctx context.Context) ([]dto.CategoryReportItemDTO, error)
	ByStage(ctx context.Context) ([]dto.StageReportItemDTO, error)
	CompletionTime(ctx context.Context) (*dto.CompletionTimeDTO, error)
	ExportRequests(ctx context.Context, filter entities.RequestFilter) ([]dto.RequestDTO, error)
	InvalidateReports(ctx context.Context)
}

type reportService struct {
	reportRepo  repositories.ReportRepositoryInterface
	requestRepo repositories.RequestRepositoryInterface
	cache       repositories.CacheRepositoryInterface
	ttl         time.Duration
	engine      *lifecycle.Engine
	logger      *zap.Logger
}

// NewReportService: cache может быть nil, тогда отчёты всегда считаются в БД.
func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	engine *lifecycle.Engine,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		reportRepo:  reportRepo,
		requestRepo: requestRepo,
		cache:       cache,
		ttl:         ttl,
		engine:      engine,
		logger:      logger,
	}
}

// cached читает отчёт из Redis или считает его и кладёт обратно.
// Ключ включает поколение: InvalidateReports сдвигает его, старые ключи истекают сами.
func cached[T any](ctx context.Context, s *reportService, name string, load func() (T, error)) (T, error) {
	if s.cache == nil || s.ttl <= 0 {
		return load()
	}

	generation, err := s.cache.Get(ctx, reportsGenerationKey)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("Кеш отчётов недоступен", zap.Error(err))
			return load()
		}
		generation = "0"
	}
	key := "reports:v" + generation + ":" + name

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			return value, nil
		}
		s.logger.Warn("Повреждённая запись в кеше отчётов", zap.String("key", key))
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if data, err := json.Marshal(value); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("Не удалось сохранить отчёт в кеш", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

func (s *reportService) InvalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, reportsGenerationKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш отчётов", zap.Error(err))
	}
}

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	out, err := cached(ctx, s, "dashboard", func() (dto.DashboardDTO, error) {
		stats, err := s.reportRepo.Dashboard(ctx)
		if err != nil {
			return dto.DashboardDTO{}, err
		}
		return dto.DashboardDTO{
			Total:      stats.Total,
			New:        stats.New,
			InProgress: stats.InProgress,
			Completed:  stats.Completed,
			Overdue:    stats.Overdue,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reportService) ByTeam(ctx context.Context) ([]dto.TeamReportItemDTO, error) {
	return cached(ctx, s, "by-team", func() ([]dto.TeamReportItemDTO, error) {
		rows, err := s.reportRepo.CountByTeam(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.TeamReportItemDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, dto.TeamReportItemDTO{
				Team:  dto.ShortTeamDTO{ID: row.TeamID, Name: row.TeamName},
				Count: row.Count,
			})
		}
		return out, nil
	})
}

func (s *reportService) ByCategory(ctx context.Context) ([]dto.CategoryReportItemDTO, error) {
	return cached(ctx, s, "by-category", func() ([]dto.CategoryReportItemDTO, error) {
		rows, err := s.reportRepo.CountByCategory(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.CategoryReportItemDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, dto.CategoryReportItemDTO{Category: row.Category, Count: row.Count})
		}
		return out, nil
	})
}

func (s *reportService) ByStage(ctx context.Context) ([]dto.StageReportItemDTO, error) {
	return cached(ctx, s, "by-stage", func() ([]dto.StageReportItemDTO, error) {
		rows, err := s.reportRepo.CountByStage(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.StageReportItemDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, dto.StageReportItemDTO{Stage: row.Stage, Count: row.Count})
		}
		return out, nil
	})
}

func (s *reportService) CompletionTime(ctx context.Context) (*dto.CompletionTimeDTO, error) {
	out, err := cached(ctx, s, "completion-time", func() (dto.CompletionTimeDTO, error) {
		stats, err := s.reportRepo.CompletionTime(ctx)
		if err != nil {
			return dto.CompletionTimeDTO{}, err
		}
		return dto.CompletionTimeDTO{
			AverageDuration: utils.Round2(stats.AverageDuration),
			TotalCompleted:  stats.TotalCompleted,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportRequests отдаёт заявки для выгрузки в Excel без пагинации и без кеша.
func (s *reportService) ExportRequests(ctx context.Context, filter entities.RequestFilter) ([]dto.RequestDTO, error) {
	filter.WithPagination = false
	list, _, err := s.requestRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	return requestsToDTO(s.engine.DeriveAll(list)), nil
}
