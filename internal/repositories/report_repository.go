package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/entities"
)

type ReportRepositoryInterface interface {
	Dashboard(ctx context.Context) (entities.DashboardStats, error)
	CountByTeam(ctx context.Context) ([]entities.TeamCount, error)
	CountByCategory(ctx context.Context) ([]entities.CategoryCount, error)
	CountByStage(ctx context.Context) ([]entities.StageCount, error)
	CompletionTime(ctx context.Context) (entities.CompletionStats, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

// overdueCondition совпадает с вычислением просрочки при чтении заявки.
var overdueCondition = sq.And{openStageCondition, sq.Expr("r.scheduled_date < NOW()")}

// countWhere вкладывает условие как Sqlizer: его ошибки сборки всплывают из ToSql.
func countWhere(cond sq.Sqlizer) sq.Sqlizer {
	return sq.Expr("COUNT(*) FILTER (WHERE ?)", cond)
}

func dashboardQuery() sq.SelectBuilder {
	return psql.Select("COUNT(*)").
		Column("COUNT(*) FILTER (WHERE r.stage = ?)", string(entities.StageNew)).
		Column("COUNT(*) FILTER (WHERE r.stage = ?)", string(entities.StageInProgress)).
		Column("COUNT(*) FILTER (WHERE r.stage = ?)", string(entities.StageRepaired)).
		Column(countWhere(overdueCondition)).
		From(requestTable + " r")
}

func (r *reportRepository) Dashboard(ctx context.Context) (entities.DashboardStats, error) {
	var stats entities.DashboardStats

	query, args, err := dashboardQuery().ToSql()
	if err != nil {
		return stats, fmt.Errorf("ошибка сборки запроса дашборда: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.New, &stats.InProgress, &stats.Completed, &stats.Overdue,
	)
	if err != nil {
		return stats, fmt.Errorf("ошибка выборки дашборда: %w", err)
	}
	return stats, nil
}

// Только активные команды, в том числе без заявок.
func byTeamQuery() sq.SelectBuilder {
	return psql.Select("t.id", "t.name", "COUNT(r.id)").
		From(teamTable+" t").
		LeftJoin(requestTable+" r ON r.team_id = t.id").
		Where(sq.Eq{"t.is_active": true}).
		GroupBy("t.id", "t.name").
		OrderBy("t.name ASC")
}

func (r *reportRepository) CountByTeam(ctx context.Context) ([]entities.TeamCount, error) {
	query, args, err := byTeamQuery().ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка отчёта по командам: %w", err)
	}
	defer rows.Close()

	out := make([]entities.TeamCount, 0)
	for rows.Next() {
		var tc entities.TeamCount
		if err := rows.Scan(&tc.TeamID, &tc.TeamName, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func byCategoryQuery() sq.SelectBuilder {
	return psql.Select("r.category", "COUNT(*)").
		From(requestTable + " r").
		GroupBy("r.category").
		OrderBy("r.category ASC")
}

func (r *reportRepository) CountByCategory(ctx context.Context) ([]entities.CategoryCount, error) {
	query, args, err := byCategoryQuery().ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка отчёта по категориям: %w", err)
	}
	defer rows.Close()

	out := make([]entities.CategoryCount, 0)
	for rows.Next() {
		var category string
		var cc entities.CategoryCount
		if err := rows.Scan(&category, &cc.Count); err != nil {
			return nil, err
		}
		cc.Category = entities.EquipmentCategory(category)
		out = append(out, cc)
	}
	return out, rows.Err()
}

// CountByStage возвращает все стадии по порядку доски, пустые с нулём.
func (r *reportRepository) CountByStage(ctx context.Context) ([]entities.StageCount, error) {
	query, args, err := psql.Select("r.stage", "COUNT(*)").From(requestTable + " r").GroupBy("r.stage").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка отчёта по стадиям: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.Stage]uint64, len(entities.Stages))
	for rows.Next() {
		var stage string
		var count uint64
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		counts[entities.Stage(stage)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]entities.StageCount, 0, len(entities.Stages))
	for _, s := range entities.Stages {
		out = append(out, entities.StageCount{Stage: s, Count: counts[s]})
	}
	return out, nil
}

func completionQuery() sq.SelectBuilder {
	return psql.Select("COALESCE(AVG(r.duration), 0)", "COUNT(*)").
		From(requestTable + " r").
		Where(sq.Eq{"r.stage": string(entities.StageRepaired)}).
		Where(sq.NotEq{"r.completed_date": nil})
}

func (r *reportRepository) CompletionTime(ctx context.Context) (entities.CompletionStats, error) {
	var stats entities.CompletionStats
	query, args, err := completionQuery().ToSql()
	if err != nil {
		return stats, err
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&stats.AverageDuration, &stats.TotalCompleted); err != nil {
		return stats, fmt.Errorf("ошибка отчёта по времени выполнения: %w", err)
	}
	return stats, nil
}
