package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/entities"
	db "maintenance-system/internal/infrastructure/bd"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

const teamTable = "teams"

var teamColumns = []string{
	"t.id", "t.name", "t.description", "t.specialization", "t.is_active", "t.created_at", "t.updated_at",
	"(SELECT COUNT(*) FROM technicians tc WHERE tc.team_id = t.id AND tc.is_active) AS members_count",
}

var teamAllowedFields = map[string]string{
	"name":           "t.name",
	"specialization": "t.specialization",
	"createdAt":      "t.created_at",
}

type dbTeam struct {
	ID             uint64
	Name           string
	Description    string
	Specialization string
	IsActive       bool
	types.BaseEntity
	MembersCount uint64
}

func (d *dbTeam) toEntity() entities.Team {
	return entities.Team{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		Specialization: entities.TeamSpecialization(d.Specialization),
		IsActive:       d.IsActive,
		BaseEntity:     d.BaseEntity,
		MembersCount:   d.MembersCount,
	}
}

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context, filter types.Filter, onlyActive bool) ([]entities.Team, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, team *entities.Team) error
	UpdateTeam(ctx context.Context, team *entities.Team) error
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

func teamListQuery(filter types.Filter, onlyActive bool) sq.SelectBuilder {
	builder := psql.Select(teamColumns...).From(teamTable + " t")
	if onlyActive {
		builder = builder.Where(sq.Eq{"t.is_active": true})
	}
	builder = db.ApplySearch(builder, filter.Search, "t.name")
	builder = db.ApplyListParams(builder, filter, teamAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("t.name ASC")
	}
	return builder
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var d dbTeam
	if err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.Specialization, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt, &d.MembersCount,
	); err != nil {
		return nil, err
	}
	team := d.toEntity()
	return &team, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context, filter types.Filter, onlyActive bool) ([]entities.Team, error) {
	query, args, err := teamListQuery(filter, onlyActive).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса команд: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки команд: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования команды: %w", err)
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	query, args, err := psql.Select(teamColumns...).From(teamTable + " t").Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	team, err := scanTeam(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "команда %d", id)
	}
	return team, nil
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *entities.Team) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, specialization, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`, teamTable)

	err := r.storage.QueryRow(ctx, query,
		team.Name, team.Description, string(team.Specialization), team.IsActive,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "команда")
	}
	return nil
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, team *entities.Team) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, specialization = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`, teamTable)

	err := r.storage.QueryRow(ctx, query,
		team.Name, team.Description, string(team.Specialization), team.IsActive, team.ID,
	).Scan(&team.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("команда %d", team.ID)
		}
		return mapWriteError(err, "команда")
	}
	return nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", teamTable), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления команды: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFoundf("команда %d", id)
	}
	return nil
}
