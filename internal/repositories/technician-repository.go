package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/entities"
	db "maintenance-system/internal/infrastructure/bd"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

const technicianTable = "technicians"

var technicianColumns = []string{
	"tc.id", "tc.name", "tc.email", "tc.phone", "tc.team_id", "tc.specialization", "tc.avatar",
	"tc.is_active", "tc.user_id", "tc.created_at", "tc.updated_at", "t.name",
}

var technicianAllowedFields = map[string]string{
	"name":      "tc.name",
	"email":     "tc.email",
	"team":      "tc.team_id",
	"createdAt": "tc.created_at",
}

type TechnicianFilter struct {
	TeamID     uint64
	OnlyActive bool
	types.Filter
}

type TechnicianRepositoryInterface interface {
	GetTechnicians(ctx context.Context, filter TechnicianFilter) ([]entities.Technician, error)
	FindTechnician(ctx context.Context, id uint64) (*entities.Technician, error)
	CreateTechnician(ctx context.Context, technician *entities.Technician) error
	UpdateTechnician(ctx context.Context, technician *entities.Technician) error
	DeleteTechnician(ctx context.Context, id uint64) error
}

type TechnicianRepository struct {
	storage *pgxpool.Pool
}

func NewTechnicianRepository(storage *pgxpool.Pool) TechnicianRepositoryInterface {
	return &TechnicianRepository{storage: storage}
}

func technicianBaseQuery() sq.SelectBuilder {
	return psql.Select(technicianColumns...).
		From(technicianTable + " tc").
		LeftJoin(teamTable + " t ON t.id = tc.team_id")
}

func technicianListQuery(filter TechnicianFilter) sq.SelectBuilder {
	builder := technicianBaseQuery()
	if filter.OnlyActive {
		builder = builder.Where(sq.Eq{"tc.is_active": true})
	}
	if filter.TeamID != 0 {
		builder = builder.Where(sq.Eq{"tc.team_id": filter.TeamID})
	}
	builder = db.ApplySearch(builder, filter.Search, "tc.name", "tc.email")
	builder = db.ApplyListParams(builder, filter.Filter, technicianAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("tc.name ASC")
	}
	return builder
}

func scanTechnician(row pgx.Row) (*entities.Technician, error) {
	var tc entities.Technician
	var specialization []string
	var teamName null.String
	if err := row.Scan(
		&tc.ID, &tc.Name, &tc.Email, &tc.Phone, &tc.TeamID, &specialization, &tc.Avatar,
		&tc.IsActive, &tc.UserID, &tc.CreatedAt, &tc.UpdatedAt, &teamName,
	); err != nil {
		return nil, err
	}
	if specialization == nil {
		specialization = []string{}
	}
	tc.Specialization = specialization
	tc.TeamName = teamName
	return &tc, nil
}

func (r *TechnicianRepository) GetTechnicians(ctx context.Context, filter TechnicianFilter) ([]entities.Technician, error) {
	query, args, err := technicianListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса техников: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки техников: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Technician, 0)
	for rows.Next() {
		tc, err := scanTechnician(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования техника: %w", err)
		}
		list = append(list, *tc)
	}
	return list, rows.Err()
}

func (r *TechnicianRepository) FindTechnician(ctx context.Context, id uint64) (*entities.Technician, error) {
	query, args, err := technicianBaseQuery().Where(sq.Eq{"tc.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	tc, err := scanTechnician(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "техник %d", id)
	}
	return tc, nil
}

// specializationValue: nil-срез pgx отправит как NULL, а колонка NOT NULL.
func specializationValue(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func (r *TechnicianRepository) CreateTechnician(ctx context.Context, tc *entities.Technician) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, email, phone, team_id, specialization, avatar, is_active, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`, technicianTable)

	err := r.storage.QueryRow(ctx, query,
		tc.Name, tc.Email, tc.Phone, tc.TeamID, specializationValue(tc.Specialization), tc.Avatar, tc.IsActive, tc.UserID,
	).Scan(&tc.ID, &tc.CreatedAt, &tc.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "техник")
	}
	return nil
}

// UpdateTechnician не трогает avatar: он вычисляется один раз при создании.
func (r *TechnicianRepository) UpdateTechnician(ctx context.Context, tc *entities.Technician) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, email = $2, phone = $3, team_id = $4, specialization = $5,
			is_active = $6, user_id = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`, technicianTable)

	err := r.storage.QueryRow(ctx, query,
		tc.Name, tc.Email, tc.Phone, tc.TeamID, specializationValue(tc.Specialization), tc.IsActive, tc.UserID, tc.ID,
	).Scan(&tc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("техник %d", tc.ID)
		}
		return mapWriteError(err, "техник")
	}
	return nil
}

func (r *TechnicianRepository) DeleteTechnician(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", technicianTable), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления техника: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFoundf("техник %d", id)
	}
	return nil
}
