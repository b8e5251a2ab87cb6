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
)

const requestTable = "maintenance_requests"

var requestColumns = []string{
	"r.id", "r.subject", "r.description", "r.equipment_id", "r.type", "r.priority", "r.stage",
	"r.assigned_technician_id", "r.scheduled_date", "r.completed_date", "r.duration", "r.team_id",
	"r.category", "r.created_by", "r.notes", "r.created_at", "r.updated_at",
	"e.name", "e.serial_number", "tc.name", "tc.avatar", "t.name", "u.name",
}

var requestAllowedFields = map[string]string{
	"subject":       "r.subject",
	"stage":         "r.stage",
	"type":          "r.type",
	"priority":      "r.priority",
	"category":      "r.category",
	"team":          "r.team_id",
	"equipment":     "r.equipment_id",
	"technician":    "r.assigned_technician_id",
	"scheduledDate": "r.scheduled_date",
	"completedDate": "r.completed_date",
	"createdAt":     "r.created_at",
}

// Открытая заявка: не в Repaired и не в Scrap.
var openStageCondition = sq.NotEq{"r.stage": []string{string(entities.StageRepaired), string(entities.StageScrap)}}

type dbRequest struct {
	entities.Request
	Type     string
	Priority string
	Stage    string
	Category string
}

func (d *dbRequest) toEntity() entities.Request {
	r := d.Request
	r.Type = entities.RequestType(d.Type)
	r.Priority = entities.Priority(d.Priority)
	r.Stage = entities.Stage(d.Stage)
	r.Category = entities.EquipmentCategory(d.Category)
	return r
}

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter entities.RequestFilter) ([]entities.Request, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.Request, error)
	FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Request, error)
	CreateRequest(ctx context.Context, request *entities.Request) error
	UpdateRequest(ctx context.Context, tx pgx.Tx, request *entities.Request) error
	DeleteRequest(ctx context.Context, id uint64) error
	CountOpenByEquipment(ctx context.Context, equipmentID uint64) (uint64, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
}

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &RequestRepository{storage: storage}
}

func requestFrom(builder sq.SelectBuilder) sq.SelectBuilder {
	return builder.From(requestTable + " r").
		LeftJoin(equipmentTable + " e ON e.id = r.equipment_id").
		LeftJoin(technicianTable + " tc ON tc.id = r.assigned_technician_id").
		LeftJoin(teamTable + " t ON t.id = r.team_id").
		LeftJoin("users u ON u.id = r.created_by")
}

func requestWhere(builder sq.SelectBuilder, filter entities.RequestFilter) sq.SelectBuilder {
	if filter.Stage != "" {
		builder = builder.Where(sq.Eq{"r.stage": string(filter.Stage)})
	}
	if filter.Type != "" {
		builder = builder.Where(sq.Eq{"r.type": string(filter.Type)})
	}
	if filter.EquipmentID != 0 {
		builder = builder.Where(sq.Eq{"r.equipment_id": filter.EquipmentID})
	}
	if filter.TechnicianID != 0 {
		builder = builder.Where(sq.Eq{"r.assigned_technician_id": filter.TechnicianID})
	}
	if filter.TeamID != 0 {
		builder = builder.Where(sq.Eq{"r.team_id": filter.TeamID})
	}
	if filter.StartDate.Valid {
		builder = builder.Where(sq.GtOrEq{"r.scheduled_date": filter.StartDate.Time})
	}
	if filter.EndDate.Valid {
		builder = builder.Where(sq.LtOrEq{"r.scheduled_date": filter.EndDate.Time})
	}
	return db.ApplySearch(builder, filter.Search, "r.subject", "r.description")
}

func requestListQuery(filter entities.RequestFilter) sq.SelectBuilder {
	builder := requestWhere(requestFrom(psql.Select(requestColumns...)), filter)
	builder = db.ApplyListParams(builder, filter.Filter, requestAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("r.created_at DESC", "r.id DESC")
	}
	return builder
}

func requestCountQuery(filter entities.RequestFilter) sq.SelectBuilder {
	builder := requestWhere(requestFrom(psql.Select("COUNT(r.id)")), filter)
	return db.ApplyFilters(builder, filter.Filter, requestAllowedFields)
}

func scanRequest(row pgx.Row) (*entities.Request, error) {
	var d dbRequest
	r := &d.Request
	if err := row.Scan(
		&r.ID, &r.Subject, &r.Description, &r.EquipmentID, &d.Type, &d.Priority, &d.Stage,
		&r.AssignedTechnicianID, &r.ScheduledDate, &r.CompletedDate, &r.Duration, &r.TeamID,
		&d.Category, &r.CreatedBy, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
		&r.EquipmentName, &r.EquipmentSerial, &r.TechnicianName, &r.TechnicianAvatar, &r.TeamName, &r.CreatedByName,
	); err != nil {
		return nil, err
	}
	out := d.toEntity()
	return &out, nil
}

func collectRequests(rows pgx.Rows) ([]entities.Request, error) {
	defer rows.Close()
	list := make([]entities.Request, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
		}
		list = append(list, *r)
	}
	return list, rows.Err()
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter entities.RequestFilter) ([]entities.Request, uint64, error) {
	var total uint64
	if filter.WithPagination {
		countQuery, countArgs, err := requestCountQuery(filter).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
		}
		if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("ошибка подсчёта заявок: %w", err)
		}
		if total == 0 {
			return []entities.Request{}, 0, nil
		}
	}

	query, args, err := requestListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки заявок: %w", err)
	}
	list, err := collectRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	if !filter.WithPagination {
		total = uint64(len(list))
	}
	return list, total, nil
}

func (r *RequestRepository) findRequest(ctx context.Context, q querier, id uint64, forUpdate bool) (*entities.Request, error) {
	builder := requestFrom(psql.Select(requestColumns...)).Where(sq.Eq{"r.id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE OF r")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	req, err := scanRequest(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "заявка %d", id)
	}
	return req, nil
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.Request, error) {
	return r.findRequest(ctx, r.storage, id, false)
}

// FindRequestForUpdate блокирует строку заявки до конца транзакции.
func (r *RequestRepository) FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Request, error) {
	return r.findRequest(ctx, tx, id, true)
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req *entities.Request) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			subject, description, equipment_id, type, priority, stage, assigned_technician_id,
			scheduled_date, completed_date, duration, team_id, category, created_by, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`, requestTable)

	err := r.storage.QueryRow(ctx, query,
		req.Subject, req.Description, req.EquipmentID, string(req.Type), string(req.Priority), string(req.Stage),
		req.AssignedTechnicianID, req.ScheduledDate, req.CompletedDate, req.Duration, req.TeamID,
		string(req.Category), req.CreatedBy, req.Notes,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "заявка")
	}
	return nil
}

// UpdateRequest не меняет team_id, category и created_by: это снимок на момент создания.
func (r *RequestRepository) UpdateRequest(ctx context.Context, tx pgx.Tx, req *entities.Request) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			subject = $1, description = $2, type = $3, priority = $4, stage = $5,
			assigned_technician_id = $6, scheduled_date = $7, completed_date = $8, duration = $9,
			notes = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at`, requestTable)

	err := tx.QueryRow(ctx, query,
		req.Subject, req.Description, string(req.Type), string(req.Priority), string(req.Stage),
		req.AssignedTechnicianID, req.ScheduledDate, req.CompletedDate, req.Duration,
		req.Notes, req.ID,
	).Scan(&req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("заявка %d", req.ID)
		}
		return mapWriteError(err, "заявка")
	}
	return nil
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", requestTable), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заявки: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFoundf("заявка %d", id)
	}
	return nil
}

func (r *RequestRepository) CountOpenByEquipment(ctx context.Context, equipmentID uint64) (uint64, error) {
	query, args, err := psql.Select("COUNT(*)").
		From(requestTable + " r").
		Where(sq.Eq{"r.equipment_id": equipmentID}).
		Where(openStageCondition).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта открытых заявок: %w", err)
	}
	return count, nil
}
