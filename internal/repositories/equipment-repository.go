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

const equipmentTable = "equipments"

var equipmentColumns = []string{
	"e.id", "e.name", "e.serial_number", "e.department", "e.assigned_to", "e.maintenance_team_id",
	"e.default_technician_id", "e.location", "e.purchase_date", "e.warranty_expiry", "e.category",
	"e.status", "e.is_scrapped", "e.scrap_date", "e.scrap_reason", "e.notes", "e.created_at", "e.updated_at",
	"t.name", "tc.name",
}

var equipmentAllowedFields = map[string]string{
	"name":         "e.name",
	"serialNumber": "e.serial_number",
	"department":   "e.department",
	"category":     "e.category",
	"status":       "e.status",
	"team":         "e.maintenance_team_id",
	"location":     "e.location",
	"createdAt":    "e.created_at",
}

type dbEquipment struct {
	entities.Equipment
	Department string
	Category   string
	Status     string
}

func (d *dbEquipment) toEntity() entities.Equipment {
	e := d.Equipment
	e.Department = entities.Department(d.Department)
	e.Category = entities.EquipmentCategory(d.Category)
	e.Status = entities.EquipmentStatus(d.Status)
	return e
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) error
	UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func equipmentFrom(builder sq.SelectBuilder) sq.SelectBuilder {
	return builder.From(equipmentTable + " e").
		LeftJoin(teamTable + " t ON t.id = e.maintenance_team_id").
		LeftJoin(technicianTable + " tc ON tc.id = e.default_technician_id")
}

func equipmentWhere(builder sq.SelectBuilder, filter entities.EquipmentFilter) sq.SelectBuilder {
	if filter.Department != "" {
		builder = builder.Where(sq.Eq{"e.department": string(filter.Department)})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"e.category": string(filter.Category)})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"e.status": string(filter.Status)})
	}
	if filter.TeamID != 0 {
		builder = builder.Where(sq.Eq{"e.maintenance_team_id": filter.TeamID})
	}
	if filter.IsScrapped.Valid {
		builder = builder.Where(sq.Eq{"e.is_scrapped": filter.IsScrapped.Bool})
	}
	return db.ApplySearch(builder, filter.Search, "e.name", "e.serial_number", "e.assigned_to")
}

func equipmentListQuery(filter entities.EquipmentFilter) sq.SelectBuilder {
	builder := equipmentWhere(equipmentFrom(psql.Select(equipmentColumns...)), filter)
	builder = db.ApplyListParams(builder, filter.Filter, equipmentAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("e.created_at DESC", "e.id DESC")
	}
	return builder
}

func equipmentCountQuery(filter entities.EquipmentFilter) sq.SelectBuilder {
	builder := equipmentWhere(equipmentFrom(psql.Select("COUNT(e.id)")), filter)
	return db.ApplyFilters(builder, filter.Filter, equipmentAllowedFields)
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var d dbEquipment
	e := &d.Equipment
	if err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &d.Department, &e.AssignedTo, &e.MaintenanceTeamID,
		&e.DefaultTechnicianID, &e.Location, &e.PurchaseDate, &e.WarrantyExpiry, &d.Category,
		&d.Status, &e.IsScrapped, &e.ScrapDate, &e.ScrapReason, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		&e.TeamName, &e.DefaultTechnicianName,
	); err != nil {
		return nil, err
	}
	out := d.toEntity()
	return &out, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, uint64, error) {
	var total uint64
	if filter.WithPagination {
		countQuery, countArgs, err := equipmentCountQuery(filter).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
		}
		if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("ошибка подсчёта оборудования: %w", err)
		}
		if total == 0 {
			return []entities.Equipment{}, 0, nil
		}
	}

	query, args, err := equipmentListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса оборудования: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки оборудования: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования оборудования: %w", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if !filter.WithPagination {
		total = uint64(len(list))
	}
	return list, total, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query, args, err := equipmentFrom(psql.Select(equipmentColumns...)).Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	e, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "оборудование %d", id)
	}
	return e, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e *entities.Equipment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			name, serial_number, department, assigned_to, maintenance_team_id, default_technician_id,
			location, purchase_date, warranty_expiry, category, status, is_scrapped, scrap_date,
			scrap_reason, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`, equipmentTable)

	err := r.storage.QueryRow(ctx, query,
		e.Name, e.SerialNumber, string(e.Department), e.AssignedTo, e.MaintenanceTeamID, e.DefaultTechnicianID,
		e.Location, e.PurchaseDate, e.WarrantyExpiry, string(e.Category), string(e.Status), e.IsScrapped, e.ScrapDate,
		e.ScrapReason, e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "оборудование")
	}
	return nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, e *entities.Equipment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			name = $1, serial_number = $2, department = $3, assigned_to = $4, maintenance_team_id = $5,
			default_technician_id = $6, location = $7, purchase_date = $8, warranty_expiry = $9,
			category = $10, status = $11, is_scrapped = $12, scrap_date = $13, scrap_reason = $14,
			notes = $15, updated_at = NOW()
		WHERE id = $16
		RETURNING updated_at`, equipmentTable)

	err := r.storage.QueryRow(ctx, query,
		e.Name, e.SerialNumber, string(e.Department), e.AssignedTo, e.MaintenanceTeamID, e.DefaultTechnicianID,
		e.Location, e.PurchaseDate, e.WarrantyExpiry, string(e.Category), string(e.Status), e.IsScrapped, e.ScrapDate,
		e.ScrapReason, e.Notes, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("оборудование %d", e.ID)
		}
		return mapWriteError(err, "оборудование")
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления оборудования: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFoundf("оборудование %d", id)
	}
	return nil
}
