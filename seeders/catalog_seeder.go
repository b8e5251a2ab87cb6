package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/entities"
)

// seedCatalog перезаливает команды, техников, оборудование и заявки одной транзакцией.
func seedCatalog(ctx context.Context, db *pgxpool.Pool, createdBy uint64) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE maintenance_requests, equipments, technicians, teams RESTART IDENTITY CASCADE"); err != nil {
		return err
	}

	log.Println("  - Наполнение таблицы 'teams'...")
	teamIDs := make(map[string]uint64, len(teamsData))
	for _, t := range teamsData {
		var id uint64
		err := tx.QueryRow(ctx,
			`INSERT INTO teams (name, description, specialization) VALUES ($1, $2, $3) RETURNING id`,
			t.Name, t.Description, string(t.Specialization),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("команда %q: %w", t.Name, err)
		}
		teamIDs[t.Name] = id
	}

	log.Println("  - Наполнение таблицы 'technicians'...")
	technicianIDs := make(map[string]uint64, len(techniciansData))
	for _, tc := range techniciansData {
		teamID, ok := teamIDs[tc.TeamName]
		if !ok {
			log.Printf("ПРЕДУПРЕЖДЕНИЕ: Команда '%s' не найдена, пропускаем техника '%s'.", tc.TeamName, tc.Name)
			continue
		}
		var id uint64
		err := tx.QueryRow(ctx,
			`INSERT INTO technicians (name, email, phone, team_id, specialization, avatar) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			tc.Name, tc.Email, tc.Phone, teamID, tc.Specialization, entities.Initials(tc.Name),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("техник %q: %w", tc.Name, err)
		}
		technicianIDs[tc.Name] = id
	}

	log.Println("  - Наполнение таблицы 'equipments'...")
	type equipmentRef struct {
		id       uint64
		teamID   uint64
		category entities.EquipmentCategory
	}
	equipment := make(map[string]equipmentRef, len(equipmentsData))
	for _, e := range equipmentsData {
		teamID := teamIDs[e.TeamName]
		var technicianID null.Uint64
		if id, ok := technicianIDs[e.TechnicianName]; ok {
			technicianID = null.Uint64From(id)
		}

		var id uint64
		err := tx.QueryRow(ctx,
			`INSERT INTO equipments (name, serial_number, department, assigned_to, maintenance_team_id, default_technician_id,
				location, purchase_date, warranty_expiry, category)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			e.Name, e.SerialNumber, string(e.Department), e.AssignedTo, teamID, technicianID,
			e.Location, mustDate(e.PurchaseDate), mustDate(e.WarrantyExpiry), string(e.Category),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("оборудование %q: %w", e.SerialNumber, err)
		}
		equipment[e.SerialNumber] = equipmentRef{id: id, teamID: teamID, category: e.Category}
	}

	log.Println("  - Наполнение таблицы 'maintenance_requests'...")
	for _, r := range requestsData {
		ref, ok := equipment[r.SerialNumber]
		if !ok {
			log.Printf("ПРЕДУПРЕЖДЕНИЕ: Оборудование '%s' не найдено, пропускаем заявку '%s'.", r.SerialNumber, r.Subject)
			continue
		}
		if err := insertRequest(ctx, tx, r.Subject, r.Description, ref.id, r.Type, r.Priority, r.Stage,
			r.ScheduledDate, r.CompletedDate, technicianIDs[r.TechnicianName], r.Duration, ref.teamID, ref.category, createdBy); err != nil {
			return fmt.Errorf("заявка %q: %w", r.Subject, err)
		}
	}

	return tx.Commit(ctx)
}

func insertRequest(
	ctx context.Context, tx pgx.Tx,
	subject, description string, equipmentID uint64,
	requestType entities.RequestType, priority entities.Priority, stage entities.Stage,
	scheduled, completed string, technicianID uint64, duration float64,
	teamID uint64, category entities.EquipmentCategory, createdBy uint64,
) error {
	var assigned null.Uint64
	if technicianID != 0 {
		assigned = null.Uint64From(technicianID)
	}
	var completedDate null.Time
	if completed != "" {
		completedDate = null.TimeFrom(mustDate(completed))
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO maintenance_requests (subject, description, equipment_id, type, priority, stage, assigned_technician_id,
			scheduled_date, completed_date, duration, team_id, category, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		subject, description, equipmentID, string(requestType), string(priority), string(stage), assigned,
		mustDate(scheduled), completedDate, duration, teamID, string(category), createdBy,
	)
	return err
}

func mustDate(raw string) time.Time {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		panic(fmt.Sprintf("сидер: неверная дата %q", raw))
	}
	return t
}
