package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/entities"
	"maintenance-system/pkg/utils"
)

// seedManager создаёт менеджера, от имени которого заведены демо-заявки. Возвращает его id.
func seedManager(ctx context.Context, db *pgxpool.Pool, email, password string) (uint64, error) {
	log.Println("  - Создание пользователя 'Maintenance Manager'...")

	var id uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		log.Println("    - Менеджер уже существует. Пропускаем.")
		return id, nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := db.QueryRow(ctx, query, "Maintenance Manager", email, hashedPassword, string(entities.RoleManager)).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
