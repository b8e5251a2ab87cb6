package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemo наполняет базу демонстрационными данными. Справочники перезаписываются, менеджер создаётся один раз.
func SeedDemo(ctx context.Context, db *pgxpool.Pool, managerEmail, managerPassword string) {
	log.Println("▶️  Запуск наполнения демо-данных...")

	managerID, err := seedManager(ctx, db, managerEmail, managerPassword)
	if err != nil {
		log.Fatalf("❌ Ошибка создания менеджера: %v", err)
	}
	if err := seedCatalog(ctx, db, managerID); err != nil {
		log.Fatalf("❌ Ошибка наполнения команд, оборудования и заявок: %v", err)
	}

	log.Println("✅ Наполнение демо-данных завершено!")
}
