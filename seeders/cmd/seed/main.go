package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"maintenance-system/pkg/config"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "Применить миграции перед наполнением")
	runDemo := flag.Bool("demo", false, "Наполнить команды, техников, оборудование и заявки")
	managerEmail := flag.String("manager-email", "manager@company.com", "Email менеджера")
	managerPassword := flag.String("manager-password", "Password123!", "Пароль менеджера")

	flag.Parse()

	if !*runMigrate && !*runDemo {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -migrate -demo")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, zap.NewNop())
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	if *runMigrate {
		if err := postgresql.Migrate(ctx, dbPool); err != nil {
			log.Fatalf("❌ Ошибка миграций: %v", err)
		}
		log.Println("======================================================")
	}

	if *runDemo {
		seeders.SeedDemo(ctx, dbPool, *managerEmail, *managerPassword)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
