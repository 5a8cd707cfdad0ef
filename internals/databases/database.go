package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"armadacheck_backend/internals/configs"
	checkItemModel "armadacheck_backend/internals/features/fleet/check_items/model"
	unitModel "armadacheck_backend/internals/features/fleet/units/model"
	workcheckModel "armadacheck_backend/internals/features/inspection/workcheck/model"
	userModel "armadacheck_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=armadacheck&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true, // unique violation -> gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// MigrateAll menjalankan AutoMigrate berurutan sesuai dependensi antar tabel.
func MigrateAll() {
	// 1. Tabel tanpa dependensi
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&unitModel.UnitModel{},
		&checkItemModel.CheckItemModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi tabel dasar: %v", err)
	}

	// 2. Workcheck bergantung pada users + units
	if err := DB.AutoMigrate(&workcheckModel.WorkcheckModel{}); err != nil {
		log.Fatalf("❌ Gagal migrasi workchecks: %v", err)
	}

	// 3. Turunan workcheck
	if err := DB.AutoMigrate(
		&workcheckModel.WorkcheckItemModel{},
		&workcheckModel.WorkcheckItemImageModel{},
		&workcheckModel.ApprovalModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi tabel workcheck turunan: %v", err)
	}
}

func WarmUpQueries() {
	// jalankan ringan supaya pool keisi & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
