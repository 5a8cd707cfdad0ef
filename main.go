package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"armadacheck_backend/internals/configs"
	database "armadacheck_backend/internals/databases"
	helper "armadacheck_backend/internals/helpers"
	"armadacheck_backend/internals/helpers/oss"
	"armadacheck_backend/internals/middlewares"
	"armadacheck_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.MigrateAll()
	database.WarmUpQueries()

	blob, err := oss.NewOSSBlobServiceFromEnv("")
	if err != nil {
		log.Fatalf("❌ Gagal inisialisasi OSS: %v", err)
	}
	log.Println("✅ OSS siap dipakai.")

	app := fiber.New(fiber.Config{
		AppName:      "ArmadaCheck Backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    12 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return helper.Error(c, fe.Code, fe.Message)
			}
			log.Printf("[ERROR] unhandled: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
		},
	})

	app.Use(requestid.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return helper.Success(c, "OK", fiber.Map{"time": time.Now()})
	})

	route.SetupRoutes(app, database.DB, blob)

	go func() {
		port := configs.GetEnv("PORT", "3000")
		log.Printf("🚀 Server berjalan di port %s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("❌ Server berhenti: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("⏳ Shutdown server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("[ERROR] gagal shutdown rapi: %v", err)
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("👋 Server berhenti.")
}
