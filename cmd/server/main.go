package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/color"

	"github.com/oarkflow/authforms"
	"github.com/oarkflow/authforms/pkg/config"
	"github.com/oarkflow/authforms/pkg/objects"
)

func main() {
	objects.Config = config.New(".env", true, nil)
	cfg := config.Config{}
	cfg.Load()
	app := fiber.New(fiber.Config{
		AppName:               objects.Config.GetString("app.name"),
		DisableStartupMessage: true,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
	})
	plugin, err := authforms.NewPlugin(
		authforms.WithApp(app),
		authforms.WithStaticDir(objects.Config.GetString("app.static_dir")),
	)
	if err != nil {
		log.Fatalf("failed to build plugin: %v", err)
	}
	if err := plugin.Register(); err != nil {
		log.Fatalf("failed to register plugin: %v", err)
	}
	startServer(app, objects.Config.GetString("app.addr", ":3000"))
	if err := plugin.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}

func startServer(app *fiber.App, addr string) {
	go func() {
		color.Green.Printf("▶ %s listening on %s (db: %s)\n",
			objects.Config.GetString("app.name"), addr, objects.Config.GetString("db.driver"))
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ shutting down…")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("✔ shutdown complete")
}
