package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yookassa-bridge/internal/app/server"
	"yookassa-bridge/internal/app/services"
	"yookassa-bridge/internal/config"
)

func main() {
	cfg := config.NewConfig()

	paymentService := services.NewPaymentService(cfg.YooKassa)
	notifier := services.NewNotifier(cfg.Notify)

	srv := server.NewServer(cfg, paymentService, notifier)

	go func() {
		log.Printf("Listening on :%s", cfg.Server.Port)
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
