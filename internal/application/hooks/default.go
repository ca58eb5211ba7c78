package hooks

import (
	"context"
	"log"
)

func init() {
	if err := RegisterHook("log_startup", BeforeStart, func(ctx context.Context) error {
		log.Println("Application is starting...")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}

	if err := RegisterHook("log_started", AfterStart, func(ctx context.Context) error {
		log.Println("Application started successfully")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}

	if err := RegisterHook("log_shutdown", BeforeShutdown, func(ctx context.Context) error {
		log.Println("Application is shutting down...")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}

	if err := RegisterHook("log_shutdown_complete", AfterShutdown, func(ctx context.Context) error {
		log.Println("Application shutdown completed")
		return nil
	}, 100); err != nil {
		log.Printf("Failed to register default hook: %v", err)
	}
}
