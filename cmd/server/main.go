package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "freight-office/internal/adapters/web"
	"freight-office/internal/ai"
	"freight-office/internal/app"
	"freight-office/internal/core"
	"freight-office/internal/db"
	"freight-office/internal/logger"
	"freight-office/internal/migration"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	logger.Setup()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	if err := migration.Run(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	receipts := core.NewReceiptService(pool)
	hirings := core.NewHiringService(pool)
	bookings := core.NewBookingService(pool)
	invoices := core.NewInvoiceService(pool, receipts)
	parties := core.NewPartyService(pool)
	trucks := core.NewTruckService(pool)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; consignment interpretation will fail")
	}
	agent := ai.NewAgent(apiKey)

	svc := app.NewAppService(pool, receipts, hirings, bookings, invoices, parties, trucks, agent)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	handler := webAdapter.NewHandler(svc, os.Getenv("ALLOWED_ORIGINS"), jwtSecret)

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
