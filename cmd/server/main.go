package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"lodgely/internal/api"
	"lodgely/internal/config"
	"lodgely/internal/repository"
	"lodgely/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := repository.NewShopifyClient(cfg.ShopifyStoreURL, cfg.ShopifyToken)
	metafieldRepo := repository.NewMetafieldRepository(client)
	productRepo := repository.NewProductRepository(client)
	draftOrderRepo := repository.NewDraftOrderRepository(client)

	ledgerSvc := service.NewLedgerService(metafieldRepo)
	bookingSvc := service.NewBookingService(ledgerSvc, service.NewPricingService(), productRepo, draftOrderRepo, service.NewSenderService())

	bookingHandler := api.NewBookingHandler(bookingSvc)
	webhookHandler := api.NewOrderWebhookHandler(bookingSvc)

	r := mux.NewRouter()
	r.Use(api.RequestIDMiddleware)

	// Storefront endpoints
	r.HandleFunc("/availability", bookingHandler.GetAvailability).Methods("GET")
	r.HandleFunc("/validate-booking", bookingHandler.ValidateBooking).Methods("POST")
	r.HandleFunc("/calculate-price", bookingHandler.CalculatePrice).Methods("POST")
	r.HandleFunc("/create-draft-order", bookingHandler.CreateDraftOrder).Methods("POST")

	// Platform callbacks
	r.HandleFunc("/webhooks/orders-create", webhookHandler.HandleOrdersCreate).Methods("POST")

	if len(cfg.AuditProductIDs) > 0 {
		jobSvc := service.NewJobService(ledgerSvc, cfg.AuditProductIDs)
		c := cron.New()
		if _, err := c.AddFunc(cfg.AuditSchedule, func() {
			jobSvc.AuditLedgers(context.Background())
		}); err != nil {
			log.Fatalf("Failed to schedule audit job: %v", err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("Scheduled ledger audit (%s) for %d products", cfg.AuditSchedule, len(cfg.AuditProductIDs))
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
