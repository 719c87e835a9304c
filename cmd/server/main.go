package main

import (
	"log"
	"net/http"

	"glamour-be/internal/cart"
	"glamour-be/internal/catalog"
	"glamour-be/internal/checkout"
	"glamour-be/internal/config"
	"glamour-be/internal/db"
	"glamour-be/internal/logger"
	"glamour-be/internal/order"
	"glamour-be/internal/payment"
	"glamour-be/internal/realtime"
	"glamour-be/internal/storage"
	"glamour-be/internal/transport"
	"glamour-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	persister, err := cart.NewFilePersister("./carts")
	if err != nil {
		log.Fatalf("Failed to init cart persistence: %v", err)
	}
	carts := cart.NewManager(persister)

	receipts, err := storage.NewFSStore(cfg.ReceiptDir)
	if err != nil {
		log.Fatalf("Failed to init receipt storage: %v", err)
	}

	gateway := payment.NewPaystackGateway(cfg.PaystackSecretKey)
	functions := payment.NewFunctions(gateway, orderRepo)

	checkoutSvc := checkout.NewService(carts, orderRepo, functions, receipts, cfg.CallbackURL)

	hub := realtime.NewHub()
	if err := realtime.StartOrderListener(cfg.DSN(), hub); err != nil {
		log.Fatalf("Failed to start order listener: %v", err)
	}

	router := transport.NewRouter(&transport.Handler{
		UserSvc:     userSvc,
		CatalogSvc:  catalogSvc,
		Carts:       carts,
		CheckoutSvc: checkoutSvc,
		OrderSvc:    orderSvc,
		Functions:   functions,
		Hub:         hub,
		ReceiptDir:  cfg.ReceiptDir,
	})

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
