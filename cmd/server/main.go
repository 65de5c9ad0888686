package main

import (
	"context"
	"log"

	"giftly-be/internal/cart"
	"giftly-be/internal/catalog"
	"giftly-be/internal/config"
	"giftly-be/internal/db"
	"giftly-be/internal/handler"
	"giftly-be/internal/logger"
	"giftly-be/internal/mailer"
	"giftly-be/internal/order"
	"giftly-be/internal/payment"
	"giftly-be/internal/payout"
	"giftly-be/internal/review"
	"giftly-be/internal/server"
	"giftly-be/internal/settings"
	"giftly-be/internal/storage"
	"giftly-be/internal/store"
	"giftly-be/internal/user"
	"giftly-be/internal/wishlist"

	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	gateway := payment.NewConnectGateway(cfg.Connect.APIBase, cfg.Connect.APIKey)

	storeRepo := store.NewRepository(database)
	storeSvc := store.NewService(storeRepo)
	connectSvc := store.NewConnectService(storeRepo, gateway)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, storeSvc)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo)

	settingsRepo := settings.NewRepository(database)
	settingsSvc := settings.NewService(settingsRepo)

	shippingFlat, err := decimal.NewFromString(cfg.Checkout.ShippingFlat)
	if err != nil {
		log.Fatalf("invalid CHECKOUT_SHIPPING_FLAT: %v", err)
	}

	signer := order.NewTokenSigner(cfg.Auth.JWTSecret, cfg.Auth.GiftTokenTTLDays)
	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, settingsSvc, signer, order.Pricing{
		ShippingFlat: shippingFlat,
		Currency:     cfg.Checkout.Currency,
	}, cfg.SiteURL)

	payoutRepo := payout.NewRepository(database)
	payoutSvc := payout.NewService(payoutRepo, gateway, cfg.Checkout.Currency)

	uploader, err := storage.NewS3Uploader(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	srv := server.New(server.Handlers{
		Auth:     handler.NewAuthHandler(userSvc, storeSvc),
		Store:    handler.NewStoreHandler(storeSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Cart:     handler.NewCartHandler(cartSvc),
		Wishlist: handler.NewWishlistHandler(wishlistSvc),
		Review:   handler.NewReviewHandler(reviewSvc),
		Order:    handler.NewOrderHandler(orderSvc),
		Connect:  handler.NewConnectHandler(connectSvc, cfg.SiteURL),
		Admin:    handler.NewAdminHandler(storeSvc, settingsSvc, orderSvc, payoutSvc),
		Upload:   handler.NewUploadHandler(uploader),
		Hook:     handler.NewHookHandler(mailer.New(cfg.Mailer)),
	})

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Printf("🚀 API server running at http://%s/", addr)
	log.Fatal(srv.Start(addr))
}
