package app

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/tomasrv/modastore/internal/adapters/httpserver"
	"github.com/tomasrv/modastore/internal/adapters/repo/filestore"
	"github.com/tomasrv/modastore/internal/adapters/repo/postgres"
	"github.com/tomasrv/modastore/internal/cart"
	"github.com/tomasrv/modastore/internal/domain"
	"github.com/tomasrv/modastore/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	Catalog   *usecase.CatalogUC
	Checkout  *usecase.CheckoutUC
	Cart      *cart.Store
	Favorites *cart.Favorites

	oauthCfg *oauth2.Config
}

func New(db *gorm.DB, dataDir string) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	custRepo := postgres.NewCustomerRepo(db)

	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	// The cart record lives in a local file by default, like the browser
	// storage it stands in for. CART_BACKEND=postgres keeps it in the
	// database instead, keyed by DEVICE_ID.
	var cartRepo domain.CartRepository = filestore.NewCartRepo(filepath.Join(dataDir, "cart.json"))
	if os.Getenv("CART_BACKEND") == "postgres" {
		deviceID := os.Getenv("DEVICE_ID")
		if deviceID == "" {
			deviceID = "local"
		}
		cartRepo = postgres.NewCartRecordRepo(db, deviceID)
	}
	favRepo := filestore.NewFavoritesRepo(filepath.Join(dataDir, "favorites.json"))

	ctx := context.Background()
	a := &App{
		DB:        db,
		Catalog:   &usecase.CatalogUC{Products: prodRepo},
		Checkout:  &usecase.CheckoutUC{Orders: orderRepo, Customers: custRepo},
		Cart:      cart.NewStore(ctx, cartRepo),
		Favorites: cart.NewFavorites(ctx, favRepo),
	}

	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		a.oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.Checkout, a.Cart, a.Favorites, a.oauthCfg)
}

func (a *App) Migrate() error {
	return a.DB.AutoMigrate(
		&domain.Product{}, &domain.Order{}, &domain.OrderItem{}, &domain.Customer{}, &postgres.CartRecord{},
	)
}
