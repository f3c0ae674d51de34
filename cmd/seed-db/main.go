// Command seed-db loads the catalog seed file and a starter set of
// coupons, payment settings, and the initial admin account into
// PostgreSQL. Safe to run repeatedly: everything is upserted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ketabino/bookshop/internal/auth"
	"github.com/ketabino/bookshop/internal/domain/book"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/payment"
	"github.com/ketabino/bookshop/internal/domain/user"
	"github.com/ketabino/bookshop/internal/repository"
)

type bookJSON struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Translator      string          `json:"translator"`
	Publisher       string          `json:"publisher"`
	ISBN            string          `json:"isbn"`
	PublishDate     string          `json:"publishDate"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discountPercent"`
	Stock           int             `json:"stock"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Image           string          `json:"image"`
	Pages           int             `json:"pages"`
	Language        string          `json:"language"`
	Rating          float64         `json:"rating"`
	Slug            string          `json:"slug"`
	Featured        bool            `json:"featured"`
}

type categoryJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Slug string `json:"slug"`
}

type seedFile struct {
	Books      []bookJSON     `json:"books"`
	Categories []categoryJSON `json:"categories"`
}

func main() {
	var (
		databaseURL   string
		catalogFile   string
		adminEmail    string
		adminPassword string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogFile, "catalog-file", "db/seed/catalog.json", "path to catalog JSON file")
	flag.StringVar(&adminEmail, "admin-email", "admin@bookshop.local", "initial admin account email")
	flag.StringVar(&adminPassword, "admin-password", "", "initial admin account password (or SHOP_SEED_ADMIN_PASSWORD env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if adminPassword == "" {
		adminPassword = os.Getenv("SHOP_SEED_ADMIN_PASSWORD")
	}
	if adminPassword == "" {
		slog.Error("admin password is required: set --admin-password or SHOP_SEED_ADMIN_PASSWORD")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, catalogFile, adminEmail, adminPassword); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, catalogFile, adminEmail, adminPassword string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedCatalog(ctx, pool, catalogFile); err != nil {
		return errors.Wrap(err, "seed catalog")
	}
	if err := seedCoupons(ctx, pool); err != nil {
		return errors.Wrap(err, "seed coupons")
	}
	if err := seedSettings(ctx, pool); err != nil {
		return errors.Wrap(err, "seed payment settings")
	}
	if err := seedAdmin(ctx, pool, adminEmail, adminPassword); err != nil {
		return errors.Wrap(err, "seed admin account")
	}

	return nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool, catalogFile string) error {
	slog.Info("reading catalog file", slog.String("path", catalogFile))

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog file")
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return errors.Wrap(err, "parse catalog JSON")
	}

	categories := repository.NewCategoryRepository(pool)
	for _, c := range seed.Categories {
		if err := categories.Upsert(ctx, &book.Category{ID: c.ID, Name: c.Name, Icon: c.Icon, Slug: c.Slug}); err != nil {
			return errors.Wrapf(err, "upsert category %s", c.Slug)
		}
		slog.Info("upserted category", slog.String("slug", c.Slug))
	}

	books := repository.NewBookRepository(pool)
	slog.Info("upserting books", slog.Int("count", len(seed.Books)))
	for _, b := range seed.Books {
		if err := books.Upsert(ctx, &book.Book{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			Translator:      b.Translator,
			Publisher:       b.Publisher,
			ISBN:            b.ISBN,
			PublishDate:     b.PublishDate,
			Price:           b.Price,
			DiscountPercent: b.DiscountPercent,
			Stock:           b.Stock,
			Category:        b.Category,
			Description:     b.Description,
			Image:           b.Image,
			Pages:           b.Pages,
			Language:        b.Language,
			Rating:          b.Rating,
			Slug:            b.Slug,
			Featured:        b.Featured,
		}); err != nil {
			return errors.Wrapf(err, "upsert book %s", b.Slug)
		}
		slog.Info("upserted book", slog.String("slug", b.Slug), slog.String("title", b.Title))
	}

	return nil
}

func seedCoupons(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("seeding starter coupons")

	repo := repository.NewCouponRepository(pool)
	for _, c := range []coupon.Coupon{
		{Code: "WELCOME10", DiscountPercent: 10, Active: true},
		{Code: "BOOKLOVER20", DiscountPercent: 20, Active: true},
	} {
		if err := repo.Upsert(ctx, &c); err != nil {
			return errors.Wrapf(err, "upsert coupon %s", c.Code)
		}
		slog.Info("upserted coupon", slog.String("code", c.Code), slog.Int("percent", c.DiscountPercent))
	}
	return nil
}

func seedSettings(ctx context.Context, pool *pgxpool.Pool) error {
	repo := repository.NewSettingsRepository(pool)
	existing, err := repo.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "get settings")
	}
	if existing.CardNumber != "" {
		slog.Info("payment settings already present, skipping")
		return nil
	}

	return repo.Save(ctx, &payment.Settings{
		CardNumber:    "6037-9911-0000-0000",
		AccountHolder: "Bookshop Ltd",
		BankName:      "Mellat",
	})
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	repo := repository.NewUserRepository(pool)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		slog.Info("admin account already exists, skipping", slog.String("email", email))
		return nil
	} else if !errors.Is(err, user.ErrNotFound) {
		return errors.Wrap(err, "look up admin account")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}

	if err := repo.Create(ctx, &user.User{
		ID:           uuid.New().String(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}); err != nil {
		return errors.Wrap(err, "create admin account")
	}

	slog.Info("created admin account", slog.String("email", email))
	return nil
}
