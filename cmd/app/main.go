package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"platetrack/cmd"
	httpadapter "platetrack/internal/adapters/in/http"
	"platetrack/internal/adapters/out/postgres"
	"platetrack/internal/adapters/out/postgres/ledgerrepo"
	"platetrack/internal/adapters/out/postgres/orderrepo"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/jobs"
	"platetrack/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	createDbIfNotExists(configs)

	gormDB := mustConnectDB(configs)
	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&ledgerrepo.LedgerDTO{},
		&ledgerrepo.UsageEventDTO{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	if err := seedLedger(context.Background(), gormDB, configs); err != nil {
		log.Fatalf("Error seeding solvent ledger: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreateGetSolventStatusQueryHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		LedgerCostPerBarrel:          goDotEnvFloat("LEDGER_COST_PER_BARREL"),
		LedgerRecyclingCostPerBarrel: goDotEnvFloat("LEDGER_RECYCLING_COST_PER_BARREL"),
		LedgerCostPerSquareMeter:     goDotEnvFloat("LEDGER_COST_PER_SQUARE_METER"),
		LedgerLitersPerSquareMeter:   goDotEnvFloat("LEDGER_LITERS_PER_SQUARE_METER"),
		LedgerRecyclingRate:          goDotEnvFloat("LEDGER_RECYCLING_RATE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Error parsing %s as a number: %v", key, err)
	}
	return value
}

// createDbIfNotExists connects to the maintenance database and creates the
// application database when it does not exist yet.
func createDbIfNotExists(configs cmd.Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Error connecting to postgres: %v", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Error checking database existence: %v", err)
	}

	if !exists {
		if _, err = db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(configs.DBName)); err != nil {
			log.Fatalf("Error creating database %s: %v", configs.DBName, err)
		}
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

// seedLedger creates the singleton solvent ledger row on first start, with
// zero inventory and the configured initial settings.
func seedLedger(ctx context.Context, gormDB *gorm.DB, configs cmd.Config) error {
	uow := postgres.NewGormUnitOfWorkFactory(gormDB).Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.LedgerRepository().Get(ctx)
	if err == nil {
		return uow.Rollback(ctx)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	seed, err := ledger.NewLedger(ledger.Settings{
		CostPerBarrel:          configs.LedgerCostPerBarrel,
		RecyclingCostPerBarrel: configs.LedgerRecyclingCostPerBarrel,
		CostPerSquareMeter:     configs.LedgerCostPerSquareMeter,
		LitersPerSquareMeter:   configs.LedgerLitersPerSquareMeter,
		RecyclingRate:          configs.LedgerRecyclingRate,
	})
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Add(ctx, seed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateSubProcessCommandHandler(),
		app.CreateCompletePrepressCommandHandler(),
		app.CreateSetOrderStatusCommandHandler(),
		app.CreateRefillSolventCommandHandler(),
		app.CreateUpdateSolventSettingsCommandHandler(),
		app.CreateRecordSolventUsageCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetSolventStatusQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
