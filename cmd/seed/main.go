package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/paylinq/workforce/backend/internal/config"
	"github.com/paylinq/workforce/backend/internal/repository"
	"github.com/paylinq/workforce/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var days int

	flag.IntVar(&op, "op", 0, "operation to run (1: random workers, 2: random stations, 3: random shift templates, 4: random shifts)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.IntVar(&days, "days", 7, "number of days, starting today, to spread random shifts over")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, ping to make sure the database is reachable
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("the number of workers must be positive")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			worker, err := utils.GenerateRandomWorker(cfg.Seed.Worker.Password, cfg.Email.WorkerDomain)
			if err != nil {
				slog.Error("failed to generate a random worker", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateWorker(worker); err != nil {
				slog.Error("failed to insert worker", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("workers inserted", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("the number of stations must be positive")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			station := utils.GenerateRandomStation()
			if err := repo.CreateStation(station); err != nil {
				slog.Error("failed to insert station", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("stations inserted", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("the number of templates must be positive")
			return
		}

		stations, err := repo.GetAllStations()
		if err != nil {
			slog.Error("failed to fetch stations", slog.String("error", err.Error()))
			return
		}
		if len(stations) == 0 {
			slog.Error("no stations to attach templates to, run op 2 first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			station := stations[rand.Intn(len(stations))]

			st := utils.GenerateRandomShiftTemplate(station.ID)
			if err := repo.CreateShiftTemplate(st); err != nil {
				slog.Error("failed to insert shift template", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("shift templates inserted", slog.Int("count", n-cnt))
	case 4:
		if n <= 0 || days <= 0 {
			slog.Error("the number of shifts and days must be positive")
			return
		}

		stations, err := repo.GetAllStations()
		if err != nil {
			slog.Error("failed to fetch stations", slog.String("error", err.Error()))
			return
		}
		workers, err := repo.GetAllWorkers()
		if err != nil {
			slog.Error("failed to fetch workers", slog.String("error", err.Error()))
			return
		}
		if len(stations) == 0 || len(workers) == 0 {
			slog.Error("no stations or workers to schedule, run ops 1 and 2 first")
			return
		}

		today := time.Now().Truncate(24 * time.Hour)

		cnt := n
		for i := 0; i < n; i++ {
			station := stations[rand.Intn(len(stations))]
			worker := workers[rand.Intn(len(workers))]
			date := today.AddDate(0, 0, rand.Intn(days))

			shift := utils.GenerateRandomShift(station.ID, worker.ID, date)
			if err := repo.CreateShift(shift); err != nil {
				slog.Error("failed to insert shift", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("shifts inserted", slog.Int("count", n-cnt))
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
