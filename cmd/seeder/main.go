package main

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/stupnd/trippy-sub001/internal/adapters/observability"
	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/planner"
	"github.com/stupnd/trippy-sub001/internal/shared"
	mysqlrepo "github.com/stupnd/trippy-sub001/internal/storage/mysql"
)

// Populates a fresh database with demo trips, members, preferences,
// activities and a starting flight selection per trip.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.SeedWorkers).Int("trips", len(shared.SeedTrips)).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, seed := range shared.SeedTrips {
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(seed shared.SeedTrip) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := seedTrip(ctx, repo, seed); err != nil {
				log.Warn().Str("city", seed.City).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("city", seed.City).Msg("seed ok")
		}(seed)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func seedTrip(ctx context.Context, repo *mysqlrepo.Repo, seed shared.SeedTrip) error {
	start, err := time.Parse("2006-01-02", seed.StartDate)
	if err != nil {
		return err
	}
	end, err := time.Parse("2006-01-02", seed.EndDate)
	if err != nil {
		return err
	}

	facts := domain.TripFacts{
		ID:        uuid.NewString(),
		City:      seed.City,
		Country:   seed.Country,
		StartDate: start,
		EndDate:   end,
		Travelers: len(seed.Members),
		Currency:  seed.Currency,
	}
	if err := repo.CreateTrip(ctx, facts); err != nil {
		return err
	}

	for _, m := range seed.Members {
		if err := repo.AddMember(ctx, facts.ID, m.ID); err != nil {
			return err
		}
		origin, min, max := m.Origin, m.NightlyBudgetMin, m.NightlyBudgetMax
		pref := domain.MemberPreference{
			TripID:            facts.ID,
			MemberID:          m.ID,
			Origin:            &origin,
			NightlyBudgetMin:  &min,
			NightlyBudgetMax:  &max,
			Interests:         m.Interests,
			FlightFlexibility: m.FlightFlexibility,
			BudgetSensitivity: m.BudgetSensitivity,
		}
		if err := repo.UpsertPreference(ctx, pref); err != nil {
			return err
		}
	}

	for _, name := range seed.Activities {
		act := domain.Activity{
			ID:     uuid.NewString(),
			TripID: facts.ID,
			Name:   name,
		}
		if err := repo.UpsertActivity(ctx, act); err != nil {
			return err
		}
	}

	// One flight selection per trip so the voting flow has something to
	// act on out of the box.
	candidates := planner.GenerateFlights(seed.Members[0].Origin, facts.City, start, end)
	sel := domain.Selection{
		ID:       uuid.NewString(),
		TripID:   facts.ID,
		Category: domain.CategoryFlight,
		Option:   candidates[0],
	}
	return repo.SaveSelection(ctx, sel)
}
