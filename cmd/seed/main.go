package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/cinema-ticket-booking/internal/config"
	"github.com/iliyamo/cinema-ticket-booking/internal/database"
	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/repository"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
)

// Seeder fills an empty database with a small catalog: a few genres,
// halls and films, and three days of sessions starting tomorrow.
type Seeder struct {
	db       *sql.DB
	filesDir string
	log      *logger.Logger

	genres   *repository.GenreRepo
	halls    *repository.HallRepo
	files    *repository.FileRepo
	films    *repository.FilmRepo
	sessions *repository.FilmSessionRepo
	users    *service.UserService
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(os.Stdout, "")
	if err != nil {
		panic(err)
	}

	if err := migrate(cfg.DSN()); err != nil {
		log.Errorf("DATABASE", "migrate: %v", err)
		os.Exit(1)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		log.Errorf("DATABASE", "open: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	s := &Seeder{
		db:       db,
		filesDir: cfg.FilesDir,
		log:      log,
		genres:   repository.NewGenreRepo(db),
		halls:    repository.NewHallRepo(db),
		files:    repository.NewFileRepo(db),
		films:    repository.NewFilmRepo(db),
		sessions: repository.NewFilmSessionRepo(db),
		users:    service.NewUserService(repository.NewUserRepo(db), cfg.BcryptCost),
	}

	ctx := context.Background()
	if err := s.Clean(ctx); err != nil {
		log.Errorf("SEED", "clean: %v", err)
		os.Exit(1)
	}
	if err := s.SeedAll(ctx, time.Now().UTC()); err != nil {
		log.Errorf("SEED", "seed: %v", err)
		os.Exit(1)
	}
	log.Info("SEED", "database ready")
}

func migrate(dsn string) error {
	m, err := database.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// Clean empties every table, children first.
func (s *Seeder) Clean(ctx context.Context) error {
	for _, table := range []string{"tickets", "film_sessions", "films", "files", "genres", "halls", "users"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
		s.log.LogDatabase("DELETE", table, "cleared")
	}
	return nil
}

type filmSeed struct {
	name, description, genre, poster string
	year, minimalAge, duration       uint32
}

var filmSeeds = []filmSeed{
	{"The Long Night", "A lighthouse keeper waits out a storm.", "Drama", "long-night.jpg", 2021, 12, 118},
	{"Orbit", "Two engineers repair a failing station.", "Sci-Fi", "orbit.jpg", 2023, 12, 131},
	{"Paper Crowns", "A family bakery fights a chain store.", "Comedy", "paper-crowns.jpg", 2019, 0, 95},
	{"Cold Harbour", "A customs officer finds the wrong crate.", "Thriller", "cold-harbour.jpg", 2022, 16, 109},
}

// SeedAll inserts the catalog.  Session times are laid out from now.
func (s *Seeder) SeedAll(ctx context.Context, now time.Time) error {
	genreIDs := map[string]uint64{}
	for _, f := range filmSeeds {
		if _, ok := genreIDs[f.genre]; ok {
			continue
		}
		g := &model.Genre{Name: f.genre}
		if err := s.genres.Save(ctx, g); err != nil {
			return fmt.Errorf("genre %s: %w", f.genre, err)
		}
		genreIDs[f.genre] = g.ID
	}

	halls := []*model.Hall{
		{Name: "Red", RowCount: 8, PlaceCount: 12, Description: "Main hall"},
		{Name: "Blue", RowCount: 5, PlaceCount: 8, Description: "Small hall with recliners"},
	}
	for _, h := range halls {
		if err := s.halls.Save(ctx, h); err != nil {
			return fmt.Errorf("hall %s: %w", h.Name, err)
		}
	}

	films := make([]*model.Film, 0, len(filmSeeds))
	for _, fs := range filmSeeds {
		file := &model.File{Name: fs.poster, Path: filepath.Join("posters", fs.poster)}
		if err := s.files.Save(ctx, file); err != nil {
			return fmt.Errorf("file %s: %w", fs.poster, err)
		}
		if _, err := os.Stat(filepath.Join(s.filesDir, file.Path)); errors.Is(err, os.ErrNotExist) {
			s.log.Warn("SEED", "poster missing on disk: "+filepath.Join(s.filesDir, file.Path))
		}
		f := &model.Film{
			Name:              fs.name,
			Description:       fs.description,
			Year:              fs.year,
			GenreID:           genreIDs[fs.genre],
			MinimalAge:        fs.minimalAge,
			DurationInMinutes: fs.duration,
			FileID:            file.ID,
		}
		if err := s.films.Save(ctx, f); err != nil {
			return fmt.Errorf("film %s: %w", fs.name, err)
		}
		films = append(films, f)
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	slots := []time.Duration{13 * time.Hour, 16*time.Hour + 30*time.Minute, 20 * time.Hour}
	n := 0
	for d := 0; d < 3; d++ {
		for i, slot := range slots {
			for j, h := range halls {
				f := films[(d+i+j)%len(films)]
				start := day.AddDate(0, 0, d).Add(slot)
				fs := &model.FilmSession{
					FilmID:    f.ID,
					HallID:    h.ID,
					StartTime: start,
					EndTime:   start.Add(time.Duration(f.DurationInMinutes) * time.Minute),
					Price:     uint32(300 + 50*i),
				}
				if err := s.sessions.Save(ctx, fs); err != nil {
					return fmt.Errorf("session: %w", err)
				}
				n++
			}
		}
	}
	s.log.Infof("SEED", "%d genres, %d halls, %d films, %d sessions", len(genreIDs), len(halls), len(films), n)

	if _, err := s.users.Register(ctx, "Demo User", "demo@example.com", "demo"); err != nil {
		return fmt.Errorf("demo user: %w", err)
	}
	s.log.Info("SEED", "demo user demo@example.com / demo")
	return nil
}
