package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"quiz-course/cmd/seed_initial_data/internal/seedmodels"
	"quiz-course/internal/config"
	"quiz-course/internal/database"
	"quiz-course/internal/domain"
	"quiz-course/internal/logger"
	"quiz-course/internal/repository"
	"quiz-course/internal/service"

	"go.uber.org/zap"
)

const defaultSeedFile = "configs/seed_data/initial_courses.json"

func main() {
	seedFile := flag.String("file", defaultSeedFile, "path of the JSON seed file")
	owner := flag.String("owner", "seed", "user id that will own the seeded questions")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.NewSQLXDB(cfg.DB, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	raw, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	var seed seedmodels.SeedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	tm := repository.NewTransactionManagerAdapter(db)
	tags := repository.NewTagDatabaseAdapter(db)
	registry := service.NewRelationRegistry()
	s := &seeder{
		tags:      service.NewTagService(tags),
		questions: service.NewQuestionService(tm, repository.NewQuestionDatabaseAdapter(db), tags, repository.NewCourseInstanceDatabaseAdapter(db), registry),
		courses:   service.NewCourseService(tm, repository.NewCourseDatabaseAdapter(db), tags, registry, nil, cfg),
		// Courses and tags are admin-only; the owner still authors the questions.
		actor: domain.Actor{UserID: *owner, IsAdmin: true},
	}

	if err := s.Seed(context.Background(), &seed); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Initial data seeding completed",
		zap.Int("tags", len(seed.Tags)),
		zap.Int("questions", len(seed.Questions)),
		zap.Int("courses", len(seed.Courses)),
	)
}
