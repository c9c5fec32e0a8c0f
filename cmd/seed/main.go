package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wooltrace/internal/authz"
	"wooltrace/internal/config"
	"wooltrace/internal/domain"
	"wooltrace/internal/pricing"
	"wooltrace/internal/repository/postgres"
)

// Demo accounts for local development. All share the same password.
const demoPassword = "Password123"

var demoUsers = []struct {
	name  string
	email string
	role  domain.Role
}{
	{"Alice Shepherd", "farmer@wooltrace.example", domain.RoleFarmer},
	{"Marco Mills", "mill@wooltrace.example", domain.RoleMillOperator},
	{"Ines Proctor", "inspector@wooltrace.example", domain.RoleQualityInspector},
	{"Ben Chandler", "buyer@wooltrace.example", domain.RoleBuyer},
	{"Ada Root", "admin@wooltrace.example", domain.RoleAdmin},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := postgres.NewUserRepo(db)
	batchRepo := postgres.NewBatchRepo(db)
	reportRepo := postgres.NewQualityReportRepo(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 12)
	if err != nil {
		log.Fatalf("failed to hash demo password: %v", err)
	}

	users := make(map[domain.Role]*domain.User, len(demoUsers))
	for _, d := range demoUsers {
		user := &domain.User{
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hash),
			Role:         d.role,
			Permissions:  authz.PermissionsFor(d.role),
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				log.Printf("seed: user %s already exists, skipping", d.email)
				existing, err := userRepo.GetByEmail(ctx, d.email)
				if err != nil {
					log.Fatalf("seed: failed to load existing user %s: %v", d.email, err)
				}
				users[d.role] = existing
				continue
			}
			log.Fatalf("seed: failed to create user %s: %v", d.email, err)
		}
		users[d.role] = user
		log.Printf("seed: created %s (%s)", d.email, d.role)
	}

	farmer := users[domain.RoleFarmer]
	inspector := users[domain.RoleQualityInspector]

	// One finished and approved batch ready for the marketplace.
	finished := &domain.Batch{
		BatchCode:     "BATCH-DEMO0001",
		CreatorID:     farmer.ID,
		FarmerID:      &farmer.ID,
		WoolType:      domain.WoolMerino,
		Weight:        500,
		Source:        "Highfield Farm",
		CurrentStage:  domain.StageFinished,
		QualityStatus: domain.QualityPending,
		ProcessingLogs: domain.ProcessingLogs{{
			Stage:      domain.StageReceived,
			Note:       "Batch initialized",
			OperatorID: farmer.ID,
			Timestamp:  time.Now().UTC(),
		}},
	}
	if err := batchRepo.Create(ctx, finished); err != nil {
		log.Fatalf("seed: failed to create batch: %v", err)
	}

	diameter, yield := 18.5, 76.0
	report := &domain.QualityReport{
		BatchID:        finished.ID,
		InspectorID:    inspector.ID,
		FiberDiameter:  &diameter,
		CleanWoolYield: &yield,
		ColorGrade:     "A",
		Notes:          "Excellent fine fleece",
		Decision:       domain.DecisionApproved,
	}
	if err := reportRepo.Create(ctx, report); err != nil {
		log.Fatalf("seed: failed to create quality report: %v", err)
	}

	fin, err := pricing.ComputeFinancials(finished.Weight, finished.WoolType, report)
	if err != nil {
		log.Fatalf("seed: failed to compute financials: %v", err)
	}

	finished.QualityReportID = &report.ID
	finished.QualityStatus = domain.QualityApproved
	finished.Financials = fin
	if err := batchRepo.Update(ctx, finished); err != nil {
		log.Fatalf("seed: failed to approve batch: %v", err)
	}

	// A second batch still moving through the mill.
	inProgress := &domain.Batch{
		BatchCode:     "BATCH-DEMO0002",
		CreatorID:     farmer.ID,
		FarmerID:      &farmer.ID,
		WoolType:      domain.WoolCorriedale,
		Weight:        350,
		Source:        "Highfield Farm",
		CurrentStage:  domain.StageCarding,
		QualityStatus: domain.QualityPending,
		ProcessingLogs: domain.ProcessingLogs{{
			Stage:      domain.StageReceived,
			Note:       "Batch initialized",
			OperatorID: farmer.ID,
			Timestamp:  time.Now().UTC(),
		}},
	}
	if err := batchRepo.Create(ctx, inProgress); err != nil {
		log.Fatalf("seed: failed to create batch: %v", err)
	}

	log.Println("seed: done")
}
