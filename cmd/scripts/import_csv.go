package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/studybridge/crm-backend/internal/config"
	"github.com/studybridge/crm-backend/internal/models"
	mongorepo "github.com/studybridge/crm-backend/internal/repositories/mongodb"
	"github.com/studybridge/crm-backend/internal/services"
	"github.com/studybridge/crm-backend/pkg/mongodb"
)

// Imports referral partners from a CSV export and bootstraps admin users.
//
//	go run ./cmd/scripts -file partners.csv
//	go run ./cmd/scripts -create-admin -name "Admin" -email admin@example.com -password secret
func main() {
	csvPath := flag.String("file", "", "path to a partner CSV file to import")
	createAdmin := flag.Bool("create-admin", false, "create an admin user instead of importing")
	adminName := flag.String("name", "", "admin name (with -create-admin)")
	adminEmail := flag.String("email", "", "admin email (with -create-admin)")
	adminPassword := flag.String("password", "", "admin password (with -create-admin)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := mongodb.Connect(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)
	ctx := context.Background()

	if *createAdmin {
		if *adminEmail == "" || *adminPassword == "" {
			log.Fatal("-email and -password are required with -create-admin")
		}
		adminRepo := mongorepo.NewAdminUserRepository(db)
		if err := adminRepo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
		authService := services.NewAuthService(adminRepo, cfg)
		user, err := authService.CreateAdmin(ctx, *adminName, *adminEmail, *adminPassword)
		if err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Admin user created: %s (%s)", user.Email, user.ID.Hex())
		return
	}

	if *csvPath == "" {
		log.Fatal("-file is required")
	}

	partnerRepo := mongorepo.NewPartnerRepository(db)
	leadRepo := mongorepo.NewLeadRepository(db)
	if err := partnerRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	partnerService := services.NewPartnerService(partnerRepo, leadRepo)

	imported, skipped, err := importPartners(ctx, partnerService, *csvPath)
	if err != nil {
		log.Fatalf("Failed to import partners: %v", err)
	}
	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)
}

// importPartners reads a CSV with the columns
// name,email,phone,address,city,state,district,country,pincode,partnerType
// and creates each row through the partner service so validation and
// duplicate checks apply the same way they do over HTTP.
func importPartners(ctx context.Context, svc *services.PartnerService, path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse CSV file: %v", err)
	}
	if len(records) < 2 {
		return 0, 0, errors.New("CSV file is empty or has only a header")
	}

	imported, skipped := 0, 0
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 10 {
			log.Printf("Warning: record %d has less than 10 fields, skipping", i)
			skipped++
			continue
		}

		partner := &models.ReferralPartner{
			Name:        record[0],
			Email:       record[1],
			Phone:       record[2],
			Address:     record[3],
			City:        record[4],
			State:       record[5],
			District:    record[6],
			Country:     record[7],
			Pincode:     record[8],
			PartnerType: record[9],
		}
		if err := svc.CreatePartner(ctx, partner); err != nil {
			log.Printf("Warning: record %d (%s) not imported: %v", i, partner.Email, err)
			skipped++
			continue
		}
		imported++
	}

	return imported, skipped, nil
}
