package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"applyhub/internal/database"
	"applyhub/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "applyhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	// AutoMigrate to ensure schema is up to date
	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM applications")

	// ================== APPLICATIONS ==================
	log.Println("Creating applications...")

	names := []string{"Aruzhan Seitkali", "Rohit Sharma", "Dana Yerzhanova", "Priya Nair", "Bekzat Omarov"}
	genders := []string{"female", "male", "female", "female", "male"}
	dobs := []string{"1998-04-12", "1995-11-02", "2000-07-19", "1997-01-30", "1993-09-08"}

	paymentID := func(i int) *string {
		id := fmt.Sprintf("pay_seed_%03d", i)
		return &id
	}

	now := time.Now()
	for i, name := range names {
		createdAt := now.Add(-time.Duration(i) * time.Hour)
		app := domain.Application{
			FullName:      name,
			Email:         fmt.Sprintf("applicant%d@example.com", i+1),
			Phone:         fmt.Sprintf("+7 701 555 01%02d", i+10),
			Gender:        genders[i],
			DOB:           dobs[i],
			Bio:           fmt.Sprintf("Seed applicant %d, interested in the open position", i+1),
			Resume:        fmt.Sprintf("%d_seed-resume-%d.pdf", createdAt.UnixNano(), i+1),
			OrderID:       fmt.Sprintf("order_seed_%03d", i+1),
			PaymentStatus: domain.PaymentStatusPending,
			CreatedAt:     createdAt,
		}
		switch i % 3 {
		case 0:
			app.PaymentStatus = domain.PaymentStatusPaid
			app.PaymentID = paymentID(i + 1)
		case 2:
			app.PaymentStatus = domain.PaymentStatusFailed
			app.PaymentID = paymentID(i + 1)
		}
		if err := db.Create(&app).Error; err != nil {
			log.Fatal("seed insert failed:", err)
		}
	}

	log.Println("🎉 Seed completed!")
	log.Printf("Applications: %d (paid, PENDING and failed mixed), newest first on /api/applications", len(names))
}
