// Command seed fills the configured backend with a demo salon.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"salonbook/config"
	"salonbook/database"
	salonRepo "salonbook/database/repository/salon"
	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

func pct(v float64) *float64 { return &v }

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var repo salonRepo.Repository
	switch config.AppConfig.StorageBackend {
	case "mongo":
		database.InitDB()
		db := database.Database()
		// Clear existing salon data.
		for _, name := range []string{"appointments", "clientPackages", "packageTemplates", "services", "professionals", "clients", "weeklyDiscounts"} {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("Failed to clear %s: %v", name, err)
			}
		}
		mongoRepo := salonRepo.NewMongoSalonRepo(db)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		repo = mongoRepo
	case "file":
		for _, f := range []string{"packageTemplates.json", "clientPackages.json"} {
			_ = os.Remove(filepath.Join(config.AppConfig.DataDir, f))
		}
		repo = salonRepo.NewFileSalonRepo(config.AppConfig.DataDir)
		if _, err := repo.Load(ctx); err != nil {
			log.Fatalf("Failed to open data dir: %v", err)
		}
	default:
		log.Fatalf("STORAGE_BACKEND must be mongo or file to seed, got %q", config.AppConfig.StorageBackend)
	}

	bus := events.NewBus()
	bus.Subscribe(salonRepo.Mirror(repo, logger))

	days, err := config.AppConfig.WorkingDays()
	if err != nil {
		log.Fatalf("Invalid SALON_WORKING_DAYS: %v", err)
	}
	svc := booking.NewDefaultBookingService(bus, utils.SystemClock{}, models.SalonSettings{
		OpenTime:          config.AppConfig.SalonOpenTime,
		CloseTime:         config.AppConfig.SalonCloseTime,
		WorkingDays:       days,
		DefaultCommission: config.AppConfig.SalonDefaultCommission,
	}, nil, logger)

	must := func(err error) {
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	lashes, err := svc.Services.Add(models.Service{
		Category:      "Lashes",
		Name:          "Volume lash extensions",
		Price:         decimal.NewFromInt(180),
		Duration:      90,
		RetouchPeriod: 1,
	})
	must(err)
	brows, err := svc.Services.Add(models.Service{
		Category:             "Brows",
		Name:                 "Brow lamination",
		Price:                decimal.NewFromInt(90),
		Duration:             60,
		CommissionPercentage: pct(35),
		RetouchPeriod:        2,
	})
	must(err)
	micro, err := svc.Services.Add(models.Service{
		Category:      "Brows",
		Name:          "Microblading",
		Price:         decimal.NewFromInt(600),
		Duration:      120,
		RetouchPeriod: 6,
	})
	must(err)

	ana, err := svc.Professionals.Add(models.Professional{
		Name:       "Ana",
		ServiceIDs: []string{lashes.ID, brows.ID},
		CommissionOverrides: []models.CommissionOverride{
			{ItemID: lashes.ID, ItemType: models.ItemService, Percentage: 50},
		},
	})
	must(err)
	_, err = svc.Professionals.Add(models.Professional{
		Name:        "Bea",
		WorkingDays: []int{2, 3, 4, 5, 6},
		StartTime:   "10:00",
		EndTime:     "19:00",
		ServiceIDs:  []string{brows.ID, micro.ID},
	})
	must(err)

	tpl, err := svc.Templates.Add(models.PackageTemplate{
		Name:         "Lash maintenance x4",
		ServiceID:    lashes.ID,
		Price:        decimal.NewFromInt(600),
		SessionCount: 4,
		ValidityDays: 180,
	})
	must(err)

	_, err = svc.Discounts.Add(models.WeeklyDiscount{
		Name:          "Lash Monday",
		ItemID:        lashes.ID,
		ItemType:      models.ItemService,
		Days:          []int{1},
		DiscountType:  models.DiscountPercent,
		DiscountValue: decimal.NewFromInt(10),
	})
	must(err)

	carla, err := svc.Clients.Add(models.Client{Name: "Carla", Phone: "+5511999990001"})
	must(err)
	_, err = svc.Clients.Add(models.Client{Name: "Dora", Phone: "+5511999990002"})
	must(err)

	purchase, err := svc.BuyPackage(ctx, carla.ID, tpl.ID)
	must(err)

	// First bookable weekday from tomorrow.
	day := time.Now().AddDate(0, 0, 1)
	for day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	_, err = svc.Book(ctx, booking.BookingRequest{
		ClientID:        carla.ID,
		ProfessionalID:  ana.ID,
		ServiceID:       lashes.ID,
		Date:            day.Format(models.DateLayout),
		StartTime:       "10:00",
		PaymentStatus:   models.PaymentPaidWithPackage,
		ClientPackageID: purchase.Package.ID,
	})
	must(err)

	log.Printf("Seeded %d services, %d professionals, %d clients, %d appointments",
		len(svc.Services.List()), len(svc.Professionals.List()), len(svc.Clients.List()), len(svc.Appointments.List()))
}
