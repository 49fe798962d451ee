// Command seed populates the database with the bootstrap data the portal
// needs before it can serve citizens: the default admin account and the
// service category catalog. It is idempotent and safe to re-run.
//
// Flags:
//
//	--admin-password  password for the default admin (default: Admin@123)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	pgadmin "github.com/gramseva/gramseva-backend/internal/adapter/postgres/admin"
	pgcategory "github.com/gramseva/gramseva-backend/internal/adapter/postgres/category"
	"github.com/gramseva/gramseva-backend/internal/app"
	"github.com/gramseva/gramseva-backend/internal/config"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

func main() {
	adminPassword := flag.String("admin-password", "Admin@123", "password for the default admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	admins := pgadmin.New(pool)
	categories := pgcategory.New(pool)

	if err := seedAdmin(ctx, admins, *adminPassword, cfg.Auth.PasswordCost, logger); err != nil {
		logger.Error("seed admin", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := seedCategories(ctx, categories, logger); err != nil {
		logger.Error("seed categories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed completed")
}

func seedAdmin(ctx context.Context, admins *pgadmin.Repo, password string, cost int, logger *slog.Logger) error {
	_, err := admins.GetByUsername(ctx, "admin")
	if err == nil {
		logger.Info("default admin already exists, skipping")
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}

	department := "General Administration"
	created, err := admins.Create(ctx, &domain.Admin{
		Username:     "admin",
		Email:        "admin@grampanchayat.gov.in",
		PasswordHash: string(hash),
		FullName:     "System Administrator",
		Role:         domain.RoleAdmin,
		Department:   &department,
		IsActive:     true,
	})
	if err != nil {
		return err
	}

	logger.Info("default admin created", slog.String("username", created.Username))
	return nil
}

func seedCategories(ctx context.Context, categories *pgcategory.Repo, logger *slog.Logger) error {
	count, err := categories.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("service categories already present, skipping", slog.Int64("count", count))
		return nil
	}

	for i := range catalog {
		if _, err := categories.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}

	logger.Info("service categories seeded", slog.Int("count", len(catalog)))
	return nil
}

func ptr(s string) *string { return &s }

// catalog mirrors the services the Gram Panchayat offers at launch.
var catalog = []domain.ServiceCategory{
	{
		NameEn: "Birth Certificate", NameHi: "जन्म प्रमाण पत्र", NameMr: "जन्म दाखला",
		Description:    ptr("Official birth registration certificate for newborns"),
		Icon:           ptr("👶"),
		Fee:            50.00,
		ProcessingDays: 7,
		RequiredDocs:   ptr("Hospital birth slip, Parents Aadhar card, Residence proof"),
		IsActive:       true,
	},
	{
		NameEn: "Death Certificate", NameHi: "मृत्यु प्रमाण पत्र", NameMr: "मृत्यू दाखला",
		Description:    ptr("Official death registration certificate"),
		Icon:           ptr("📜"),
		Fee:            50.00,
		ProcessingDays: 7,
		RequiredDocs:   ptr("Hospital death cert, Deceased Aadhar, Family Aadhar card"),
		IsActive:       true,
	},
	{
		NameEn: "Income Certificate", NameHi: "आय प्रमाण पत्र", NameMr: "उत्पन्नाचा दाखला",
		Description:    ptr("Certificate declaring annual family income"),
		Icon:           ptr("💰"),
		Fee:            30.00,
		ProcessingDays: 10,
		RequiredDocs:   ptr("Ration card, Salary slip or self-declaration, Aadhar card"),
		IsActive:       true,
	},
	{
		NameEn: "Caste Certificate", NameHi: "जाति प्रमाण पत्र", NameMr: "जात प्रमाणपत्र",
		Description:    ptr("Certificate for SC/ST/OBC/NT caste verification"),
		Icon:           ptr("🏅"),
		Fee:            30.00,
		ProcessingDays: 15,
		RequiredDocs:   ptr("Previous caste cert or school leaving cert, Aadhar, Ration card"),
		IsActive:       true,
	},
	{
		NameEn: "Domicile Certificate", NameHi: "अधिवास प्रमाण पत्र", NameMr: "रहिवास दाखला",
		Description:    ptr("Proof of permanent residence in the state"),
		Icon:           ptr("🏠"),
		Fee:            40.00,
		ProcessingDays: 12,
		RequiredDocs:   ptr("Aadhar card, Voter ID, Electricity bill or rent agreement"),
		IsActive:       true,
	},
	{
		NameEn: "Marriage Certificate", NameHi: "विवाह प्रमाण पत्र", NameMr: "विवाह नोंदणी दाखला",
		Description:    ptr("Official marriage registration certificate"),
		Icon:           ptr("💑"),
		Fee:            100.00,
		ProcessingDays: 7,
		RequiredDocs:   ptr("Marriage photo, Bride & Groom Aadhar, Age proof, 2 witnesses ID"),
		IsActive:       true,
	},
	{
		NameEn: "No Objection Certificate", NameHi: "अनापत्ति प्रमाण पत्र", NameMr: "ना-हरकत दाखला",
		Description:    ptr("NOC for various administrative purposes"),
		Icon:           ptr("✅"),
		Fee:            25.00,
		ProcessingDays: 5,
		RequiredDocs:   ptr("Application form, Aadhar card, Purpose documentation"),
		IsActive:       true,
	},
	{
		NameEn: "Water Connection", NameHi: "पानी कनेक्शन", NameMr: "पाणी जोडणी",
		Description:    ptr("New water supply connection for residential / commercial property"),
		Icon:           ptr("💧"),
		Fee:            500.00,
		ProcessingDays: 30,
		RequiredDocs:   ptr("Property documents, Aadhar card, Site plan, No dues certificate"),
		IsActive:       true,
	},
	{
		NameEn: "Building Permission", NameHi: "भवन अनुमति", NameMr: "बांधकाम परवानगी",
		Description:    ptr("Permission for new construction or renovation"),
		Icon:           ptr("🏗️"),
		Fee:            1000.00,
		ProcessingDays: 45,
		RequiredDocs:   ptr("Land documents, Building plan, Site clearance, NOC from neighbours"),
		IsActive:       true,
	},
	{
		NameEn: "Trade License", NameHi: "व्यापार लाइसेंस", NameMr: "व्यापार परवाना",
		Description:    ptr("License for starting a new business or shop"),
		Icon:           ptr("🏪"),
		Fee:            200.00,
		ProcessingDays: 20,
		RequiredDocs:   ptr("Business address proof, Owner Aadhar, Shop photos, Fire NOC"),
		IsActive:       true,
	},
}
