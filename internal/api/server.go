package api

import (
	"log"

	"github.com/SundayYogurt/learning_service/config"
	"github.com/SundayYogurt/learning_service/infra/queue"
	"github.com/SundayYogurt/learning_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/learning_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/learning_service/internal/domain"
	"github.com/SundayYogurt/learning_service/internal/helper"
	"github.com/SundayYogurt/learning_service/internal/repository"
	"github.com/SundayYogurt/learning_service/internal/services"
	"github.com/SundayYogurt/learning_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	// several replicas may boot at once; only one should migrate
	const migrateLockID int64 = 20260115

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.CourseCategory{},
		&domain.CourseLevel{},
		&domain.Course{},
		&domain.EnrolledCourse{},
		&domain.AllowedCard{},
		&domain.AuthToken{},
		&domain.ContactMessage{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	seedAdmin(db, cfg, authHelper)
	seedLookups(db)

	if err := db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error; err != nil {
		log.Printf("migration unlock error: %v", err)
	}

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	contactRepo := repository.NewContactRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, profileRepo, tokenRepo, contactRepo, authHelper, kafkaProducer)
	courseSvc := services.NewCourseService(courseRepo, categoryRepo, profileRepo, kafkaProducer)
	enrollmentSvc := services.NewEnrollmentService(enrollmentRepo, courseRepo, profileRepo, cardRepo, kafkaProducer)
	reportSvc := services.NewReportService(enrollmentRepo, courseRepo, profileRepo)

	// ---------- Handlers ----------
	authMw := middleware.AuthMiddleware(authHelper, userSvc)

	userHandler := handlers.NewUserHandler(userSvc, up, authHelper)
	userHandler.SetupRoutes(app, authMw)

	courseHandler := handlers.NewCourseHandler(courseSvc, reportSvc, up)
	courseHandler.SetupRoutes(app, authMw)

	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentSvc)
	enrollmentHandler.SetupRoutes(app, authMw)

	adminHandler := handlers.NewAdminHandler(userSvc, courseSvc, enrollmentSvc)
	adminHandler.SetupRoutes(app, authMw)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func seedAdmin(db *gorm.DB, cfg config.Config, auth helper.Auth) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("admin seed skipped: ADMIN_EMAIL / ADMIN_PASSWORD not set")
		return
	}

	var existing domain.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("admin seed lookup error: %v", err)
		return
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("admin seed hash error: %v", err)
		return
	}

	admin := domain.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Profile{UserID: admin.ID}).Error
	}); err != nil {
		log.Printf("admin seed error: %v", err)
		return
	}
	log.Println("admin user seeded")
}

func seedLookups(db *gorm.DB) {
	levels := []string{"Beginner", "Intermediate", "Advanced"}
	for _, name := range levels {
		var l domain.CourseLevel
		if err := db.Where("name = ?", name).First(&l).Error; err == gorm.ErrRecordNotFound {
			_ = db.Create(&domain.CourseLevel{Name: name}).Error
		}
	}

	categories := []string{"Programming", "Mathematics", "Languages", "Business"}
	for _, name := range categories {
		var c domain.CourseCategory
		if err := db.Where("name = ?", name).First(&c).Error; err == gorm.ErrRecordNotFound {
			_ = db.Create(&domain.CourseCategory{Name: name}).Error
		}
	}
}
