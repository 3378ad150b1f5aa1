package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"mms/internal/config"
	"mms/internal/database"
	"mms/internal/domain"
	"mms/internal/events"
	"mms/internal/middleware"
	"mms/internal/modules/auth"
	"mms/internal/modules/backlog"
	"mms/internal/modules/equipment"
	"mms/internal/modules/inspection"
	"mms/internal/modules/pm"
	"mms/internal/modules/rules"
	"mms/internal/modules/workorder"
	jwtsvc "mms/internal/pkg/jwt"
	"mms/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Sequence{},
		&domain.Equipment{},
		&domain.InspectionTemplate{},
		&domain.Inspection{},
		&domain.Backlog{},
		&domain.WorkOrder{},
		&domain.PMSchedule{},
		&domain.AutoWorkOrderRule{},
	); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo := repository.NewUserRepository(db)
	seqRepo := repository.NewSequenceRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	backlogRepo := repository.NewBacklogRepository(db)
	workOrderRepo := repository.NewWorkOrderRepository(db)
	pmRepo := repository.NewPMRepository(db)
	ruleRepo := repository.NewRuleRepository(db)

	hub := events.NewHub()
	go hub.Run(ctx)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	equipmentService := equipment.NewService(equipmentRepo, seqRepo, hub)
	equipmentHandler := equipment.NewHandler(equipmentService)

	workOrderService := workorder.NewService(workOrderRepo, backlogRepo, equipmentRepo, seqRepo, hub)
	workOrderHandler := workorder.NewHandler(workOrderService)

	backlogService := backlog.NewService(backlogRepo, workOrderService, seqRepo, hub)
	backlogHandler := backlog.NewHandler(backlogService)

	inspectionService := inspection.NewService(inspectionRepo, templateRepo, equipmentRepo, backlogService, seqRepo, hub)
	inspectionHandler := inspection.NewHandler(inspectionService)

	pmService := pm.NewService(pmRepo, equipmentRepo, seqRepo, hub)
	pmHandler := pm.NewHandler(pmService)

	ruleEngine := rules.NewEngine(ruleRepo, equipmentRepo, workOrderService, seqRepo, hub)
	ruleHandler := rules.NewHandler(ruleEngine)

	go rules.NewPoller(ruleEngine, cfg.RulePollInterval).Run(ctx)
	go pm.NewPoller(pmService, cfg.PMPollInterval).Run(ctx)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	eventsHandler := events.NewHandler(hub)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			equipmentHandler.RegisterRoutes(protected)
			inspectionHandler.RegisterRoutes(protected)
			backlogHandler.RegisterRoutes(protected)
			workOrderHandler.RegisterRoutes(protected)
			pmHandler.RegisterRoutes(protected)
			ruleHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
