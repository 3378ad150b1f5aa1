package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"mms/internal/config"
	"mms/internal/database"
	"mms/internal/domain"
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

	log.Println("Seeding demo data...")

	admin := seedUser(db, "Admin User", "admin@mms.local", "admin123", domain.RoleAdmin)
	supervisor := seedUser(db, "Maintenance Supervisor", "supervisor@mms.local", "super123", domain.RoleSupervisor)
	tech := seedUser(db, "Field Technician", "tech@mms.local", "tech123", domain.RoleTechnician)

	plant := seedEquipment(db, &domain.Equipment{
		Code:                 "PLA-0001",
		Name:                 "Main Processing Plant",
		Type:                 domain.EquipmentPlant,
		Level:                1,
		Criticality:          domain.CriticalityA,
		Location:             "Site North",
		Status:               domain.EquipmentActive,
		HealthScore:          100,
		UptimePercentage:     100,
		NextMaintenanceHours: 1000,
		CreatedBy:            admin.ID,
	})

	pump := seedEquipment(db, &domain.Equipment{
		Code:                 "EQU-0001",
		Name:                 "Feed Pump A",
		Type:                 domain.EquipmentEquipment,
		Level:                2,
		ParentID:             &plant.ID,
		Criticality:          domain.CriticalityA,
		Location:             "Pump House 1",
		Status:               domain.EquipmentActive,
		RunningHours:         4200,
		LastMaintenanceHours: 3800,
		NextMaintenanceHours: 4300,
		HealthScore:          85,
		UptimePercentage:     97.5,
		CreatedBy:            admin.ID,
	})

	seedEquipment(db, &domain.Equipment{
		Code:                 "ASS-0001",
		Name:                 "Pump A Drive Assembly",
		Type:                 domain.EquipmentAssembly,
		Level:                3,
		ParentID:             &pump.ID,
		Criticality:          domain.CriticalityB,
		Location:             "Pump House 1",
		Status:               domain.EquipmentActive,
		HealthScore:          90,
		UptimePercentage:     99,
		NextMaintenanceHours: 1000,
		CreatedBy:            admin.ID,
	})

	tmpl := &domain.InspectionTemplate{
		Name:          "Rotating Equipment Visual Inspection",
		EquipmentType: domain.EquipmentEquipment,
		SafetyChecks: []domain.TemplateCheck{
			{ID: "sc-loto", Label: "Lockout/tagout applied", Mandatory: true},
			{ID: "sc-ppe", Label: "PPE worn", Mandatory: true},
		},
		Checkpoints: []domain.TemplateCheck{
			{ID: "cp-vibration", Label: "Vibration within limits", Mandatory: true},
			{ID: "cp-leaks", Label: "No visible leaks", Mandatory: true},
			{ID: "cp-noise", Label: "No abnormal noise", Mandatory: false},
		},
		IsActive:  true,
		CreatedBy: supervisor.ID,
	}
	db.Create(tmpl)

	due := time.Now().AddDate(0, 0, 3)
	db.Create(&domain.Backlog{
		Code:           "BL-000001",
		EquipmentID:    pump.ID,
		Issue:          "Seal weeping on drive end, needs replacement",
		Category:       "Mechanical",
		Priority:       domain.PriorityP2,
		Status:         domain.BacklogOpen,
		Source:         domain.SourceManual,
		AssignedTo:     &tech.ID,
		DueDate:        &due,
		EstimatedHours: 4,
		EstimatedCost:  2000,
		CreatedBy:      supervisor.ID,
	})

	db.Create(&domain.PMSchedule{
		Code:              "PM-000001",
		EquipmentID:       pump.ID,
		Title:             "Monthly Maintenance - Feed Pump A",
		Frequency:         domain.FrequencyMonthly,
		NextDue:           time.Now().AddDate(0, 1, 0),
		AssignedTo:        &tech.ID,
		EstimatedDuration: "2 hours",
		Status:            domain.PMScheduled,
		Checklist: []domain.ChecklistItem{
			{Item: "Lubrication of moving parts"},
			{Item: "Tighten connections"},
			{Item: "Check belt tension"},
		},
		EstimatedCost:     2500,
		CompletionHistory: []domain.PMCompletion{},
		IsActive:          true,
		CreatedBy:         supervisor.ID,
	})

	db.Create(&domain.AutoWorkOrderRule{
		Code:         "RULE-0001",
		EquipmentID:  pump.ID,
		Name:         "Pump A 500h service",
		TriggerType:  domain.TriggerRunningHours,
		TriggerValue: 500,
		TriggerUnit:  "hours",
		Template: domain.WorkOrderTemplate{
			Title:          "500h Service - Feed Pump A",
			Description:    "Scheduled 500 running hour service",
			Type:           domain.WorkPreventive,
			EstimatedHours: 6,
		},
		Priority:  domain.PriorityP2,
		IsActive:  true,
		CreatedBy: supervisor.ID,
	})

	// advance sequences past the hand-assigned codes above
	for name, v := range map[string]int64{
		"backlog":             1,
		"pm":                  1,
		"rule":                1,
		"equipment:plant":     1,
		"equipment:equipment": 1,
		"equipment:assembly":  1,
	} {
		db.Where("name = ?", name).FirstOrCreate(&domain.Sequence{Name: name, Value: v})
	}

	log.Println("Seed complete")
}

func seedUser(db *gorm.DB, name, email, password string, role domain.Role) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	u := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Where("email = ?", email).FirstOrCreate(u).Error; err != nil {
		log.Fatal(err)
	}
	return u
}

func seedEquipment(db *gorm.DB, e *domain.Equipment) *domain.Equipment {
	e.Version = 1
	if err := db.Where("code = ?", e.Code).FirstOrCreate(e).Error; err != nil {
		log.Fatal(err)
	}
	return e
}
