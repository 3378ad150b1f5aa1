package domain

import (
	"time"

	"gorm.io/datatypes"
)

type EquipmentType string

const (
	EquipmentPlant       EquipmentType = "plant"
	EquipmentEquipment   EquipmentType = "equipment"
	EquipmentAssembly    EquipmentType = "assembly"
	EquipmentSubAssembly EquipmentType = "sub-assembly"
	EquipmentComponent   EquipmentType = "component"
)

type Criticality string

const (
	CriticalityA Criticality = "A"
	CriticalityB Criticality = "B"
	CriticalityC Criticality = "C"
)

type EquipmentStatus string

const (
	EquipmentActive         EquipmentStatus = "Active"
	EquipmentMaintenance    EquipmentStatus = "Maintenance"
	EquipmentDecommissioned EquipmentStatus = "Decommissioned"
)

// Equipment is a node in the 5-level asset hierarchy. Children is always a
// derived projection (parent == id && !is_deleted); it is never persisted.
type Equipment struct {
	ID                   int64             `json:"id" gorm:"primaryKey"`
	Code                 string            `json:"code" gorm:"uniqueIndex" validate:"required"`
	Name                 string            `json:"name" validate:"required"`
	Type                 EquipmentType     `json:"type" validate:"required"`
	Level                int               `json:"level" validate:"required,gte=1,lte=5"`
	ParentID             *int64            `json:"parent_id,omitempty" gorm:"index"`
	Criticality          Criticality       `json:"criticality" validate:"required"`
	Location             string            `json:"location"`
	Status               EquipmentStatus   `json:"status"`
	Description          string            `json:"description,omitempty" gorm:"type:text"`
	Manufacturer         string            `json:"manufacturer,omitempty"`
	Model                string            `json:"model,omitempty"`
	SerialNumber         string            `json:"serial_number,omitempty"`
	CommissionDate       *time.Time        `json:"commission_date,omitempty"`
	RunningHours         float64           `json:"running_hours"`
	LastMaintenanceHours float64           `json:"last_maintenance_hours"`
	NextMaintenanceHours float64           `json:"next_maintenance_hours"`
	Specifications       datatypes.JSONMap `json:"specifications,omitempty"`
	HealthScore          int               `json:"health_score"`
	LastMaintenance      *time.Time        `json:"last_maintenance,omitempty"`
	NextMaintenance      *time.Time        `json:"next_maintenance,omitempty"`
	MaintenanceCost      float64           `json:"maintenance_cost"`
	UptimePercentage     float64           `json:"uptime_percentage"`
	CreatedBy            int64             `json:"created_by"`
	IsDeleted            bool              `json:"is_deleted" gorm:"index"`
	Version              int64             `json:"-"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`

	Parent   *Equipment  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Equipment `json:"children,omitempty" gorm:"-"`
}

func (Equipment) TableName() string { return "equipment" }
