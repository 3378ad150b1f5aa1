package equipment

import (
	"time"

	"mms/internal/domain"

	"gorm.io/datatypes"
)

type CreateEquipmentRequest struct {
	Code                 string                 `json:"code"`
	Name                 string                 `json:"name" binding:"required"`
	Type                 domain.EquipmentType   `json:"type" binding:"required"`
	Level                int                    `json:"level" binding:"required,gte=1,lte=5"`
	ParentID             *int64                 `json:"parent_id"`
	Criticality          domain.Criticality     `json:"criticality" binding:"required"`
	Location             string                 `json:"location" binding:"required"`
	Description          string                 `json:"description"`
	Manufacturer         string                 `json:"manufacturer"`
	Model                string                 `json:"model"`
	SerialNumber         string                 `json:"serial_number"`
	CommissionDate       *time.Time             `json:"commission_date"`
	RunningHours         float64                `json:"running_hours"`
	NextMaintenanceHours float64                `json:"next_maintenance_hours"`
	Specifications       map[string]interface{} `json:"specifications"`
}

type UpdateEquipmentRequest struct {
	Name                 *string                 `json:"name"`
	Criticality          *domain.Criticality     `json:"criticality"`
	Location             *string                 `json:"location"`
	Status               *domain.EquipmentStatus `json:"status"`
	Description          *string                 `json:"description"`
	Manufacturer         *string                 `json:"manufacturer"`
	Model                *string                 `json:"model"`
	SerialNumber         *string                 `json:"serial_number"`
	CommissionDate       *time.Time              `json:"commission_date"`
	RunningHours         *float64                `json:"running_hours"`
	NextMaintenanceHours *float64                `json:"next_maintenance_hours"`
	UptimePercentage     *float64                `json:"uptime_percentage"`
	Specifications       map[string]interface{}  `json:"specifications"`
}

type SetParentRequest struct {
	ParentID *int64 `json:"parent_id"`
}

// TreeNode is one node of the derived hierarchy projection.
type TreeNode struct {
	domain.Equipment
	Nodes []TreeNode `json:"nodes"`
}

func specsToJSON(m map[string]interface{}) datatypes.JSONMap {
	if len(m) == 0 {
		return nil
	}
	return datatypes.JSONMap(m)
}
