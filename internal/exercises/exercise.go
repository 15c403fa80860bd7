package exercises

import (
	"github.com/lcsouza2/fittude-data-repo/internal/store"
)

type Exercise struct {
	ID          int         `json:"exercise_id"`
	Owner       store.Owner `json:"user_id"`
	Name        string      `json:"exercise_name"`
	Description string      `json:"description"`
	Active      bool        `json:"active"`
}

type CreateParams struct {
	Owner       store.Owner
	Name        string
	Description string
	Active      bool
}

type UpdateParams struct {
	ID          int
	OwnerID     int
	Name        string
	Description string
	Active      bool
}

// BoundMuscle is a muscle as listed through an exercise binding.
type BoundMuscle struct {
	MuscleID  int    `json:"muscle_id"`
	Name      string `json:"muscle_name"`
	GroupName string `json:"group_name"`
}

// BoundEquipment is a piece of equipment as listed through an exercise binding.
type BoundEquipment struct {
	EquipmentID int    `json:"equipment_id"`
	Name        string `json:"equipment_name"`
	GroupName   string `json:"group_name"`
}
