package catalog

import (
	"github.com/lcsouza2/fittude-data-repo/internal/db"
	"github.com/lcsouza2/fittude-data-repo/internal/store"
)

// Group is a muscle group. Muscles and equipment are filed under one.
type Group struct {
	Name   string      `json:"group_name"`
	Owner  store.Owner `json:"user_id"`
	Active bool        `json:"active"`
}

type Muscle struct {
	ID        int         `json:"muscle_id"`
	Owner     store.Owner `json:"user_id"`
	GroupName string      `json:"group_name"`
	Name      string      `json:"muscle_name"`
	Active    bool        `json:"active"`
}

type Equipment struct {
	ID        int         `json:"equipment_id"`
	Owner     store.Owner `json:"user_id"`
	GroupName string      `json:"group_name"`
	Name      string      `json:"equipment_name"`
	Active    bool        `json:"active"`
}

type CreateGroupParams struct {
	Owner  store.Owner
	Name   string
	Active bool
}

// CreateItemParams creates a muscle or a piece of equipment.
type CreateItemParams struct {
	Owner     store.Owner
	GroupName string
	Name      string
	Active    bool
}

// UpdateItemParams rewrites the mutable fields of a muscle or a piece of
// equipment owned by OwnerID.
type UpdateItemParams struct {
	ID        int
	OwnerID   int
	GroupName string
	Name      string
	Active    bool
}

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}
