package store

import (
	"encoding/json"
	"fmt"
)

// Owner tells whether a catalog row is a shared default (stored as a NULL
// user_id) or private to exactly one user.
type Owner struct {
	userID int
	owned  bool
}

func SharedDefault() Owner {
	return Owner{}
}

func OwnedBy(userID int) Owner {
	return Owner{userID: userID, owned: true}
}

// OwnerFromNullable decodes the nullable user_id column.
func OwnerFromNullable(userID *int) Owner {
	if userID == nil {
		return SharedDefault()
	}
	return OwnedBy(*userID)
}

func (o Owner) IsSharedDefault() bool {
	return !o.owned
}

// UserID returns the owning user, ok is false for shared defaults.
func (o Owner) UserID() (id int, ok bool) {
	return o.userID, o.owned
}

// Nullable is the storage encoding of the owner.
func (o Owner) Nullable() *int {
	if !o.owned {
		return nil
	}
	id := o.userID
	return &id
}

func (o Owner) String() string {
	if !o.owned {
		return "shared-default"
	}
	return fmt.Sprintf("user:%d", o.userID)
}

func (o Owner) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Nullable())
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	var userID *int
	if err := json.Unmarshal(data, &userID); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	*o = OwnerFromNullable(userID)
	return nil
}
