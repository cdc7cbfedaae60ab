package user

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of user roles.
type Role int

const (
	RoleAdmin Role = iota
	RoleObvius
	RoleCSV

	numRoles
)

// roleNames maps each Role to its request/response key and its value in the
// database's user_type enum. The store column must match the users migration.
var roleNames = [...]struct {
	key   string
	store string
}{
	RoleAdmin:  {key: "ADMIN", store: "admin"},
	RoleObvius: {key: "OBVIUS", store: "obvius"},
	RoleCSV:    {key: "CSV", store: "csv"},
}

// Compile-time check that roleNames covers every Role.
func _() {
	var x [1]struct{}
	_ = x[len(roleNames)-int(numRoles)]
}

// Roles returns every role in declaration order.
func Roles() []Role {
	roles := make([]Role, 0, numRoles)
	for r := Role(0); r < numRoles; r++ {
		roles = append(roles, r)
	}
	return roles
}

// RoleKeys returns the accepted request keys ("ADMIN", "OBVIUS", "CSV").
func RoleKeys() []string {
	keys := make([]string, 0, numRoles)
	for _, r := range Roles() {
		keys = append(keys, r.Key())
	}
	return keys
}

func (r Role) valid() bool {
	return r >= 0 && r < numRoles
}

// Key returns the role's API key, e.g. "ADMIN".
func (r Role) Key() string {
	if !r.valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r].key
}

// StoreValue returns the role's database representation, e.g. "admin".
func (r Role) StoreValue() string {
	if !r.valid() {
		return ""
	}
	return roleNames[r].store
}

func (r Role) String() string {
	return r.Key()
}

// ParseRoleKey looks up a role by its API key.
func ParseRoleKey(key string) (Role, error) {
	for _, r := range Roles() {
		if roleNames[r].key == key {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role key %q", key)
}

// ParseStoreValue looks up a role by its database value.
func ParseStoreValue(value string) (Role, error) {
	for _, r := range Roles() {
		if roleNames[r].store == value {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role value %q", value)
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return json.Marshal(r.Key())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	parsed, err := ParseRoleKey(key)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
