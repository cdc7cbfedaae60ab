package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleTables(t *testing.T) {
	tests := []struct {
		role  Role
		key   string
		store string
	}{
		{RoleAdmin, "ADMIN", "admin"},
		{RoleObvius, "OBVIUS", "obvius"},
		{RoleCSV, "CSV", "csv"},
	}

	require.Len(t, Roles(), len(tests))
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.role.Key())
			assert.Equal(t, tt.store, tt.role.StoreValue())

			byKey, err := ParseRoleKey(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.role, byKey)

			byStore, err := ParseStoreValue(tt.store)
			require.NoError(t, err)
			assert.Equal(t, tt.role, byStore)
		})
	}
}

func TestRoleKeys(t *testing.T) {
	assert.Equal(t, []string{"ADMIN", "OBVIUS", "CSV"}, RoleKeys())
}

func TestParseRole_Unknown(t *testing.T) {
	_, err := ParseRoleKey("admin")
	assert.Error(t, err, "keys are case sensitive")

	_, err = ParseStoreValue("ADMIN")
	assert.Error(t, err)
}

func TestRole_Invalid(t *testing.T) {
	r := Role(42)
	assert.Equal(t, "Role(42)", r.String())
	assert.Empty(t, r.StoreValue())

	_, err := json.Marshal(r)
	assert.Error(t, err)
}

func TestRole_JSON(t *testing.T) {
	data, err := json.Marshal(RoleObvius)
	require.NoError(t, err)
	assert.JSONEq(t, `"OBVIUS"`, string(data))

	var r Role
	require.NoError(t, json.Unmarshal([]byte(`"CSV"`), &r))
	assert.Equal(t, RoleCSV, r)

	assert.Error(t, json.Unmarshal([]byte(`"csv"`), &r))
	assert.Error(t, json.Unmarshal([]byte(`1`), &r))
}

func TestUser_Public(t *testing.T) {
	u := User{ID: 7, Email: "a@b.io", PasswordHash: "$2a$10$secret", Role: RoleAdmin}

	data, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"email":"a@b.io","role":"ADMIN"}`, string(data))

	data, err = json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}

func TestPublicUsers_Empty(t *testing.T) {
	data, err := json.Marshal(PublicUsers(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
