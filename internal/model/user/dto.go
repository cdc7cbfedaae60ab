package user

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/openenergydashboard/oed-server/internal/validation"
)

const (
	// PasswordMinLength is the shortest accepted password.
	PasswordMinLength = 8

	// PasswordMaxLength is bcrypt's input limit in bytes.
	PasswordMaxLength = 72

	// EmailMaxLength follows the RFC 5321 path limit.
	EmailMaxLength = 254
)

// UserIDSchema constrains the path parameters of GET /users/:user_id.
var UserIDSchema = validation.Schema{
	Required:      []string{"user_id"},
	MaxProperties: 1,
	Fields: []validation.Field{
		{Name: "user_id", Type: validation.TypeString, Pattern: regexp.MustCompile(`^\d+$`)},
	},
}

// CreateUserSchema constrains the body of POST /users/.
var CreateUserSchema = validation.Schema{
	Required:      []string{"email", "password", "role"},
	MaxProperties: 3,
	Fields: []validation.Field{
		{Name: "email", Type: validation.TypeString, Format: validation.FormatEmail, MaxLength: EmailMaxLength},
		{Name: "password", Type: validation.TypeString, MinLength: PasswordMinLength, MaxLength: PasswordMaxLength},
		{Name: "role", Type: validation.TypeString, Enum: RoleKeys()},
	},
}

// ListUsersRequest carries no input.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

// GetUserRequest is bound from the :user_id path parameter.
type GetUserRequest struct {
	UserID string `param:"user_id"`
}

func (r *GetUserRequest) Validate() error {
	return UserIDSchema.Validate(map[string]any{"user_id": r.UserID})
}

// ID returns the parsed user id. Call only after Validate succeeded.
func (r *GetUserRequest) ID() (int64, error) {
	return strconv.ParseInt(r.UserID, 10, 64)
}

// CreateUserRequest is the JSON body of POST /users/.
//
// The raw property map is kept so the schema can see missing, extra and
// mistyped properties that a typed decode would hide.
type CreateUserRequest struct {
	Email    string
	Password string
	Role     string

	raw map[string]any
}

func (r *CreateUserRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.raw = raw
	r.Email, _ = raw["email"].(string)
	r.Password, _ = raw["password"].(string)
	r.Role, _ = raw["role"].(string)
	return nil
}

func (r *CreateUserRequest) Validate() error {
	return CreateUserSchema.Validate(r.raw)
}

// NewCreateUserRequest builds a request outside of HTTP binding (tests, seeding).
func NewCreateUserRequest(email, password, role string) *CreateUserRequest {
	return &CreateUserRequest{
		Email:    email,
		Password: password,
		Role:     role,
		raw: map[string]any{
			"email":    email,
			"password": password,
			"role":     role,
		},
	}
}
