package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registration struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
	Priority  string `json:"priority" validate:"omitempty,oneof=1 2 3 4"`
}

func TestStruct(t *testing.T) {
	valid := registration{
		FirstName: "Jane",
		Email:     "jane@example.com",
		Password:  "longenough",
		Password2: "longenough",
		Priority:  "2",
	}

	tests := []struct {
		name       string
		mutate     func(r *registration)
		wantFields map[string]string
	}{
		{name: "valid", mutate: func(r *registration) {}},
		{
			name:       "missing first name",
			mutate:     func(r *registration) { r.FirstName = "" },
			wantFields: map[string]string{"first_name": "This field is required."},
		},
		{
			name:       "bad email",
			mutate:     func(r *registration) { r.Email = "not-an-email" },
			wantFields: map[string]string{"email": "Enter a valid email address."},
		},
		{
			name: "short password",
			mutate: func(r *registration) {
				r.Password = "short"
				r.Password2 = "short"
			},
			wantFields: map[string]string{"password": "Ensure this value has at least 8 characters."},
		},
		{
			name:       "password mismatch",
			mutate:     func(r *registration) { r.Password2 = "different1" },
			wantFields: map[string]string{"password2": "The two password fields didn't match."},
		},
		{
			name:       "bad priority",
			mutate:     func(r *registration) { r.Priority = "9" },
			wantFields: map[string]string{"priority": "Select a valid choice."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)

			errs := Struct(r)
			if tt.wantFields == nil {
				assert.False(t, errs.HasErrors())
				assert.NoError(t, errs.Err())
				return
			}
			require.Len(t, errs, len(tt.wantFields))
			for field, msg := range tt.wantFields {
				assert.Equal(t, []string{msg}, errs[field])
			}
		})
	}
}

func TestAs(t *testing.T) {
	errs := Errors{}
	errs.Add("email", "Invitation with this email already exists.")

	wrapped := fmt.Errorf("create invitation: %w", errs.Err())
	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{"Invitation with this email already exists."}, got["email"])

	_, ok = As(errors.New("boom"))
	assert.False(t, ok)
}

func TestErrorsError(t *testing.T) {
	errs := Errors{}
	errs.Add("name", "This field is required.")
	errs.Add("deadline", "Deadline cannot be in the past.")

	assert.Equal(t,
		"validation failed: deadline: Deadline cannot be in the past., name: This field is required.",
		errs.Error())
}
