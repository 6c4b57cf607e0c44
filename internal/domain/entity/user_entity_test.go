package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name    string
		user    *User
		want    string
		wantErr bool
	}{
		{"username wins", &User{Identity: Individual{Username: "alice", FirstName: "Alice", LastName: "Smith"}}, "alice", false},
		{"first and last", &User{Identity: Individual{FirstName: "Alice", LastName: "Smith"}}, "Alice Smith", false},
		{"blank username falls back", &User{Identity: Individual{Username: "  ", FirstName: "Alice", LastName: "Smith"}}, "Alice Smith", false},
		{"missing last name", &User{Identity: Individual{FirstName: "Alice"}}, "", true},
		{"organization", &User{Identity: Organization{CompanyName: "Acme"}}, "Acme", false},
		{"organization without name", &User{Identity: Organization{}}, "", true},
		{"no identity", &User{}, "", true},
		{"nil user", nil, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DisplayName(tc.user)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUserType(t *testing.T) {
	assert.Equal(t, UserTypeIndividual, (&User{Identity: Individual{}}).Type())
	assert.Equal(t, UserTypeOrganization, (&User{Identity: Organization{}}).Type())
	assert.Equal(t, UserType(""), (&User{}).Type())
}
