package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UserType selects which identity variant a user carries.
type UserType string

const (
	UserTypeIndividual   UserType = "individual"
	UserTypeOrganization UserType = "organization"
)

// ErrInvalidRecord is returned when a user lacks the fields its variant needs.
var ErrInvalidRecord = errors.New("invalid user record")

// Identity is the displayable part of a user. It is sealed: the only
// implementations are Individual and Organization.
type Identity interface {
	Type() UserType
	sealed()
}

// Individual is a person. Username wins over first/last name when set.
type Individual struct {
	Username  string
	FirstName string
	LastName  string
}

func (Individual) Type() UserType { return UserTypeIndividual }
func (Individual) sealed()        {}

// Organization is a company account displayed by its company name.
type Organization struct {
	CompanyName string
}

func (Organization) Type() UserType { return UserTypeOrganization }
func (Organization) sealed()        {}

// User is the aggregate root for the people side of the gallery.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        string
	Email     string
	Password  string
	Identity  Identity
	Phone     string
	Following IDSet
	Followers IDSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Type returns the variant tag, or "" for a user without identity.
func (u *User) Type() UserType {
	if u == nil || u.Identity == nil {
		return ""
	}
	return u.Identity.Type()
}

// DisplayName derives the human-facing name of u.
func DisplayName(u *User) (string, error) {
	if u == nil {
		return "", fmt.Errorf("%w: nil user", ErrInvalidRecord)
	}
	switch id := u.Identity.(type) {
	case Individual:
		if name := strings.TrimSpace(id.Username); name != "" {
			return name, nil
		}
		first, last := strings.TrimSpace(id.FirstName), strings.TrimSpace(id.LastName)
		if first == "" || last == "" {
			return "", fmt.Errorf("%w: individual %s has no username and an incomplete name", ErrInvalidRecord, u.ID)
		}
		return first + " " + last, nil
	case Organization:
		name := strings.TrimSpace(id.CompanyName)
		if name == "" {
			return "", fmt.Errorf("%w: organization %s has no company name", ErrInvalidRecord, u.ID)
		}
		return name, nil
	case nil:
		return "", fmt.Errorf("%w: user %s has no identity", ErrInvalidRecord, u.ID)
	default:
		return "", fmt.Errorf("%w: user %s has unknown identity %T", ErrInvalidRecord, u.ID, id)
	}
}
