/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"fmt"

	"github.com/cubewise-code/tm1go/pkg/rest"
)

// UserType is the privilege class of a user
type UserType int

const (
	UserTypeUser UserType = iota
	UserTypeSecurityAdmin
	UserTypeDataAdmin
	UserTypeAdmin
	UserTypeOperationsAdmin
)

func (t UserType) String() string {
	switch t {
	case UserTypeUser:
		return "User"
	case UserTypeSecurityAdmin:
		return "SecurityAdmin"
	case UserTypeDataAdmin:
		return "DataAdmin"
	case UserTypeAdmin:
		return "Admin"
	case UserTypeOperationsAdmin:
		return "OperationsAdmin"
	default:
		return fmt.Sprintf("UserType(%d)", int(t))
	}
}

// ParseUserType parses a user type name case-insensitively
func ParseUserType(value string) (UserType, error) {
	switch NormalizeName(value) {
	case "user":
		return UserTypeUser, nil
	case "securityadmin":
		return UserTypeSecurityAdmin, nil
	case "dataadmin":
		return UserTypeDataAdmin, nil
	case "admin":
		return UserTypeAdmin, nil
	case "operationsadmin":
		return UserTypeOperationsAdmin, nil
	default:
		return 0, fmt.Errorf("invalid user type: '%s'", value)
	}
}

// User mirrors a server-side user with its group memberships
type User struct {
	Name         string
	FriendlyName string
	Password     string
	Enabled      bool
	Type         UserType
	groups       *NameSet
}

// NewUser creates an enabled user of type User
func NewUser(name string, groups ...string) *User {
	return &User{
		Name:    name,
		Enabled: true,
		Type:    UserTypeUser,
		groups:  NewNameSet(groups...),
	}
}

// Groups returns the group names of the user
func (u *User) Groups() []string {
	if u.groups == nil {
		return nil
	}
	return u.groups.Values()
}

// AddGroup registers a group membership. Adding the ADMIN group promotes the
// user type.
func (u *User) AddGroup(group string) {
	if u.groups == nil {
		u.groups = NewNameSet()
	}
	u.groups.Add(group)
	if NamesEqual(group, "ADMIN") {
		u.Type = UserTypeAdmin
	}
}

// RemoveGroup drops a group membership
func (u *User) RemoveGroup(group string) {
	if u.groups != nil {
		u.groups.Remove(group)
	}
}

// IsMemberOf reports group membership regardless of case and spacing
func (u *User) IsMemberOf(group string) bool {
	return u.groups != nil && u.groups.Contains(group)
}

// SetType assigns the user type; the Admin type implies the ADMIN group
func (u *User) SetType(userType UserType) {
	u.Type = userType
	if userType == UserTypeAdmin {
		if u.groups == nil {
			u.groups = NewNameSet()
		}
		u.groups.Add("ADMIN")
	}
}

// MarshalJSON renders the user including its group memberships
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"Name":         u.Name,
		"FriendlyName": u.FriendlyName,
		"Enabled":      u.Enabled,
		"Type":         u.Type.String(),
		"Groups":       u.Groups(),
	})
}

// Body builds the creation body with group references
func (u *User) Body() (string, error) {
	body := make(map[string]interface{})
	body["Name"] = u.Name
	if u.FriendlyName != "" {
		body["FriendlyName"] = u.FriendlyName
	}
	if u.Password != "" {
		body["Password"] = u.Password
	}
	body["Enabled"] = u.Enabled
	body["Type"] = u.Type.String()
	bindings := make([]string, 0)
	for _, group := range u.Groups() {
		bindings = append(bindings, rest.FormatURL("Groups('%s')", group))
	}
	body["Groups@odata.bind"] = bindings
	data, err := json.Marshal(body)
	return string(data), err
}

// UserFromJSON parses the expanded server representation
func UserFromJSON(data []byte) (*User, error) {
	var raw struct {
		Name         string `json:"Name"`
		FriendlyName string `json:"FriendlyName"`
		Enabled      *bool  `json:"Enabled"`
		Type         string `json:"Type"`
		Groups       []struct {
			Name string `json:"Name"`
		} `json:"Groups"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	user := NewUser(raw.Name)
	user.FriendlyName = raw.FriendlyName
	if raw.Enabled != nil {
		user.Enabled = *raw.Enabled
	}
	if raw.Type != "" {
		userType, err := ParseUserType(raw.Type)
		if err != nil {
			return nil, err
		}
		user.Type = userType
	}
	for _, group := range raw.Groups {
		user.AddGroup(group.Name)
	}
	return user, nil
}
