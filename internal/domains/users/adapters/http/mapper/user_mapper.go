package mapper

import userdomain "github.com/openretail/pos-api-server/internal/domains/users/domain"

// User is the transport-level staff account payload. Password carries
// the plain password on inbound requests only and is never echoed back.
type User struct {
	ID          string `json:"id,omitempty"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Role        string `json:"role,omitempty"`
	Active      bool   `json:"active"`
}

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToDomainUser converts a transport user to its domain counterpart,
// hashing the supplied password.
func ToDomainUser(model User) (*userdomain.User, error) {
	user, err := userdomain.NewUser(model.Username, model.Password)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(model.DisplayName, model.Email, model.Phone); err != nil {
		return nil, err
	}
	user.SetRole(model.Role)
	user.Active = model.Active
	user.ID = model.ID
	return user, nil
}

// ToDomainUserUpdate converts a transport user for an update. An empty
// password keeps the stored hash, so it skips password validation.
func ToDomainUserUpdate(model User) (*userdomain.User, error) {
	user := &userdomain.User{Active: model.Active, ID: model.ID}
	if err := user.SetUsername(model.Username); err != nil {
		return nil, err
	}
	if model.Password != "" {
		if err := user.SetPassword(model.Password); err != nil {
			return nil, err
		}
	}
	if err := user.UpdateProfile(model.DisplayName, model.Email, model.Phone); err != nil {
		return nil, err
	}
	user.SetRole(model.Role)
	return user, nil
}

// FromDomainUser converts a domain user into a transport representation.
// The password hash is deliberately omitted.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		Active:      user.Active,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
