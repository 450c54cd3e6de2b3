package http

import (
	"github.com/gin-gonic/gin"

	"github.com/openretail/pos-api-server/internal/domains/users/adapters/http/mapper"
	"github.com/openretail/pos-api-server/internal/domains/users/ports"
)

// UsersAPI serves the staff account endpoints.
type UsersAPI struct {
	service ports.Service
}

// NewUsersAPI wires the user endpoints.
func NewUsersAPI(service ports.Service) *UsersAPI {
	return &UsersAPI{service: service}
}

// CreateUser registers a staff account.
func (a *UsersAPI) CreateUser(c *gin.Context) {
	var payload mapper.User
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, "invalid user payload: "+err.Error())
		return
	}
	user, err := mapper.ToDomainUser(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := a.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromDomainUser(created), "user created")
}

// GetUser fetches a staff account by username.
func (a *UsersAPI) GetUser(c *gin.Context) {
	user, err := a.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainUser(user), "")
}

// ListUsers returns all staff accounts.
func (a *UsersAPI) ListUsers(c *gin.Context) {
	users, err := a.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, mapper.FromDomainUsers(users), int64(len(users)))
}

// UpdateUser replaces a staff account. An empty password keeps the
// stored credentials.
func (a *UsersAPI) UpdateUser(c *gin.Context) {
	var payload mapper.User
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, "invalid user payload: "+err.Error())
		return
	}
	payload.Username = c.Param("username")
	user, err := mapper.ToDomainUserUpdate(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	updated, err := a.service.Update(c.Request.Context(), payload.Username, user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainUser(updated), "user updated")
}

// DeleteUser removes a staff account.
func (a *UsersAPI) DeleteUser(c *gin.Context) {
	if err := a.service.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "user deleted")
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates credentials and returns a session token.
func (a *UsersAPI) Login(c *gin.Context) {
	var creds mapper.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		responder.BadRequest(c, "invalid credentials payload: "+err.Error())
		return
	}
	token, err := a.service.Login(c.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, loginResponse{Token: token}, "login successful")
}

// Logout invalidates the user's session.
func (a *UsersAPI) Logout(c *gin.Context) {
	a.service.Logout(c.Request.Context(), c.Param("username"))
	respondOK(c, nil, "logged out")
}
