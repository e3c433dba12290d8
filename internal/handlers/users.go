package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/auth"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

// UserService is what the user and auth routes need from the store.
type UserService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, req *dtos.UserRegisterRequest, isAdmin bool) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, fields sqlgen.Fields) (*models.User, error)
	Remove(ctx context.Context, username string) error
	ApplyToJob(ctx context.Context, username string, jobID int) error
}

// TokenSigner issues bearer tokens.
type TokenSigner interface {
	Sign(username string, isAdmin bool) (string, error)
}

type UserHandler struct {
	Users  UserService
	Tokens TokenSigner
}

func NewUserHandler(u UserService, t TokenSigner) *UserHandler {
	return &UserHandler{Users: u, Tokens: t}
}

// Token is POST /auth/token, it exchanges credentials for a token.
func (h *UserHandler) Token(c *gin.Context) {
	var req dtos.UserAuthRequest
	if !decodeBody(c, &req) {
		return
	}
	user, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respondToken(c, http.StatusOK, user, false)
}

// Register is POST /auth/register. Self-registered users are never admins.
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.UserRegisterRequest
	if !decodeBody(c, &req) {
		return
	}
	user, err := h.Users.Register(c.Request.Context(), &req, false)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respondToken(c, http.StatusCreated, user, false)
}

// Create is the admin-only POST /users, it may create another admin.
func (h *UserHandler) Create(c *gin.Context) {
	var req dtos.UserCreationRequest
	if !decodeBody(c, &req) {
		return
	}
	user, err := h.Users.Register(c.Request.Context(), &req.UserRegisterRequest, req.IsAdmin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respondToken(c, http.StatusCreated, user, true)
}

func (h *UserHandler) respondToken(c *gin.Context, status int, user *models.User, withUser bool) {
	token, err := h.Tokens.Sign(user.Username, user.IsAdmin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if withUser {
		c.JSON(status, gin.H{"user": user, "token": token})
		return
	}
	c.JSON(status, gin.H{"token": token})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dtos.NewUserDetail(user)})
}

// Update is PATCH /users/:username. Only an admin may change isAdmin.
func (h *UserHandler) Update(c *gin.Context) {
	var req dtos.UserUpdateRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}
	if fields.Has("isAdmin") && !auth.IdentityFrom(c).IsAdmin() {
		c.Status(http.StatusUnauthorized)
		_ = c.Error(apperr.ErrUnauthorized)
		return
	}
	user, err := h.Users.Update(c.Request.Context(), c.Param("username"), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Remove(c *gin.Context) {
	username := c.Param("username")
	if err := h.Users.Remove(c.Request.Context(), username); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": username})
}

// Apply is POST /users/:username/jobs/:id
func (h *UserHandler) Apply(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	if err := h.Users.ApplyToJob(c.Request.Context(), c.Param("username"), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": id})
}
