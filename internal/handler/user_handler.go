package handler

import (
	"net/http"

	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/users"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// CredentialsInput is the body of register and login.
type CredentialsInput struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RoleInput changes a user's role.
type RoleInput struct {
	Role models.Role `json:"role" binding:"required" example:"gameadder"`
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	Avatar    string `json:"avatar"`
	AvatarURL string `json:"avatarUrl" example:"/uploads/3f2a.png"`
	Banner    string `json:"banner"`
	Bio       string `json:"bio"`
	Theme     string `json:"theme" example:"dark"`
}

// endregion

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates a basic user and returns it with a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body CredentialsInput true "Registration Info"
// @Success      201  {object}  users.Session
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username already exists"
// @Failure      429  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var input CredentialsInput
	if !bindJSON(c, &input) {
		return
	}

	sess, err := h.Users.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user and returns a new session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body CredentialsInput true "Login Info"
// @Success      200  {object}  users.Session
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      429  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input CredentialsInput
	if !bindJSON(c, &input) {
		return
	}

	sess, err := h.Users.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the bearer token used for this request.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Users.Logout(c.Request.Context(), auth.BearerToken(c)); err != nil {
		respondError(c, "logout", err)
		return
	}
	c.JSON(http.StatusOK, success)
}

// GetMe godoc
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.PublicUser
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	me, err := h.Users.Me(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, "get me", err)
		return
	}
	c.JSON(http.StatusOK, me)
}

// endregion

// region --- User Handlers ---

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.PublicUser
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Insufficient permissions"
// @Router       /users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	list, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateUserRole godoc
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int        true  "User ID"
// @Param        input body  RoleInput  true  "New role"
// @Success      200  {object}  models.PublicUser
// @Failure      400  {object}  ErrorResponse "Invalid role"
// @Failure      403  {object}  ErrorResponse "Insufficient permissions"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/{id}/role [put]
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input RoleInput
	if !bindJSON(c, &input) {
		return
	}

	u, err := h.Users.SetRole(c.Request.Context(), id, input.Role)
	if err != nil {
		respondError(c, "update role", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  SuccessResponse
// @Failure      403  {object}  ErrorResponse "Insufficient permissions"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, success)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "User ID"
// @Param        input body  ProfileInput  true  "Profile fields"
// @Success      200  {object}  models.PublicUser
// @Failure      403  {object}  ErrorResponse "Can only update your own profile"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/{id}/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input ProfileInput
	if !bindJSON(c, &input) {
		return
	}

	u, err := h.Users.UpdateProfile(c.Request.Context(), caller(c), id, users.Profile{
		Avatar:    input.Avatar,
		AvatarURL: input.AvatarURL,
		Banner:    input.Banner,
		Bio:       input.Bio,
		Theme:     input.Theme,
	})
	if err != nil {
		respondError(c, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// endregion
