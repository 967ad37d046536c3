package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// Password length is checked in bytes by the hasher, not here.
type registerRequest struct {
	UserName string `json:"username" binding:"required,min=5,alphanum"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Birthday string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
}

type updateUserRequest struct {
	UserName *string `json:"username" binding:"omitempty,min=5,alphanum"`
	Password *string `json:"password" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Birthday *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
}

type loginResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

func parseBirthday(s string) *time.Time {
	if s == "" {
		return nil
	}
	// already checked by the binding
	t, _ := time.Parse(models.DateLayout, s)
	return &t
}

func (s *Server) login(c *gin.Context) {
	user := principal(c)

	token, err := s.auth.IssueToken(user)
	if err != nil {
		abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, loginResponse{User: user.Public(), Token: token})
}

func (s *Server) registerUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := s.users.Register(c.Request.Context(), services.Registration{
		UserName: req.UserName,
		Password: req.Password,
		Email:    req.Email,
		Birthday: parseBirthday(req.Birthday),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.Public())
}

func (s *Server) listUsers(c *gin.Context) {
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(list, func(u *models.User, _ int) models.PublicUser { return u.Public() }))
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (s *Server) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	upd := services.ProfileUpdate{
		UserName: req.UserName,
		Password: req.Password,
		Email:    req.Email,
	}
	if req.Birthday != nil {
		upd.Birthday = parseBirthday(*req.Birthday)
	}

	user, err := s.users.Update(c.Request.Context(), principal(c), upd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (s *Server) deleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), principal(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": c.Param("username") + " was deleted"})
}

func (s *Server) addFavorite(c *gin.Context) {
	user, err := s.users.AddFavorite(c.Request.Context(), principal(c), c.Param("movieID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (s *Server) removeFavorite(c *gin.Context) {
	user, err := s.users.RemoveFavorite(c.Request.Context(), principal(c), c.Param("movieID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
