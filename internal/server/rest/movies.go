package rest

import (
	"net/http"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/gin-gonic/gin"
)

type movieRequest struct {
	Title       string `json:"title" binding:"required"`
	Director    string `json:"director" binding:"required"`
	Genre       string `json:"genre" binding:"required"`
	Year        int    `json:"year" binding:"required,gte=1888,lte=2100"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path"`
	Featured    bool   `json:"featured"`
}

func (r movieRequest) toModel(id string) *models.Movie {
	return &models.Movie{
		ID:          id,
		Title:       r.Title,
		Director:    r.Director,
		Genre:       r.Genre,
		Year:        r.Year,
		Description: r.Description,
		ImagePath:   r.ImagePath,
		Featured:    r.Featured,
	}
}

func (s *Server) listMovies(c *gin.Context) {
	list, err := s.movies.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getMovie(c *gin.Context) {
	m, err := s.movies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) createMovie(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := s.movies.Create(c.Request.Context(), req.toModel(""))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (s *Server) updateMovie(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := s.movies.Update(c.Request.Context(), req.toModel(c.Param("id")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) deleteMovie(c *gin.Context) {
	if err := s.movies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) posterURL(c *gin.Context) {
	url, err := s.movies.PosterURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (s *Server) posterUploadURL(c *gin.Context) {
	up, err := s.movies.PosterUploadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
