package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// routes builds the route table. Each protected route gets its gate here,
// so the choice of authenticator is fixed at startup.
func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	credentialGate := Gate(s.auth.Credentials())
	tokenGate := Gate(s.auth.Tokens())
	owner := OwnershipGuard("username")

	r.GET("/", s.welcome)
	r.GET("/health", s.health)
	if s.staticDir != "" {
		r.Static("/static", s.staticDir)
	}

	r.POST("/login", credentialGate, s.login)
	r.POST("/users", s.registerUser)

	users := r.Group("/users", tokenGate)
	{
		users.GET("", s.listUsers)
		users.GET("/:username", s.getUser)
		users.PUT("/:username", owner, s.updateUser)
		users.DELETE("/:username", owner, s.deleteUser)
		users.POST("/:username/movies/:movieID", owner, s.addFavorite)
		users.DELETE("/:username/movies/:movieID", owner, s.removeFavorite)
	}

	movies := r.Group("/movies", tokenGate)
	{
		movies.GET("", s.listMovies)
		movies.GET("/:id", s.getMovie)
		movies.POST("", s.createMovie)
		movies.PUT("/:id", s.updateMovie)
		movies.DELETE("/:id", s.deleteMovie)
		movies.GET("/:id/poster", s.posterURL)
		movies.POST("/:id/poster", s.posterUploadURL)
	}

	return r
}

func (s *Server) welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the movie API!")
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
