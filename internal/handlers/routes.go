package handlers

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly/internal/auth"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Companies CompanyService
	Jobs      JobService
	Users     UserService
	Tokens    interface {
		TokenSigner
		auth.Verifier
	}
	Ping        func(ctx context.Context) error
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware and every route registered.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))
	r.Use(ErrorHandler(), auth.Authenticate(d.Tokens))

	r.GET("/health", HealthCheck(d.Ping))

	companies := NewCompanyHandler(d.Companies)
	cg := r.Group("/companies")
	{
		cg.POST("", auth.Gate(auth.Admin), companies.Create)
		cg.GET("", companies.List)
		cg.GET("/:handle", companies.Get)
		cg.PATCH("/:handle", auth.Gate(auth.Admin), companies.Update)
		cg.DELETE("/:handle", auth.Gate(auth.Admin), companies.Remove)
	}

	jobs := NewJobHandler(d.Jobs)
	jg := r.Group("/jobs")
	{
		jg.POST("", auth.Gate(auth.Admin), jobs.Create)
		jg.GET("", jobs.List)
		jg.GET("/:id", jobs.Get)
		jg.PATCH("/:id", auth.Gate(auth.Admin), jobs.Update)
		jg.DELETE("/:id", auth.Gate(auth.Admin), jobs.Remove)
	}

	users := NewUserHandler(d.Users, d.Tokens)
	ag := r.Group("/auth")
	{
		ag.POST("/token", users.Token)
		ag.POST("/register", users.Register)
	}

	subject := auth.Gate(auth.SubjectOrAdmin("username"))
	ug := r.Group("/users")
	{
		ug.POST("", auth.Gate(auth.Admin), users.Create)
		ug.GET("", auth.Gate(auth.Admin), users.List)
		ug.GET("/:username", subject, users.Get)
		ug.PATCH("/:username", subject, users.Update)
		ug.DELETE("/:username", subject, users.Remove)
		ug.POST("/:username/jobs/:id", subject, users.Apply)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	config.MaxAge = 12 * time.Hour
	return config
}
