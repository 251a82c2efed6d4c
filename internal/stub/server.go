package stub

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ccmg/qbank-admin/internal/config"
	"github.com/ccmg/qbank-admin/internal/model"
	"github.com/ccmg/qbank-admin/internal/response"
	"github.com/ccmg/qbank-admin/internal/validator"
)

// Server serves the fixture API. It authenticates the single configured
// admin account and keeps everything else in the in-memory store.
type Server struct {
	cfg          *config.Config
	store        *Store
	log          zerolog.Logger
	passwordHash []byte
}

// New builds the fixture server. The admin password is bcrypt-hashed at
// startup so login exercises the same comparison path a real backend has.
func New(cfg *config.Config, store *Store, log zerolog.Logger) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:          cfg,
		store:        store,
		log:          log.With().Str("component", "stub").Logger(),
		passwordHash: hash,
	}, nil
}

// Router configures the Gin engine with the fixture routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(s.cfg.GinMode)
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(s.cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/auth/login", s.Login)

	authorized := api.Group("")
	authorized.Use(s.requireJWT())
	{
		authorized.GET("/courses/:courseId/questions", s.ListCourseQuestions)
		authorized.POST("/courses/:courseId/questions", s.SaveCourseQuestion)
		authorized.DELETE("/courses/:courseId/questions/:id", s.DeleteCourseQuestion)

		authorized.GET("/essays", s.ListEssays)
		authorized.POST("/essays", s.SaveEssay)

		authorized.GET("/courses/:courseId/exams", s.ListCourseExams)
		authorized.POST("/courses/:courseId/exams", s.CreateCourseExam)
		authorized.PUT("/courses/:courseId/exams/:id", s.UpdateCourseExam)
		authorized.DELETE("/courses/:courseId/exams/:id", s.DeleteCourseExam)

		authorized.GET("/essay-exams", s.ListEssayExams)
		authorized.POST("/essay-exams", s.CreateEssayExam)
		authorized.PUT("/essay-exams/:category/:id", s.UpdateEssayExam)
		authorized.DELETE("/essay-exams/:category/:id", s.DeleteEssayExam)

		authorized.GET("/users", s.ListUsers)
		authorized.GET("/users/:id", s.GetUser)
		authorized.PUT("/users/:id", s.UpdateUser)
		authorized.DELETE("/users/:id", s.DeleteUser)
	}

	return router
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates the configured admin credentials and returns a JWT plus
// the admin profile.
func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if details := validator.Bind(c, &req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, details)
		return
	}

	if req.Username != s.cfg.AdminUsername ||
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)) != nil {
		s.log.Warn().Str("username", req.Username).Msg("login rejected")
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.log.Error().Err(err).Msg("token signing failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": signed,
		"user": model.User{
			ID:       "admin",
			UserName: req.Username,
			IsActive: true,
		},
	})
}

func (s *Server) requireJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == header {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		_, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenExpired)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Next()
	}
}

func (s *Server) courseCategory(c *gin.Context) (model.Category, bool) {
	category, ok := s.store.CategoryForCourse(c.Param("courseId"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownCourse)
		return "", false
	}
	return category, true
}
