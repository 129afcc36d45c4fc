package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	DB           *gorm.DB
	Reservations *services.ReservationService
	Tables       *services.TableService
	Hub          *floor.Hub
	Tokens       *utils.TokenIssuer
	CORSOrigin   string
	RateLimiter  *middlewares.RateLimiter
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.RateLimit())
	}

	reservationCtrl := controllers.NewReservationController(deps.Reservations)
	tableCtrl := controllers.NewTableController(deps.Tables)
	userCtrl := controllers.NewUserController(deps.DB, deps.Tokens)
	reportCtrl := controllers.NewReportController(deps.Reservations, deps.Tables)
	floorCtrl := controllers.NewFloorController(deps.Hub, deps.CORSOrigin)

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, utils.NotFound("Path not found: %s", c.Request.URL.Path))
	})
	r.NoMethod(func(c *gin.Context) {
		utils.RespondError(c, utils.NewAppError(http.StatusMethodNotAllowed, "%s not allowed for %s", c.Request.Method, c.Request.URL.Path))
	})
	r.HandleMethodNotAllowed = true

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	reservations := r.Group("/reservations")
	{
		reservations.POST("", reservationCtrl.CreateReservation)
		reservations.GET("", reservationCtrl.ListReservations)
		reservations.GET("/:reservation_id", reservationCtrl.GetReservation)
		reservations.PUT("/:reservation_id", reservationCtrl.UpdateReservation)
		reservations.PUT("/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
	}

	tables := r.Group("/tables")
	{
		tables.POST("", tableCtrl.CreateTable)
		tables.GET("", tableCtrl.GetAllTables)
		tables.GET("/:table_id", tableCtrl.GetTableByID)
		tables.PUT("/:table_id/seat", tableCtrl.SeatTable)
		tables.DELETE("/:table_id/seat", tableCtrl.FinishTable)
	}

	// login gets its own, stricter bucket: 5 attempts a minute per IP
	loginLimiter := middlewares.NewRateLimiter(5.0/60, 5)
	r.POST("/login", loginLimiter.RateLimit(), userCtrl.Login)

	// Floor screens pass the token as ?token=
	r.GET("/ws/floor", middlewares.WebSocketAuthMiddleware(deps.Tokens), floorCtrl.FloorFeed)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware(deps.Tokens))
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.POST("/users", middlewares.RequireRole(models.RoleAdmin), userCtrl.CreateUser)
		auth.GET("/reservations/sheet", reportCtrl.DaySheet)
	}

	return r
}
