package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-services-backend/internal/announcement"
	annHttp "github.com/campushub/campus-services-backend/internal/announcement/http"
	"github.com/campushub/campus-services-backend/internal/auth"
	"github.com/campushub/campus-services-backend/internal/lecturer"
	lecturerHttp "github.com/campushub/campus-services-backend/internal/lecturer/http"
	"github.com/campushub/campus-services-backend/internal/maintenance"
	maintenanceHttp "github.com/campushub/campus-services-backend/internal/maintenance/http"
	"github.com/campushub/campus-services-backend/internal/notification"
	notificationHttp "github.com/campushub/campus-services-backend/internal/notification/http"
	"github.com/campushub/campus-services-backend/internal/reservation"
	reservationHttp "github.com/campushub/campus-services-backend/internal/reservation/http"
	"github.com/campushub/campus-services-backend/internal/room"
	roomHttp "github.com/campushub/campus-services-backend/internal/room/http"
	"github.com/campushub/campus-services-backend/internal/timetable"
	timetableHttp "github.com/campushub/campus-services-backend/internal/timetable/http"
	"github.com/campushub/campus-services-backend/internal/user"
	userHttp "github.com/campushub/campus-services-backend/internal/user/http"
)

// Config carries everything the router needs to assemble the API.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	RoomService         room.Service
	LecturerService     lecturer.Service
	ReservationService  reservation.Service
	NotificationService notification.Service
	MaintenanceService  maintenance.Service
	AnnouncementService announcement.Service
	TimetableService    timetable.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user has the admin role.
	adminMiddleware := RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	lecturerHandler := lecturerHttp.NewHandler(cfg.LecturerService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)
	maintenanceHandler := maintenanceHttp.NewHandler(cfg.MaintenanceService)
	announcementHandler := annHttp.NewHandler(cfg.AnnouncementService)
	timetableHandler := timetableHttp.NewHandler(cfg.TimetableService, cfg.LecturerService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		lecturerHttp.RegisterRoutes(v1, lecturerHandler, authMiddleware, adminMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
		maintenanceHttp.RegisterRoutes(v1, maintenanceHandler, authMiddleware, adminMiddleware)
		annHttp.RegisterRoutes(v1, announcementHandler, authMiddleware, adminMiddleware)
		timetableHttp.RegisterRoutes(v1, timetableHandler, authMiddleware, adminMiddleware)
	}

	return r
}
