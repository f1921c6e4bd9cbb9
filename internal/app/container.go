package app

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campus-services-backend/internal/announcement"
	"github.com/campushub/campus-services-backend/internal/api"
	"github.com/campushub/campus-services-backend/internal/auth"
	"github.com/campushub/campus-services-backend/internal/events"
	"github.com/campushub/campus-services-backend/internal/lecturer"
	"github.com/campushub/campus-services-backend/internal/maintenance"
	"github.com/campushub/campus-services-backend/internal/notification"
	"github.com/campushub/campus-services-backend/internal/pkg/storage"
	"github.com/campushub/campus-services-backend/internal/reservation"
	"github.com/campushub/campus-services-backend/internal/room"
	"github.com/campushub/campus-services-backend/internal/timetable"
	"github.com/campushub/campus-services-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string
	AMQPURL      string
	EventQueue   string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	eventPublisher *events.Publisher
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo)

	// Lecturer Module
	lecturerRepo := lecturer.NewPgxRepository(cfg.DBPool)
	lecturerService := lecturer.NewService(lecturerRepo)

	// Notification Module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo)

	// Reservation Module
	directory := reservation.NewDirectory(roomService, lecturerService)
	notifiers := []reservation.Notifier{
		notification.NewReservationNotifier(notificationService, lecturerService),
	}

	// The event queue is optional; without AMQP_URL only in-app
	// notifications are produced.
	var eventPublisher *events.Publisher
	if cfg.AMQPURL != "" {
		eventPublisher, err = events.NewPublisher(cfg.AMQPURL, cfg.EventQueue)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, eventPublisher)
	} else {
		log.Println("AMQP_URL not set, reservation events will not be published")
	}

	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, directory, notifiers...)

	// Maintenance Module
	maintenanceRepo := maintenance.NewPgxRepository(cfg.DBPool)
	maintenanceService := maintenance.NewService(maintenanceRepo, roomService, notificationService, store)

	// Announcement Module
	annRepo := announcement.NewPgxRepository(cfg.DBPool)
	annService := announcement.NewService(annRepo)

	// Timetable Module
	timetableRepo := timetable.NewPgxRepository(cfg.DBPool)
	timetableService := timetable.NewService(timetableRepo, roomService, lecturerService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		RoomService:         roomService,
		LecturerService:     lecturerService,
		ReservationService:  reservationService,
		NotificationService: notificationService,
		MaintenanceService:  maintenanceService,
		AnnouncementService: annService,
		TimetableService:    timetableService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		eventPublisher: eventPublisher,
	}, nil
}

// Close releases long-lived resources held by the container.
func (c *Container) Close() {
	if c.eventPublisher != nil {
		if err := c.eventPublisher.Close(); err != nil {
			log.Printf("failed to close event publisher: %v", err)
		}
	}
}
