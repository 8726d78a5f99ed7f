package bootstrap

import (
	"log"
	"time"

	"teamchat-be/internal/config"
	"teamchat-be/internal/controller"
	"teamchat-be/internal/pkg/logger"
	"teamchat-be/internal/pkg/serverutils"
	"teamchat-be/internal/repository/memory"
	"teamchat-be/internal/repository/unitofwork"
	"teamchat-be/internal/service"
	"teamchat-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// auditTopic carries every domain event to the audit trail consumer.
const auditTopic = "chat.audit"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	RoomController    controller.IRoomController
	MessageController controller.IMessageController

	// Middleware shared by the protected route groups
	AuthMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger("logs/audit.log")

	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize file storage: %v", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Services
	contactCache := memory.NewContactCache()

	publisherService := service.NewPublisherService(auditTopic, pubSub)
	auditService := service.NewAuditService(pubSub, auditTopic, auditLogger)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	authService := service.NewAuthService(uowFactory, publisherService, contactCache, cfg.Auth.JWTSecret, tokenTTL)
	userService := service.NewUserService(uowFactory, contactCache)
	roomService := service.NewRoomService(uowFactory, publisherService, contactCache, cfg.App.BaseURL)
	messageService := service.NewMessageService(uowFactory, fileStore, publisherService, cfg.App.BaseURL)

	sysLogger.Info("bootstrap", "dependency container initialized", map[string]interface{}{
		"upload_dir": cfg.Storage.UploadDir,
	})

	// 4. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		UserController:    controller.NewUserController(userService),
		RoomController:    controller.NewRoomController(roomService),
		MessageController: controller.NewMessageController(messageService),

		AuthMiddleware: serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret),

		AuditService: auditService,
	}
}
