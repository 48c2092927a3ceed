package wire

import (
	"Evergreen/internal/api"
	"Evergreen/internal/api/config"
	"Evergreen/internal/api/handler"
	"Evergreen/internal/job"
	"Evergreen/internal/pkg/cron"
	"Evergreen/internal/pkg/es"
	"Evergreen/internal/pkg/kafka"
	mongodb "Evergreen/internal/pkg/mongo"
	"Evergreen/internal/pkg/redis"
	"Evergreen/internal/pkg/security"
	"Evergreen/internal/repository"
	"Evergreen/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	Producer     *kafka.NotificationProducer
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	convRepo := repository.NewConversationRepo(db)
	msgRepo := mongodb.NewMessageRepo(mongoDB)
	notifRepo := mongodb.NewNotificationRepo(mongoDB)
	presenceRepo := mongodb.NewPresenceRepo(mongoDB)
	esUserRepo := es.NewUserRepo()

	publisher := service.PublisherFunc(redis.Publish)
	liveness := redis.NewLivenessStore(time.Duration(cfg.Presence.TTLSeconds) * time.Second)
	verifier := security.NewGoogleVerifier()

	producer, err := kafka.NewNotificationProducer(cfg)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo, esUserRepo, verifier)
	chatService := service.NewChatService(convRepo, msgRepo, userRepo, producer, publisher)
	notificationService := service.NewNotificationService(notifRepo, publisher)
	presenceService := service.NewPresenceService(presenceRepo, liveness, publisher)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService, presenceService),
		ChatHandler:         handler.NewChatHandler(chatService),
		WsHandler:           handler.NewWsHandler(chatService, userService, presenceService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		PresenceHandler:     handler.NewPresenceHandler(presenceService),
		MediaHandler:        handler.NewMediaHandler(userService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, notificationService)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewPresenceSweepJob(presenceService))

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		Producer:     producer,
		CronMgr:      cronMgr,
	}, nil
}
