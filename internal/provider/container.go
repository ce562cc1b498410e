package provider

import (
	"github.com/landdesk/internal/authz"
	"github.com/landdesk/internal/cache"
	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/queue"
	"github.com/landdesk/internal/repository"
	"github.com/landdesk/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	DealRepo     repository.DealRepository
	PaymentRepo  repository.PaymentRepository
	PartyRepo    repository.PaymentPartyRepository
	ProofRepo    repository.PaymentProofRepository
	OwnerRepo    repository.OwnerRepository
	InvestorRepo repository.InvestorRepository
	BuyerRepo    repository.BuyerRepository
	ExpenseRepo  repository.ExpenseRepository
	DocumentRepo repository.DocumentRepository
	ReminderRepo repository.PaymentReminderRepository
	ActivityRepo repository.ActivityLogRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	UserService        *service.UserService
	UploadService      *service.UploadService
	PaymentService     *service.PaymentService
	LedgerService      *service.LedgerService
	DealService        *service.DealService
	ParticipantService *service.ParticipantService
	DocumentService    *service.DocumentService
	ReminderService    *service.ReminderService
	ActivityService    *service.ActivityService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.DealRepo = repository.NewDealRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.PartyRepo = repository.NewPaymentPartyRepository(db)
	c.ProofRepo = repository.NewPaymentProofRepository(db)
	c.OwnerRepo = repository.NewOwnerRepository(db)
	c.InvestorRepo = repository.NewInvestorRepository(db)
	c.BuyerRepo = repository.NewBuyerRepository(db)
	c.ExpenseRepo = repository.NewExpenseRepository(db)
	c.DocumentRepo = repository.NewDocumentRepository(db)
	c.ReminderRepo = repository.NewPaymentReminderRepository(db)
	c.ActivityRepo = repository.NewActivityLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.UploadService = service.NewUploadService(c.Config)
	c.PaymentService = service.NewPaymentService(c.Config, c.PaymentRepo, c.PartyRepo, c.ProofRepo, c.DealRepo, c.UploadService)
	c.LedgerService = service.NewLedgerService(c.Config, c.PaymentRepo, c.PartyRepo, c.DealRepo, c.OwnerRepo, c.InvestorRepo, c.BuyerRepo, c.UserRepo)
	c.DealService = service.NewDealService(c.Config, c.DealRepo, c.PaymentRepo, c.PartyRepo, c.ProofRepo, c.OwnerRepo, c.InvestorRepo, c.BuyerRepo, c.ExpenseRepo, c.DocumentRepo, c.ReminderRepo)
	c.ParticipantService = service.NewParticipantService(c.DealRepo, c.OwnerRepo, c.InvestorRepo, c.BuyerRepo, c.PaymentRepo)
	c.DocumentService = service.NewDocumentService(c.Config, c.DealRepo, c.OwnerRepo, c.InvestorRepo, c.DocumentRepo, c.UploadService)
	c.ReminderService = service.NewReminderService(c.DealRepo, c.PaymentRepo, c.ReminderRepo)
	c.ActivityService = service.NewActivityService(c.ActivityRepo)
}
