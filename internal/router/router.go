package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/landdesk/internal/authz"
	"github.com/landdesk/internal/cache"
	"github.com/landdesk/internal/config"
	apihandlers "github.com/landdesk/internal/http/handlers/api"
	publichandlers "github.com/landdesk/internal/http/handlers/public"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	apiHandler := apihandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ld"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 上传文件静态服务
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")
	{
		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
			auth.POST("/register", publicHandler.Register)
		}

		// 业务接口（需鉴权）
		authorized := api.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			authorized.GET("/auth/me", apiHandler.Me)
			authorized.POST("/auth/change-password", apiHandler.ChangePassword)

			// 交易
			authorized.GET("/deals", apiHandler.ListDeals)
			authorized.POST("/deals", apiHandler.CreateDeal)
			authorized.GET("/deals/stats", apiHandler.DealStats)
			authorized.GET("/deals/:deal_id", apiHandler.GetDeal)
			authorized.PUT("/deals/:deal_id", apiHandler.UpdateDeal)
			authorized.DELETE("/deals/:deal_id", apiHandler.DeleteDeal)
			authorized.GET("/deals/:deal_id/financials", apiHandler.DealFinancials)

			// 支出
			authorized.POST("/deals/:deal_id/expenses", apiHandler.CreateExpense)
			authorized.GET("/deals/:deal_id/expenses", apiHandler.ListExpenses)
			authorized.DELETE("/deals/:deal_id/expenses/:expense_id", apiHandler.DeleteExpense)

			// 参与方
			authorized.POST("/deals/:deal_id/owners", apiHandler.CreateOwner)
			authorized.GET("/deals/:deal_id/owners", apiHandler.ListOwners)
			authorized.PUT("/deals/:deal_id/owners/:owner_id", apiHandler.UpdateOwner)
			authorized.DELETE("/deals/:deal_id/owners/:owner_id", apiHandler.DeleteOwner)
			authorized.PUT("/deals/:deal_id/owners/:owner_id/star", apiHandler.StarOwner)
			authorized.POST("/deals/:deal_id/investors", apiHandler.CreateInvestor)
			authorized.GET("/deals/:deal_id/investors", apiHandler.ListInvestors)
			authorized.PUT("/deals/:deal_id/investors/:investor_id", apiHandler.UpdateInvestor)
			authorized.DELETE("/deals/:deal_id/investors/:investor_id", apiHandler.DeleteInvestor)
			authorized.PUT("/deals/:deal_id/investors/:investor_id/star", apiHandler.StarInvestor)
			authorized.POST("/deals/:deal_id/investors/:investor_id/payments", apiHandler.RecordInvestorPayment)
			authorized.POST("/deals/:deal_id/buyers", apiHandler.CreateBuyer)
			authorized.GET("/deals/:deal_id/buyers", apiHandler.ListBuyers)
			authorized.PUT("/deals/:deal_id/buyers/:buyer_id", apiHandler.UpdateBuyer)
			authorized.DELETE("/deals/:deal_id/buyers/:buyer_id", apiHandler.DeleteBuyer)

			// 文档
			authorized.POST("/deals/:deal_id/documents", apiHandler.UploadDocument)
			authorized.GET("/deals/:deal_id/documents", apiHandler.ListDocuments)
			authorized.DELETE("/documents/:document_id", apiHandler.DeleteDocument)

			// 提醒
			authorized.POST("/deals/:deal_id/reminders", apiHandler.CreateReminder)
			authorized.GET("/deals/:deal_id/reminders", apiHandler.ListDealReminders)
			authorized.PUT("/deals/:deal_id/reminders/:reminder_id", apiHandler.UpdateReminder)
			authorized.PUT("/deals/:deal_id/reminders/:reminder_id/status", apiHandler.UpdateReminderStatus)
			authorized.DELETE("/deals/:deal_id/reminders/:reminder_id", apiHandler.DeleteReminder)
			authorized.GET("/reminders", apiHandler.ListReminders)

			// 台账
			authorized.GET("/payments/ledger", apiHandler.Ledger)
			authorized.GET("/payments/ledger.csv", apiHandler.ExportLedgerCSV)
			authorized.GET("/payments/ledger.xlsx", apiHandler.ExportLedgerXLSX)
			authorized.GET("/payments/ledger.pdf", apiHandler.ExportLedgerPDF)

			// 付款
			authorized.POST("/payments/:deal_id", apiHandler.CreatePayment)
			authorized.GET("/payments/:deal_id", apiHandler.ListPayments)
			authorized.POST("/payments/:deal_id/split-installments", apiHandler.SplitInstallments)
			authorized.GET("/payments/:deal_id/:payment_id", apiHandler.GetPayment)
			authorized.PUT("/payments/:deal_id/:payment_id", apiHandler.UpdatePayment)
			authorized.DELETE("/payments/:deal_id/:payment_id", apiHandler.DeletePayment)
			authorized.GET("/payments/:deal_id/:payment_id/installments", apiHandler.GetInstallments)
			authorized.POST("/payments/:deal_id/:payment_id/parties", apiHandler.AddPaymentParty)
			authorized.PUT("/payments/:deal_id/:payment_id/parties/:party_id", apiHandler.UpdatePaymentParty)
			authorized.DELETE("/payments/:deal_id/:payment_id/parties/:party_id", apiHandler.DeletePaymentParty)
			authorized.POST("/payments/:deal_id/:payment_id/proofs", apiHandler.UploadPaymentProof)
			authorized.GET("/payments/:deal_id/:payment_id/proofs", apiHandler.ListPaymentProofs)
			authorized.DELETE("/proofs/:proof_id", apiHandler.DeletePaymentProof)

			// 用户管理（admin）
			authorized.GET("/users", apiHandler.ListUsers)
			authorized.POST("/users", apiHandler.CreateUser)
			authorized.PUT("/users/:user_id/role", apiHandler.UpdateUserRole)
			authorized.PUT("/users/:user_id/status", apiHandler.UpdateUserStatus)
			authorized.PUT("/users/:user_id/password", apiHandler.ResetUserPassword)

			// 操作日志（admin）
			authorized.GET("/activity-logs", apiHandler.ListActivity)

			// 权限管理（admin）
			authorized.GET("/authz/roles", apiHandler.ListAuthzRoles)
			authorized.POST("/authz/roles", apiHandler.CreateAuthzRole)
			authorized.DELETE("/authz/roles/:role", apiHandler.DeleteAuthzRole)
			authorized.GET("/authz/roles/:role/policies", apiHandler.GetAuthzRolePolicies)
			authorized.POST("/authz/policies", apiHandler.GrantAuthzPolicy)
			authorized.DELETE("/authz/policies", apiHandler.RevokeAuthzPolicy)
			authorized.GET("/authz/users/:user_id/roles", apiHandler.GetUserAuthzRoles)
			authorized.PUT("/authz/users/:user_id/roles", apiHandler.SetUserAuthzRoles)
			authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.OK(ctx, gin.H{"permissions": buildPermissionCatalog(r)})
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/") {
			continue
		}
		if item.Path == "/api/auth/login" || item.Path == "/api/auth/register" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	return segments[0]
}
