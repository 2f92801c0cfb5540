package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"splitly/cmd/fx/account_fx"
	"splitly/cmd/fx/db_fx"
	"splitly/cmd/fx/expense_fx"
	"splitly/cmd/fx/group_fx"
	"splitly/cmd/fx/mail_fx"
	"splitly/cmd/fx/memcache_fx"
	"splitly/cmd/fx/payment_fx"
	"splitly/cmd/fx/plans_fx"
	"splitly/cmd/fx/settlement_fx"
	"splitly/cmd/fx/transaction_fx"
	"splitly/internal/api/controllers"
	"splitly/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		plans_fx.Module,
		account_fx.Module,
		group_fx.Module,
		expense_fx.Module,
		settlement_fx.Module,
		transaction_fx.Module,
		payment_fx.Module,

		fx.Provide(
			controllers.NewAccountController,
			controllers.NewGroupController,
			controllers.NewExpenseController,
			controllers.NewTransactionController,
			controllers.NewPaymentController,
		),

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "5000"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	groupController *controllers.GroupController,
	expenseController *controllers.ExpenseController,
	transactionController *controllers.TransactionController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, groupController, expenseController, transactionController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	groupController *controllers.GroupController,
	expenseController *controllers.ExpenseController,
	transactionController *controllers.TransactionController,
	paymentController *controllers.PaymentController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/verify-email", accountController.VerifyEmail)
	accounts.POST("/resend-verification", accountController.ResendVerification)
	accounts.GET("/profile", middleware.JWTAuthMiddleware(), accountController.GetProfile)
	accounts.PUT("/profile", middleware.JWTAuthMiddleware(), accountController.UpdateProfile)

	groups := r.Group("/groups")
	groups.Use(middleware.JWTAuthMiddleware())
	groups.POST("", groupController.CreateGroup)
	groups.GET("", groupController.ListGroups)
	groups.GET("/:id", groupController.GetGroup)
	groups.PUT("/:id", groupController.UpdateGroup)
	groups.DELETE("/:id", groupController.DeleteGroup)
	groups.POST("/:id/members", groupController.AddMember)
	groups.DELETE("/:id/members/:memberId", groupController.RemoveMember)

	expenses := r.Group("/expenses")
	expenses.Use(middleware.JWTAuthMiddleware())
	expenses.POST("", expenseController.CreateExpense)
	expenses.GET("", expenseController.ListExpenses)
	expenses.GET("/:id", expenseController.GetExpense)
	expenses.PUT("/:id", expenseController.UpdateExpense)
	expenses.DELETE("/:id", expenseController.DeleteExpense)
	expenses.POST("/:id/settle", expenseController.SettleExpense)

	transactions := r.Group("/transactions")
	transactions.Use(middleware.JWTAuthMiddleware())
	transactions.GET("/revenue", middleware.RoleMiddleware("admin"), transactionController.Revenue)
	transactions.GET("/history", transactionController.History)

	payments := r.Group("/payments")
	payments.POST("/webhook", paymentController.Webhook)
	payments.Use(middleware.JWTAuthMiddleware())
	payments.POST("/create-subscription", paymentController.CreateSubscription)
	payments.POST("/verify", paymentController.VerifyPayment)
}
