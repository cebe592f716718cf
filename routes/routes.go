package routes

import (
	"os"
	"strings"

	"coachdesk-backend/config"
	"coachdesk-backend/controllers"
	"coachdesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers bundles the handler set the router mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Clients   *controllers.ClientController
	Sessions  *controllers.SessionController
	Payments  *controllers.PaymentController
	Emails    *controllers.EmailController
	Dashboard *controllers.DashboardController
	Settings  *controllers.SettingsController
}

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", ctrl.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", ctrl.Clients.CreateClient)
			clients.GET("", ctrl.Clients.GetClients)
			clients.GET("/summary", ctrl.Clients.GetStatusSummary)
			clients.GET("/:id", ctrl.Clients.GetClient)
			clients.PUT("/:id", ctrl.Clients.UpdateClient)
		}

		// Session routes
		sessions := api.Group("/sessions")
		{
			sessions.POST("", ctrl.Sessions.ScheduleSession)
			sessions.GET("", ctrl.Sessions.GetSessions)
			sessions.POST("/reminders", ctrl.Sessions.SendReminders)
			sessions.GET("/:id", ctrl.Sessions.GetSession)
			sessions.PUT("/:id", ctrl.Sessions.UpdateSession)
			sessions.PUT("/:id/reschedule", ctrl.Sessions.RescheduleSession)
			sessions.PUT("/:id/cancel", ctrl.Sessions.CancelSession)
			sessions.PUT("/:id/complete", ctrl.Sessions.CompleteSession)
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.POST("", ctrl.Payments.CreatePayment)
			payments.GET("", ctrl.Payments.GetPayments)
			payments.GET("/sales/monthly", ctrl.Payments.GetMonthlySales)
			payments.GET("/sales/yearly", ctrl.Payments.GetYearlySales)
			payments.GET("/:id", ctrl.Payments.GetPayment)
			payments.PUT("/:id", ctrl.Payments.UpdatePayment)
			payments.DELETE("/:id", ctrl.Payments.DeletePayment)
			payments.PUT("/:id/paid", ctrl.Payments.MarkPaid)
			payments.PUT("/:id/cancel", ctrl.Payments.CancelPayment)
			payments.POST("/:id/receipt", ctrl.Payments.GenerateReceipt)
		}

		// Email routes
		emails := api.Group("/emails")
		{
			emails.POST("", ctrl.Emails.SendEmail)
			emails.POST("/session-notice", ctrl.Emails.SendSessionNotice)
			emails.POST("/payment-invite", ctrl.Emails.SendPaymentInvite)
			emails.POST("/payment-confirmation", ctrl.Emails.SendPaymentConfirmation)
			emails.POST("/continuation-offer", ctrl.Emails.SendContinuationOffer)
			emails.GET("/logs", ctrl.Emails.GetEmailLogs)
			emails.GET("/history/:clientId", ctrl.Emails.GetClientHistory)
		}

		// Dashboard routes
		api.GET("/dashboard", ctrl.Dashboard.GetDashboard)

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", ctrl.Settings.GetSettings)
			settings.PUT("", ctrl.Settings.PutSetting)
		}
	}

	return r
}
