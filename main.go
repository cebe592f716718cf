package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"coachdesk-backend/calendar"
	"coachdesk-backend/config"
	"coachdesk-backend/controllers"
	"coachdesk-backend/documents"
	"coachdesk-backend/mailer"
	"coachdesk-backend/models"
	"coachdesk-backend/routes"
	"coachdesk-backend/services"
	"coachdesk-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// builtinReceiptTemplate is used when no receipt.txt exists under the
// document root's templates folder.
const builtinReceiptTemplate = `RECEIPT

Receipt No: {{ReceiptNo}}
Date: {{PaidDate}}

Received from: {{ClientName}}

Item: {{LineItem}}
Amount: {{Amount}}

{{ServiceName}}
{{BusinessAddress}}
{{BusinessPhone}}`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	initFlag := flag.Bool("init", false, "define the sheets and seed default settings, then exit")
	seedCount := flag.Int("seed", 0, "seed N demo clients with history, then exit")
	importSpec := flag.String("import", "", "import a CSV into a sheet: sheet=path.csv")
	flag.Parse()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	sheet := store.NewGormSheet(db)
	if err := sheet.Migrate(); err != nil {
		log.Fatalf("Failed to migrate sheet tables: %v", err)
	}

	switch {
	case *initFlag:
		if err := runInit(sheet); err != nil {
			log.Fatalf("Init failed: %v", err)
		}
		return
	case *seedCount > 0:
		result, err := services.NewSeedService(sheet).Seed(*seedCount)
		if err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Printf("Seeded %d clients, %d sessions, %d payments, %d emails", result.Clients, result.Sessions, result.Payments, result.Emails)
		return
	case *importSpec != "":
		if err := runImport(sheet, *importSpec); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		return
	}

	settings := store.NewSettingsStore(sheet)
	cal := calendar.NewSynthetic()
	sender := mailer.NewSMTPSender(
		os.Getenv("SMTP_HOST"),
		os.Getenv("SMTP_PORT"),
		os.Getenv("MAIL_FROM"),
		settings.Get("MAIL_SENDER_NAME", ""),
	)
	docsRoot := os.Getenv("DOCUMENTS_ROOT")
	if docsRoot == "" {
		docsRoot = "./data"
	}
	docs := documents.NewLocalStore(docsRoot, map[string]string{
		services.ReceiptTemplate: builtinReceiptTemplate,
	})

	clients := services.NewClientService(sheet)
	sessions := services.NewSessionService(sheet, clients, settings, cal)
	payments := services.NewPaymentService(sheet, clients, settings, docs)
	emails := services.NewEmailService(sheet, clients, sessions, payments, settings, sender)
	dashboard := services.NewDashboardService(clients, sessions, payments)

	scheduler := services.NewScheduler(emails)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := routes.SetupRouter(routes.Controllers{
		Auth:      &controllers.AuthController{},
		Clients:   controllers.NewClientController(clients),
		Sessions:  controllers.NewSessionController(sessions, emails),
		Payments:  controllers.NewPaymentController(payments, emails),
		Emails:    controllers.NewEmailController(emails),
		Dashboard: controllers.NewDashboardController(dashboard),
		Settings:  controllers.NewSettingsController(settings),
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

// runInit defines every sheet and inserts the default settings that are not
// present yet. Running it again is harmless.
func runInit(sheet *store.GormSheet) error {
	schemas := []store.Schema{
		models.ClientSchema,
		models.SessionSchema,
		models.PaymentSchema,
		models.EmailLogSchema,
		store.SettingsSchema,
	}
	for _, schema := range schemas {
		if err := sheet.Define(schema.Sheet, schema.Headers); err != nil {
			return err
		}
		log.Printf("Sheet %q ready", schema.Sheet)
	}

	settings := store.NewSettingsStore(sheet)
	for _, def := range models.DefaultSettings {
		if settings.Get(def.Key, "") != "" {
			continue
		}
		if err := settings.Put(def.Key, def.Value, def.Description); err != nil {
			return err
		}
		log.Printf("Setting %s = %q", def.Key, def.Value)
	}
	return nil
}

// runImport appends the rows of a CSV file to a sheet. Spec form:
// sheet=path.csv, first line treated as a header.
func runImport(sheet *store.GormSheet, spec string) error {
	name, path, ok := strings.Cut(spec, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("import spec must be sheet=path.csv, got %q", spec)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	count, err := store.ImportCSV(sheet, name, f, true)
	if err != nil {
		return err
	}
	log.Printf("Imported %d rows into %q", count, name)
	return nil
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
