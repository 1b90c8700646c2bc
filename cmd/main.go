package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/gestimmob/rental-service/internal/app"
	"github.com/gestimmob/rental-service/internal/config"
	"github.com/gestimmob/rental-service/internal/controllers"
	"github.com/gestimmob/rental-service/internal/repositories"
	"github.com/gestimmob/rental-service/internal/routes"
	"github.com/gestimmob/rental-service/internal/services"
	"github.com/gestimmob/rental-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize rental-service:", err)
	}
	defer application.Close()

	landlordRepo := repositories.NewLandlordRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	roomRepo := repositories.NewRoomRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	receiptRepo := repositories.NewReceiptRepository(application.DB)
	seqRepo := repositories.NewCodeSequenceRepository(application.DB)

	numbering := services.NewNumbering(seqRepo)
	availabilityService := services.NewAvailabilityService(propertyRepo, unitRepo, roomRepo, leaseRepo)
	leaseService := services.NewLeaseService(
		application.DB, leaseRepo, propertyRepo, unitRepo, roomRepo, tenantRepo,
		numbering, availabilityService,
	)
	propertyService := services.NewPropertyService(propertyRepo, unitRepo, roomRepo, leaseRepo, landlordRepo, numbering)
	registryService := services.NewRegistryService(landlordRepo, tenantRepo, numbering)
	paymentService := services.NewPaymentService(paymentRepo, receiptRepo, leaseRepo, numbering)
	statementService := services.NewStatementService(landlordRepo, leaseRepo, paymentRepo)

	healthController := controllers.NewHealthController()
	leaseController := controllers.NewLeaseController(leaseService, availabilityService)
	propertyController := controllers.NewPropertyController(propertyService, leaseService)
	registryController := controllers.NewRegistryController(registryService, statementService)
	paymentController := controllers.NewPaymentController(paymentService)
	adminController := controllers.NewAdminController(availabilityService)

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.LandlordsBase, registryController.CreateLandlordHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.LandlordByID, registryController.GetLandlordHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.LandlordStatement, registryController.LandlordStatementHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.TenantsBase, registryController.CreateTenantHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.TenantByID, registryController.GetTenantHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.PropertiesBase, propertyController.CreatePropertyHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PropertyByID, propertyController.GetPropertyHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyByID, propertyController.DeletePropertyHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.PropertyUnits, propertyController.AddUnitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PropertyRooms, propertyController.AddRoomHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PropertyLeases, propertyController.ListPropertyLeasesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UnitStatus, propertyController.SetUnitStatusHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.UnitClearStatus, propertyController.ClearUnitStatusHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.LeasesBase, leaseController.CreateLeaseHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.LeaseByID, leaseController.GetLeaseHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.LeaseByID, leaseController.UpdateLeaseHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.LeaseByID, leaseController.DeleteLeaseHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.LeaseTerminate, leaseController.TerminateLeaseHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.LeasePayments, paymentController.ListLeasePaymentsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.AvailabilityCheck, leaseController.CheckAvailabilityHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.PaymentsBase, paymentController.RecordPaymentHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PaymentValidate, paymentController.ValidatePaymentHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PaymentRefuse, paymentController.RefusePaymentHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.AdminReconcile, adminController.ReconcileHandler).Methods(http.MethodPost)

	c := cron.New()
	_, cronErr := c.AddFunc(cfg.ReconcileCron, func() {
		if _, e := availabilityService.ReconcileAllProperties(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled availability reconciliation failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule reconciliation cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl, "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("rental-service failed to start:", err)
	}
}
