package http

import (
	"net/http"

	"carelink-backend/internal/delivery/http/handler"
	"carelink-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	doctorHandler       *handler.DoctorHandler
	subscriptionHandler *handler.SubscriptionHandler
	reportHandler       *handler.ReportHandler
	productHandler      *handler.ProductHandler
	orderHandler        *handler.OrderHandler
	prescriptionHandler *handler.PrescriptionHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
}

type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Doctor       *handler.DoctorHandler
	Subscription *handler.SubscriptionHandler
	Report       *handler.ReportHandler
	Product      *handler.ProductHandler
	Order        *handler.OrderHandler
	Prescription *handler.PrescriptionHandler
	AuditLog     *handler.AuditLogHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         handlers.Auth,
		userHandler:         handlers.User,
		doctorHandler:       handlers.Doctor,
		subscriptionHandler: handlers.Subscription,
		reportHandler:       handlers.Report,
		productHandler:      handlers.Product,
		orderHandler:        handlers.Order,
		prescriptionHandler: handlers.Prescription,
		auditLogHandler:     handlers.AuditLog,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/login", r.authHandler.LoginUser).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentAccount).Methods(http.MethodGet)

	// Users, plans and reports
	api.HandleFunc("/users", r.userHandler.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/upload", r.userHandler.UploadImage).Methods(http.MethodPost)
	api.HandleFunc("/users/user/image", r.userHandler.GetImage).Methods(http.MethodGet)
	api.HandleFunc("/users/personal-info", r.userHandler.UpdatePersonalInfo).Methods(http.MethodPut)
	api.HandleFunc("/users/patientdetails", r.userHandler.GetPatientDetails).Methods(http.MethodGet)
	api.HandleFunc("/users/payment", r.subscriptionHandler.Purchase).Methods(http.MethodPost)
	api.HandleFunc("/users/user/check-plan", r.subscriptionHandler.CheckPlan).Methods(http.MethodPost)
	api.HandleFunc("/users/submit-report", r.reportHandler.SubmitReport).Methods(http.MethodPost)
	api.HandleFunc("/users/reports/latest", r.reportHandler.GetLatestReports).Methods(http.MethodGet)
	api.HandleFunc("/users/prescriptions/{report_id}", r.reportHandler.GetPrescription).Methods(http.MethodGet)

	api.HandleFunc("/plans", r.subscriptionHandler.GetPlans).Methods(http.MethodGet)
	api.HandleFunc("/plans/details/{name}", r.subscriptionHandler.GetPlanDetails).Methods(http.MethodGet)

	// Doctor routes (public)
	api.HandleFunc("/doctors/signup", r.doctorHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/doctors/login", r.authHandler.LoginDoctor).Methods(http.MethodPost)
	api.HandleFunc("/doctors/upload", r.doctorHandler.UploadImage).Methods(http.MethodPost)
	api.HandleFunc("/doctors/doctor/image", r.doctorHandler.GetImage).Methods(http.MethodGet)
	api.HandleFunc("/doctors/doctor/details", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/doctor/details/{email}", r.doctorHandler.GetDoctorDetails).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctorOnly := api.NewRoute().Subrouter()
	doctorOnly.Use(r.authMiddleware.Authenticate)
	doctorOnly.Use(middleware.RequireDoctor)
	doctorOnly.HandleFunc("/doctors/reports", r.doctorHandler.GetReports).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/doctors/report/{id}", r.doctorHandler.GetReport).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/users/patient-info", r.userHandler.GetPatientsForDoctor).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/users/report/feedback", r.reportHandler.SubmitFeedback).Methods(http.MethodPost)
	doctorOnly.HandleFunc("/prescriptions/pending", r.prescriptionHandler.GetPending).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/prescriptions/{id}/order", r.prescriptionHandler.CreateOrder).Methods(http.MethodPost)

	// Pharmacy
	api.HandleFunc("/products", r.productHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/products/add", r.productHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/products/popular", r.productHandler.GetPopular).Methods(http.MethodGet)
	api.HandleFunc("/products/onsale", r.productHandler.GetOnSale).Methods(http.MethodGet)
	api.HandleFunc("/products/cart", r.productHandler.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/products/cart/add", r.productHandler.AddToCart).Methods(http.MethodPost)
	api.HandleFunc("/products/del/cart", r.productHandler.RemoveFromCart).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}", r.productHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", r.productHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", r.productHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/orders/create", r.orderHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/orders", r.orderHandler.GetByUser).Methods(http.MethodGet)
	api.HandleFunc("/prescriptions/upload", r.prescriptionHandler.Upload).Methods(http.MethodPost)

	// Authenticated, any role
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/orders/{id}/status", r.orderHandler.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests are answered by the CORS middleware.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
