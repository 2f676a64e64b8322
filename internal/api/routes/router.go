package routes

import (
	"net/http"

	"github.com/campuscare/clinic-backend/internal/api/handlers"
	"github.com/campuscare/clinic-backend/internal/api/middleware"
	"github.com/campuscare/clinic-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	schedulingHandler   *handlers.SchedulingHandler
	triageHandler       *handlers.TriageHandler
	bedHandler          *handlers.BedHandler
	inventoryHandler    *handlers.InventoryHandler
	sickLeaveHandler    *handlers.SickLeaveHandler
	visitHandler        *handlers.VisitHandler
	notificationHandler *handlers.NotificationHandler
	directoryHandler    *handlers.DirectoryHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	schedulingHandler *handlers.SchedulingHandler,
	triageHandler *handlers.TriageHandler,
	bedHandler *handlers.BedHandler,
	inventoryHandler *handlers.InventoryHandler,
	sickLeaveHandler *handlers.SickLeaveHandler,
	visitHandler *handlers.VisitHandler,
	notificationHandler *handlers.NotificationHandler,
	directoryHandler *handlers.DirectoryHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		schedulingHandler:   schedulingHandler,
		triageHandler:       triageHandler,
		bedHandler:          bedHandler,
		inventoryHandler:    inventoryHandler,
		sickLeaveHandler:    sickLeaveHandler,
		visitHandler:        visitHandler,
		notificationHandler: notificationHandler,
		directoryHandler:    directoryHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Scheduling endpoints
	r.mux.HandleFunc("GET /api/doctors/{id}/slots", r.schedulingHandler.GetDoctorSlots)
	r.mux.HandleFunc("POST /api/appointments", r.schedulingHandler.BookAppointment)
	r.mux.HandleFunc("GET /api/appointments", r.schedulingHandler.ListAppointments)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.schedulingHandler.GetAppointment)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.schedulingHandler.CancelAppointment)
	r.mux.HandleFunc("PATCH /api/appointments/{id}/status", r.schedulingHandler.UpdateAppointmentStatus)
	r.mux.HandleFunc("GET /api/students/{id}/appointments", r.schedulingHandler.ListStudentAppointments)

	// Availability endpoints
	r.mux.HandleFunc("POST /api/availability", r.schedulingHandler.CreateAvailability)
	r.mux.HandleFunc("PUT /api/availability/{id}", r.schedulingHandler.UpdateAvailability)
	r.mux.HandleFunc("DELETE /api/availability/{id}", r.schedulingHandler.DeleteAvailability)
	r.mux.HandleFunc("GET /api/doctors/{id}/availability", r.schedulingHandler.ListDoctorAvailability)

	// Symptom triage endpoints
	r.mux.HandleFunc("POST /api/symptom-checks", r.triageHandler.AnalyzeSymptoms)
	r.mux.HandleFunc("GET /api/students/{id}/symptom-checks", r.triageHandler.ListStudentChecks)

	// Bed management endpoints
	r.mux.HandleFunc("GET /api/beds", r.bedHandler.ListBeds)
	r.mux.HandleFunc("POST /api/beds/{id}/assign", r.bedHandler.AssignBed)
	r.mux.HandleFunc("POST /api/beds/{id}/release", r.bedHandler.ReleaseBed)
	r.mux.HandleFunc("POST /api/beds/{id}/clean", r.bedHandler.MarkBedCleaned)
	r.mux.HandleFunc("PATCH /api/beds/{id}/notes", r.bedHandler.UpdateBedNotes)

	// Medicine inventory endpoints
	r.mux.HandleFunc("GET /api/medicines", r.inventoryHandler.ListMedicines)
	r.mux.HandleFunc("POST /api/medicines", r.inventoryHandler.AddMedicine)
	r.mux.HandleFunc("POST /api/medicines/{id}/restock", r.inventoryHandler.RestockMedicine)
	r.mux.HandleFunc("POST /api/medicine-requests", r.inventoryHandler.RequestMedicine)
	r.mux.HandleFunc("POST /api/medicine-requests/{id}/review", r.inventoryHandler.ReviewMedicineRequest)
	r.mux.HandleFunc("GET /api/medicine-requests", r.inventoryHandler.ListMedicineRequests)
	r.mux.HandleFunc("GET /api/students/{id}/medicine-requests", r.inventoryHandler.ListStudentMedicineRequests)

	// Sick leave endpoints
	r.mux.HandleFunc("POST /api/sick-leaves", r.sickLeaveHandler.RequestLeave)
	r.mux.HandleFunc("POST /api/sick-leaves/{id}/review", r.sickLeaveHandler.ReviewLeave)
	r.mux.HandleFunc("GET /api/sick-leaves", r.sickLeaveHandler.ListLeaves)
	r.mux.HandleFunc("GET /api/students/{id}/sick-leaves", r.sickLeaveHandler.ListStudentLeaves)
	r.mux.HandleFunc("GET /api/sick-leaves/{id}/certificate", r.sickLeaveHandler.DownloadCertificate)

	// Patient visit endpoints
	r.mux.HandleFunc("POST /api/visits", r.visitHandler.CheckIn)
	r.mux.HandleFunc("GET /api/visits", r.visitHandler.ListVisits)
	r.mux.HandleFunc("GET /api/visits/{id}", r.visitHandler.GetVisit)
	r.mux.HandleFunc("PATCH /api/visits/{id}", r.visitHandler.UpdateVisit)
	r.mux.HandleFunc("POST /api/visits/{id}/close", r.visitHandler.CloseVisit)
	r.mux.HandleFunc("POST /api/visits/{id}/prescriptions", r.visitHandler.Prescribe)
	r.mux.HandleFunc("GET /api/visits/{id}/prescriptions", r.visitHandler.ListVisitPrescriptions)
	r.mux.HandleFunc("GET /api/visits/{id}/summary", r.visitHandler.DownloadSummary)
	r.mux.HandleFunc("GET /api/students/{id}/visits", r.visitHandler.ListStudentVisits)
	r.mux.HandleFunc("GET /api/students/{id}/prescriptions", r.visitHandler.ListStudentPrescriptions)

	// Notification endpoints
	r.mux.HandleFunc("GET /api/users/{id}/notifications", r.notificationHandler.ListUserNotifications)
	r.mux.HandleFunc("POST /api/notifications/{id}/read", r.notificationHandler.MarkNotificationRead)
	r.mux.HandleFunc("POST /api/broadcasts", r.notificationHandler.PostBroadcast)
	r.mux.HandleFunc("GET /api/broadcasts", r.notificationHandler.ListBroadcasts)

	// Directory endpoints
	r.mux.HandleFunc("GET /api/students", r.directoryHandler.ListStudents)
	r.mux.HandleFunc("GET /api/students/{id}", r.directoryHandler.GetStudent)
	r.mux.HandleFunc("GET /api/staff", r.directoryHandler.ListStaff)
	r.mux.HandleFunc("GET /api/staff/{id}", r.directoryHandler.GetStaff)
	r.mux.HandleFunc("GET /api/staff/{id}/schedules", r.directoryHandler.ListStaffSchedules)
	r.mux.HandleFunc("GET /api/doctors", r.directoryHandler.ListDoctors)
	r.mux.HandleFunc("POST /api/schedules", r.directoryHandler.AddSchedule)
	r.mux.HandleFunc("GET /api/schedules", r.directoryHandler.ListSchedules)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
