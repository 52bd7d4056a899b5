package http

import (
	"net/http"

	"go-voice-call-reminder/internal/delivery/http/handler"
	"go-voice-call-reminder/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	callHandler        *handler.CallHandler
	appointmentHandler *handler.AppointmentHandler
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	callHandler *handler.CallHandler,
	appointmentHandler *handler.AppointmentHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		callHandler:        callHandler,
		appointmentHandler: appointmentHandler,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Call scheduling
	r.router.HandleFunc("/make-calls", r.callHandler.MakeCalls).Methods(http.MethodPost)
	r.router.HandleFunc("/schedule-medicine-calls", r.callHandler.ScheduleMedicineCalls).Methods(http.MethodPost)

	// Appointment booking
	r.router.HandleFunc("/check-slot", r.appointmentHandler.CheckSlot).Methods(http.MethodGet)
	r.router.HandleFunc("/available-slots", r.appointmentHandler.AvailableSlots).Methods(http.MethodGet)
	r.router.HandleFunc("/book-appointment", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)

	// Liveness
	r.router.HandleFunc("/", r.home).Methods(http.MethodGet)
	r.router.HandleFunc("/test", r.test).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) home(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Voice call reminder service is running"}`))
}

func (r *Router) test(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
