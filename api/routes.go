package api

import (
	"github.com/gorilla/mux"

	"github.com/garnizeh/employees/internal/service"
)

// SetupRoutes wires the canonical REST surface. queue may be nil when the
// asynchronous create path is disabled; the /queue routes are then not
// registered.
func SetupRoutes(version, buildTime string, svc *service.EmployeeService, queue EmployeeEnqueuer) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	systemHandler := &SystemHandler{}
	employeesHandler := NewEmployeesHandler(svc)

	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// fixed paths before the {id} matcher
	r.HandleFunc("/employees/count", employeesHandler.Count).Methods("GET")
	r.HandleFunc("/employees/search", employeesHandler.Search).Methods("GET")
	r.HandleFunc("/employees", employeesHandler.List).Methods("GET")
	r.HandleFunc("/employees", employeesHandler.Create).Methods("POST")
	r.HandleFunc("/employees/{id}", employeesHandler.GetByID).Methods("GET")
	r.HandleFunc("/employees/{id}", employeesHandler.Update).Methods("PUT")
	r.HandleFunc("/employees/{id}", employeesHandler.Delete).Methods("DELETE")

	if queue != nil {
		queueHandler := NewQueueHandler(queue)
		r.HandleFunc("/queue/employees", queueHandler.SendEmployee).Methods("POST")
	}

	return r
}
