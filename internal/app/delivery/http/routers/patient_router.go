package routers

import (
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	router.Use(middlewares.Authenticate)

	router.Get("/records", patientController.ListRecords)
	router.Post("/records", patientController.CreateRecord)
	router.Get("/records/{record_id}", patientController.GetRecord)
	router.Delete("/records/{record_id}", patientController.DeleteRecord)
	router.Get("/records/{record_id}/slip", patientController.GetSlip)
	router.Post("/records/{record_id}/print", patientController.PrintSlip)
}
