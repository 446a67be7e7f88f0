package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Users             *UserHandler
	Events            *EventHandler
	Registrations     *RegistrationHandler
	Waitlist          *WaitlistHandler
	Courts            *CourtHandler
	CourtReservations *CourtReservationHandler
	Coworking         *CoworkingHandler
	Tags              *TagHandler
	APIKeys           *APIKeyHandler
}

func RegisterRoutes(r *chi.Mux, h Handlers) huma.API {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	config := huma.DefaultConfig("Rondo Venue API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Users
	huma.Post(api, "/users/registration", h.Users.HandleSignup)
	huma.Post(api, "/users/auth", h.Users.HandleLogin)
	huma.Get(api, "/users/quit", h.Users.HandleLogout)
	huma.Get(api, "/users/me", h.Users.HandleMe, secured)
	huma.Get(api, "/users/confirm/{token}", h.Users.HandleConfirmEmail)
	huma.Post(api, "/users/forgot_password", h.Users.HandleForgotPassword)
	huma.Post(api, "/users/reset_password", h.Users.HandleResetPassword)

	// Events
	huma.Post(api, "/events/admin_create", h.Events.HandleCreateEvent, secured)
	huma.Get(api, "/events", h.Events.HandleListEvents)
	huma.Get(api, "/events/{event_id}", h.Events.HandleGetEvent)
	huma.Delete(api, "/events/{event_id}", h.Events.HandleDeleteEvent, secured)
	huma.Post(api, "/events/{event_id}/tags/{tag_id}", h.Events.HandleAssignTag, secured)

	// Primary-pool registration
	huma.Post(api, "/events/registration/{event_id}", h.Registrations.HandleRegister, secured)
	huma.Post(api, "/events/disregistration/{event_id}", h.Registrations.HandleCancel, secured)
	huma.Get(api, "/events/my_registration", h.Registrations.HandleMyRegistrations, secured)
	huma.Get(api, "/events/my_registration/{event_id}", h.Registrations.HandleMyRegistrationForEvent, secured)

	// Overflow pool (additional places)
	huma.Post(api, "/events/additional/registration/{event_id}", h.Waitlist.HandleRegister, secured)
	huma.Post(api, "/events/additional/disregistration/{event_id}", h.Waitlist.HandleCancel, secured)

	// Courts
	huma.Get(api, "/courts", h.Courts.HandleListCourts)
	huma.Post(api, "/courts/admin_create", h.Courts.HandleCreateCourt, secured)

	// Court reservations
	huma.Get(api, "/court_reservations/all/{date}", h.CourtReservations.HandleListByDate)
	huma.Post(api, "/court_reservations/temporary", h.CourtReservations.HandleCreateTemporary, secured)
	huma.Post(api, "/court_reservations/{reservation_id}/confirm", h.CourtReservations.HandleConfirm, secured)
	huma.Delete(api, "/court_reservations/cancel/{reservation_id}", h.CourtReservations.HandleCancel, secured)
	huma.Get(api, "/court_reservations/my_reservations", h.CourtReservations.HandleMyReservations, secured)
	huma.Get(api, "/court_reservations/my_temporary_reservations", h.CourtReservations.HandleMyTemporary, secured)
	huma.Post(api, "/court_reservations/create_by_admin", h.CourtReservations.HandleCreateByAdmin, secured)
	huma.Post(api, "/court_reservations/cancel_by_admin/{reservation_id}", h.CourtReservations.HandleCancelByAdmin, secured)

	// Coworking
	huma.Get(api, "/coworking", h.Coworking.HandleList)
	huma.Post(api, "/coworking/admin_create", h.Coworking.HandleCreate, secured)
	huma.Post(api, "/coworking_reservations", h.Coworking.HandleReserve, secured)
	huma.Get(api, "/coworking_reservations/my", h.Coworking.HandleMyReservations, secured)
	huma.Delete(api, "/coworking_reservations/{reservation_id}", h.Coworking.HandleCancelReservation, secured)

	// Tags
	huma.Post(api, "/tags/admin_create", h.Tags.HandleCreate, secured)
	huma.Get(api, "/tags", h.Tags.HandleList)

	// API keys
	huma.Post(api, "/api_keys", h.APIKeys.HandleCreate, secured)
	huma.Get(api, "/api_keys", h.APIKeys.HandleList, secured)
	huma.Delete(api, "/api_keys/{key_id}", h.APIKeys.HandleDelete, secured)

	return api
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
}
