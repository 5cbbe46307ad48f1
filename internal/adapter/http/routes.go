package http

import (
	"github.com/labstack/echo/v4"

	mw "loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/usecase/access"
)

type Handlers struct {
	Health       *Handler
	Offers       *OfferHandler
	Applications *ApplicationHandler
	Users        *UserHandler
	Payments     *PaymentHandler
}

// RegisterRoutes wires every endpoint with its gate. idem wraps the mutating
// routes a client may retry; nil disables it.
func RegisterRoutes(e *echo.Echo, h Handlers, gate *access.Gate, idem echo.MiddlewareFunc) {
	authed := mw.RequireRole(gate, access.AnyAuthenticated)
	staff := mw.RequireRole(gate, access.Staff)
	manager := mw.RequireRole(gate, access.Manager)
	admin := mw.RequireRole(gate, access.Admin)

	retryable := []echo.MiddlewareFunc{authed}
	if idem != nil {
		retryable = append(retryable, idem)
	}

	e.GET("/health", h.Health.Health)

	// users
	e.POST("/user", h.Users.Login, authed)
	e.GET("/user/role", h.Users.Role, authed)
	e.GET("/manage-users", h.Users.List, admin)
	e.PATCH("/update-role/:email", h.Users.UpdateRole, admin)
	e.PATCH("/suspend-user/:email", h.Users.Suspend, admin)

	// loan offers
	e.GET("/loans", h.Offers.List)
	e.GET("/loans/home", h.Offers.ListHome)
	e.GET("/loan/:id", h.Offers.Get)
	e.POST("/add-loan", h.Offers.Create, staff)
	e.PATCH("/update-loan/:id", h.Offers.Update, staff)
	e.DELETE("/delete-loan/:id", h.Offers.Delete, staff)

	// applications
	e.POST("/loan-application", h.Applications.Submit, retryable...)
	e.GET("/loan-application/:id", h.Applications.Get, authed)
	e.PATCH("/loan-application/:id", h.Applications.Update, authed)
	e.GET("/my-loans/:email", h.Applications.ListMine, authed)
	e.GET("/loan-applications", h.Applications.ListAll, admin)
	e.GET("/loan-applications/pending", h.Applications.ListPending, manager)
	e.GET("/loan-applications/approved", h.Applications.ListApproved, manager)
	e.PATCH("/loan-application/approve/:id", h.Applications.Approve, manager)
	e.PATCH("/loan-application/reject/:id", h.Applications.Reject, manager)

	// application fee
	e.POST("/create-checkout-session", h.Payments.CreateCheckoutSession, retryable...)
	e.POST("/payment-success", h.Payments.PaymentSuccess, retryable...)
}
