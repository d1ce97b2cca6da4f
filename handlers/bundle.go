package handlers

import (
	"decorhub/services/guard"
	"decorhub/services/identity"
)

// HandlerBundle groups the endpoint handlers and the collaborators routes need.
type HandlerBundle struct {
	Verifier identity.Verifier
	Guard    guard.RoleResolver

	Booking   *BookingHandler
	Payment   *PaymentHandler
	Catalog   *CatalogHandler
	Decorator *DecoratorHandler
	User      *UserHandler
	Admin     *AdminHandler
	Storage   *StorageHandler
}
