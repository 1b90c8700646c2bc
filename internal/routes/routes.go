package routes

const (
	// Health
	Health = "/health"

	// Registry
	LandlordsBase     = "/api/v1/landlords"
	LandlordByID      = "/api/v1/landlords/{id}"
	LandlordStatement = "/api/v1/landlords/{id}/statement"
	TenantsBase       = "/api/v1/tenants"
	TenantByID        = "/api/v1/tenants/{id}"

	// Properties and their resources
	PropertiesBase  = "/api/v1/properties"
	PropertyByID    = "/api/v1/properties/{id}"
	PropertyUnits   = "/api/v1/properties/{id}/units"
	PropertyRooms   = "/api/v1/properties/{id}/rooms"
	PropertyLeases  = "/api/v1/properties/{id}/leases"
	UnitStatus      = "/api/v1/units/{id}/status"
	UnitClearStatus = "/api/v1/units/{id}/status/clear"

	// Leases
	LeasesBase     = "/api/v1/leases"
	LeaseByID      = "/api/v1/leases/{id}"
	LeaseTerminate = "/api/v1/leases/{id}/terminate"
	LeasePayments  = "/api/v1/leases/{id}/payments"

	// Availability pre-check
	AvailabilityCheck = "/api/v1/availability/check"

	// Payments
	PaymentsBase    = "/api/v1/payments"
	PaymentValidate = "/api/v1/payments/{id}/validate"
	PaymentRefuse   = "/api/v1/payments/{id}/refuse"

	// Admin
	AdminReconcile = "/api/v1/admin/reconcile"
)
