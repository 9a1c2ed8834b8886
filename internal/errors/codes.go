package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// Frontends map these codes to their own messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthAccountInactive    = "AUTH_ACCOUNT_INACTIVE"
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD" // change-password with bad current password

	// Authorization (AUTHZ_)
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzSelfDemotion = "AUTHZ_SELF_DEMOTION" // admin editing own is_admin flag
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// Validation (VALIDATION_)
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Catalog (CATALOG_)
	CategoryNotFound   = "CATALOG_CATEGORY_NOT_FOUND"
	CategoryNameExists = "CATALOG_CATEGORY_NAME_EXISTS"
	ProductNotFound    = "CATALOG_PRODUCT_NOT_FOUND"
	ProductInOrders    = "CATALOG_PRODUCT_IN_ORDERS" // delete blocked by order references

	// Cart (CART_)
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartInsufficient = "CART_INSUFFICIENT_STOCK"

	// Orders (ORDER_)
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderEmptyCart         = "ORDER_EMPTY_CART"
	OrderInvalidStatus     = "ORDER_INVALID_STATUS"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"
	OrderInsufficientStock = "ORDER_INSUFFICIENT_STOCK"

	// Reviews (REVIEW_)
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
