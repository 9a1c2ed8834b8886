package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a safe message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database-level errors into user-facing codes,
// hiding driver details. context hints which aggregate was being
// touched (e.g. "create review", "delete product").
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	errStr := strings.ToLower(err.Error())

	// Postgres unique violation (23505); sqlite reports "UNIQUE constraint failed".
	if strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key violation (23503).
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "Referenced data exists, cannot delete"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced data not found"}
	}

	// Not-null violation (23502).
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Database unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Internal server error. Please try again later"}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	if strings.Contains(errStr, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email already registered"}
	}
	if strings.Contains(errStr, "categories") || strings.Contains(errStr, "idx_categories_name") {
		return ErrorInfo{Code: CategoryNameExists, Message: "Category name already exists"}
	}
	if strings.Contains(errStr, "idx_review_user_product") {
		return ErrorInfo{Code: ReviewAlreadyExists, Message: "You already reviewed this product"}
	}
	if strings.Contains(errStr, "idx_cart_user_product") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Product is already in the cart"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Data already exists"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart item not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found"
	}
	return "Requested data not found"
}

// ParseAndRespond parses err and writes the standard error body.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusCode, info.Code, info.Message)
}
