package domain

import (
	"errors"
	"net/http"
)

// Error is a catalog or validation failure carrying a machine-readable code and an HTTP-style status.
// Sentinels are wrapped with fmt.Errorf("%w: ...") and matched with errors.Is.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Domain errors as sentinel values
var (
	// Rate errors
	ErrRateNotFound      = newError("RateNotFound", http.StatusNotFound, "rate not found")
	ErrInvalidName       = newError("InvalidName", http.StatusBadRequest, "name must be between 2 and 100 characters")
	ErrInvalidDesc       = newError("InvalidDescription", http.StatusBadRequest, "description is required and must be at most 500 characters")
	ErrInvalidRateType   = newError("InvalidRateType", http.StatusBadRequest, "invalid rate type")
	ErrInvalidBasePrice  = newError("InvalidBasePrice", http.StatusBadRequest, "base price must be zero or greater")
	ErrInvalidCurrency   = newError("InvalidCurrency", http.StatusBadRequest, "unsupported currency")
	ErrInvalidDate       = newError("InvalidDate", http.StatusBadRequest, "invalid date")
	ErrInvalidDateRange  = newError("InvalidDateRange", http.StatusBadRequest, "start date must not be after end date")
	ErrInvalidDayOfWeek  = newError("InvalidDayOfWeek", http.StatusBadRequest, "invalid day of week")
	ErrInvalidStayRange  = newError("InvalidStayRange", http.StatusBadRequest, "invalid stay length")
	ErrInvalidItemID     = newError("InvalidItemId", http.StatusBadRequest, "applicable item id must be a valid identifier")
	ErrInvalidItemType   = newError("InvalidItemType", http.StatusBadRequest, "applicable item type is required")
	ErrRateAlreadyActive = newError("RateAlreadyActive", http.StatusConflict, "rate is already active")
	ErrRateInactive      = newError("RateAlreadyInactive", http.StatusConflict, "rate is already inactive")
	ErrVersionConflict   = newError("VersionConflict", http.StatusConflict, "rate was modified concurrently")
	ErrMoneyOverflow     = newError("MoneyOverflow", http.StatusBadRequest, "amount exceeds storage capacity")

	// Modifier errors
	ErrModifierNotFound     = newError("ModifierNotFound", http.StatusNotFound, "rate modifier not found")
	ErrInvalidModifierType  = newError("InvalidModifierType", http.StatusBadRequest, "modifier type must be percentage or fixed")
	ErrInvalidModifierValue = newError("InvalidModifierValue", http.StatusBadRequest, "percentage modifiers must be between -100 and 1000")
	ErrInvalidModifierName  = newError("InvalidModifierName", http.StatusBadRequest, "modifier name must be between 1 and 100 characters")

	// Seasonal and dynamic pricing errors
	ErrSeasonalRuleNotFound  = newError("SeasonalRuleNotFound", http.StatusNotFound, "seasonal rule not found")
	ErrInvalidMultiplier     = newError("InvalidMultiplier", http.StatusBadRequest, "price multiplier must be between 0.1 and 3.0")
	ErrInvalidDynamicConfig  = newError("InvalidDynamicConfig", http.StatusBadRequest, "invalid dynamic pricing configuration")
	ErrDynamicConfigNotFound = newError("DynamicConfigNotFound", http.StatusNotFound, "dynamic pricing configuration not found")
	ErrInvalidOccupancy      = newError("InvalidOccupancy", http.StatusBadRequest, "occupancy must be between 0 and 100")
	ErrInvalidPricingRequest = newError("InvalidPricingRequest", http.StatusBadRequest, "invalid pricing request")
	ErrInvalidOrder          = newError("InvalidOrder", http.StatusBadRequest, "invalid order")

	// Redemption errors
	ErrRedemptionDeclined = newError("RedemptionDeclined", http.StatusUnprocessableEntity, "redemption declined")
)

// AsError extracts the coded domain error from err, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
