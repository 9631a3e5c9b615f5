package validation

import (
	"fmt"
	"unicode/utf8"

	"haggle/internal/models"
)

const (
	TitleMinLen       = 5
	TitleMaxLen       = 50
	DescriptionMinLen = 4
	DescriptionMaxLen = 400
	PriceMin          = 1
	PriceMax          = 10000
)

// ValidateTitle checks the advert title length bounds.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < TitleMinLen {
		return models.NewValidationError(fmt.Sprintf("title must be at least %d characters long", TitleMinLen))
	}
	if n > TitleMaxLen {
		return models.NewValidationError(fmt.Sprintf("title must not exceed %d characters", TitleMaxLen))
	}
	return nil
}

// ValidateDescription checks the advert description length bounds.
func ValidateDescription(description string) error {
	n := utf8.RuneCountInString(description)
	if n < DescriptionMinLen {
		return models.NewValidationError(fmt.Sprintf("description must be at least %d characters long", DescriptionMinLen))
	}
	if n > DescriptionMaxLen {
		return models.NewValidationError(fmt.Sprintf("description must not exceed %d characters", DescriptionMaxLen))
	}
	return nil
}

// ValidatePrice checks the price bounds.
func ValidatePrice(price int) error {
	if price < PriceMin {
		return models.NewValidationError(fmt.Sprintf("price must be at least %d", PriceMin))
	}
	if price > PriceMax {
		return models.NewValidationError(fmt.Sprintf("price must not exceed %d", PriceMax))
	}
	return nil
}

// ValidateCondition checks condition against the allowed set.
func ValidateCondition(condition string) error {
	if !contains(models.Conditions, condition) {
		return models.NewValidationError(fmt.Sprintf("condition must be one of %v", models.Conditions))
	}
	return nil
}

// ValidateCategory checks category against the allowed set.
func ValidateCategory(category string) error {
	if !contains(models.Categories, category) {
		return models.NewValidationError(fmt.Sprintf("category must be one of %v", models.Categories))
	}
	return nil
}

// ValidateDelivery checks that at least one delivery method is given and that
// every method is from the allowed set.
func ValidateDelivery(delivery []string) error {
	if len(delivery) == 0 {
		return models.NewValidationError("at least one delivery method is required")
	}
	for _, d := range delivery {
		if !contains(models.Deliveries, d) {
			return models.NewValidationError(fmt.Sprintf("delivery methods must be from %v", models.Deliveries))
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
