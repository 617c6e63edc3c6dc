package utils

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sindauto/agendamento/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	textPolicy = bluemonday.StrictPolicy()
)

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool                `json:"is_valid"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []models.FieldError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, models.FieldError{
		Field:   field,
		Message: message,
	})
}

// HasError reports whether field has at least one error
func (vr *ValidationResult) HasError(field string) bool {
	for _, e := range vr.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err returns the result as a *models.ValidationError, or nil when valid
func (vr *ValidationResult) Err() error {
	if vr.IsValid {
		return nil
	}
	return &models.ValidationError{Fields: vr.Errors}
}

// ValidateIdentity checks presence and format of the identity fields.
// Missing fields and malformed values are both reported; callers decide which ones block.
func ValidateIdentity(identity models.CitizenIdentity) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(identity.FullName) == "" {
		result.AddError("fullName", "Nome completo é obrigatório")
	} else if len(identity.FullName) > 200 {
		result.AddError("fullName", "Nome completo deve ter no máximo 200 caracteres")
	}

	if strings.TrimSpace(identity.CPF) == "" {
		result.AddError("cpf", "CPF é obrigatório")
	} else if !ValidateCPF(identity.CPF) {
		result.AddError("cpf", "CPF inválido")
	}

	if strings.TrimSpace(identity.Email) == "" {
		result.AddError("email", "E-mail é obrigatório")
	} else if len(identity.Email) > 254 || !emailRegex.MatchString(identity.Email) {
		result.AddError("email", "E-mail inválido")
	}

	if strings.TrimSpace(identity.Phone) == "" {
		result.AddError("phone", "Telefone é obrigatório")
	} else if _, err := ParsePhoneNumber(identity.Phone); err != nil {
		result.AddError("phone", "Telefone inválido")
	}

	return result
}

// SanitizeString strips markup and surrounding whitespace from free text
func SanitizeString(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// SanitizeIdentity sanitizes the identity fields. The CPF keeps its display form.
func SanitizeIdentity(identity models.CitizenIdentity) models.CitizenIdentity {
	return models.CitizenIdentity{
		FullName: SanitizeString(identity.FullName),
		CPF:      strings.TrimSpace(identity.CPF),
		Email:    strings.ToLower(SanitizeString(identity.Email)),
		Phone:    strings.TrimSpace(identity.Phone),
	}
}
