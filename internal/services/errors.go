package services

import (
	"fmt"

	"github.com/hireboard/hireboard/internal/constants"
	apierrors "github.com/hireboard/hireboard/internal/errors"
)

// Registration and login
var (
	ErrInvalidInput       = apierrors.Validation("Invalid input")
	ErrMissingFields      = apierrors.Validation("Fill in all required fields")
	ErrInvalidEmail       = apierrors.Validation("Enter a valid email address")
	ErrNameTooShort       = apierrors.Validation(fmt.Sprintf("Name must be at least %d characters", constants.MinNameLength))
	ErrNameTooLong        = apierrors.Validation(fmt.Sprintf("Name is too long (maximum %d characters)", constants.MaxNameLength))
	ErrNameCharacters     = apierrors.Validation("Name may only contain letters, spaces and hyphens")
	ErrPasswordMismatch   = apierrors.Validation("Passwords do not match")
	ErrPasswordTooShort   = apierrors.Validation(fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	ErrPasswordNoUpper    = apierrors.Validation("Password must contain at least one uppercase letter")
	ErrPasswordNoLower    = apierrors.Validation("Password must contain at least one lowercase letter")
	ErrPasswordNoDigit    = apierrors.Validation("Password must contain at least one digit")
	ErrPasswordNoSymbol   = apierrors.Validation("Password must contain at least one special character")
	ErrInvalidRole        = apierrors.Validation("Choose either the seeker or the employer role")
	ErrEmailTaken         = apierrors.Duplicate("Email is already registered")
	ErrInvalidCredentials = apierrors.Auth("Invalid email or password")
	ErrAccountDeactivated = apierrors.Auth("Your account is deactivated. Contact the administrator.")
	ErrUserNotFound       = apierrors.NotFound("User not found")
)

// Access
var (
	ErrPermissionDenied    = apierrors.Permission("Access denied")
	ErrCompanyRequired     = apierrors.Permission("Fill in your company profile before posting vacancies")
	ErrCompanyNotApproved  = apierrors.Permission("Your company is awaiting moderation. Vacancies can be posted once it is approved")
	ErrNotVacancyOwner     = apierrors.Permission("This vacancy belongs to another employer")
	ErrPortfolioNotVisible = apierrors.Permission("This portfolio is not available")
)

// Lookups
var (
	ErrInvalidID           = apierrors.NotFound("Not found")
	ErrCompanyNotFound     = apierrors.NotFound("Company not found")
	ErrPortfolioNotFound   = apierrors.NotFound("Portfolio not found")
	ErrVacancyNotFound     = apierrors.NotFound("Vacancy not found")
	ErrApplicationNotFound = apierrors.NotFound("Application not found")
)

// Workflow input
var (
	ErrCompanyNameRequired     = apierrors.Validation("Company name is required")
	ErrPortfolioFieldsRequired = apierrors.Validation("Portfolio title and profession are required")
	ErrNegativeExperience      = apierrors.Validation("Experience cannot be negative")
	ErrVacancyFieldsRequired   = apierrors.Validation("Vacancy title, description and requirements are required")
	ErrInvalidSalary           = apierrors.Validation("Salary cannot be negative")
	ErrInvalidSalaryRange      = apierrors.Validation("Minimum salary cannot exceed maximum salary")
	ErrInvalidSalaryFilter     = apierrors.Validation("Minimum salary must be a whole number")
	ErrPortfolioRequired       = apierrors.Validation("Create a portfolio before applying")
	ErrAlreadyApplied          = apierrors.Duplicate("You have already applied to this vacancy")
	ErrInvalidStatus           = apierrors.Validation("Unknown application status")
	ErrRejectionReasonRequired = apierrors.Validation("A rejection reason is required")
)

// Moderation
var (
	ErrUnknownEntityKind = apierrors.Validation("Unknown entity type")
	ErrNotModerated      = apierrors.Validation("This entity type has no approval flag")
	ErrUserHardDelete    = apierrors.Validation("Users are deactivated, not deleted")
	ErrSelfDeletion      = apierrors.SelfDeletion("You cannot deactivate your own account")
)

func storeError(message string, err error) error {
	return apierrors.Internal(message, err)
}
