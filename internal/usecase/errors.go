package usecase

import (
	"errors"
	"strings"
	"time"

	"carelink-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists   = apperror.New(apperror.KindConflict, "email already exists")
	ErrLicenseAlreadyExists = apperror.New(apperror.KindConflict, "license number already exists")
	ErrInvalidCredentials   = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrInvalidToken         = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
	ErrTokenRevoked         = apperror.New(apperror.KindUnauthorized, "token has been revoked")
	ErrUserNotFound         = apperror.New(apperror.KindNotFound, "user not found")
	ErrDoctorNotFound       = apperror.New(apperror.KindNotFound, "doctor not found")
	ErrPersonalInfoNotFound = apperror.New(apperror.KindNotFound, "patient not found")
	ErrImageNotFound        = apperror.New(apperror.KindNotFound, "image not found")
	ErrInvalidImage         = apperror.New(apperror.KindInvalidInput, "image is not valid base64")
	ErrInvalidDateFormat    = apperror.New(apperror.KindInvalidInput, "invalid date format, use YYYY-MM-DD")

	ErrPlanNotFound           = apperror.New(apperror.KindNotFound, "plan not found")
	ErrActivePlanNotFound     = apperror.New(apperror.KindNotFound, "no active plan found")
	ErrNoActivePlan           = apperror.New(apperror.KindForbidden, "no active plan found for the user")
	ErrReportLimitReached     = apperror.New(apperror.KindForbidden, "report upload limit reached for the active plan")
	ErrSubscriptionInProgress = apperror.New(apperror.KindConflict, "another purchase for this user is in progress")
	ErrInvalidPrice           = apperror.New(apperror.KindInvalidInput, "price_paid must not be negative")

	ErrInvalidFileData       = apperror.New(apperror.KindInvalidInput, "file_data is not valid base64")
	ErrInvalidReportID       = apperror.New(apperror.KindInvalidInput, "report_id is not a valid id")
	ErrReportNotFound        = apperror.New(apperror.KindNotFound, "report not found")
	ErrReportNotOwned        = apperror.New(apperror.KindForbidden, "report does not belong to this doctor and user")
	ErrReportAlreadyReviewed = apperror.New(apperror.KindConflict, "report already has feedback")
	ErrFeedbackNotFound      = apperror.New(apperror.KindNotFound, "prescription not found")

	ErrProductNotFound        = apperror.New(apperror.KindNotFound, "product not found")
	ErrCartItemNotFound       = apperror.New(apperror.KindNotFound, "cart item not found")
	ErrOrderNotFound          = apperror.New(apperror.KindNotFound, "order not found")
	ErrPrescriptionNotFound   = apperror.New(apperror.KindNotFound, "prescription not found")
	ErrPrescriptionProcessed  = apperror.New(apperror.KindConflict, "prescription already processed")
	ErrUnreadablePrescription = apperror.New(apperror.KindInvalidInput, "no readable text found in prescription image")
	ErrAuditLogNotFound       = apperror.New(apperror.KindNotFound, "audit log not found")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// whose constraint name contains constraintName. An empty name matches any.
func isDuplicateKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// whose constraint name contains constraintName. An empty name matches any.
func isForeignKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// sameEmail compares addresses the way the auth layer does: case-insensitively.
func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

const dateLayout = "2006-01-02"

// dateOf truncates t to midnight UTC of its calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addMonths adds n calendar months, clamping to the last day of the target
// month (Jan 31 + 1 month = Feb 28 or 29).
func addMonths(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, d.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}

// missing returns the names whose paired value is blank. Pairs are name, value.
func missing(pairs ...string) []string {
	var names []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			names = append(names, pairs[i])
		}
	}
	return names
}
