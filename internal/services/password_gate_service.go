package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/metrics"
)

var (
	ErrPasswordRequired  = errors.New(constants.MsgPasswordRequired)
	ErrIncorrectPassword = errors.New(constants.MsgIncorrectPassword)
	ErrTooManyAttempts   = errors.New(constants.MsgTooManyAttempts)
)

// PasswordGateService checks the shared admin-area password
type PasswordGateService struct {
	expected []byte
	guard    *common.LoginGuard
	metrics  *metrics.MetricsRegistry
}

// NewPasswordGateService takes the hex SHA-256 of the password. With an empty hash every
// attempt is rejected.
func NewPasswordGateService(passwordSHA256 string, guard *common.LoginGuard, m *metrics.MetricsRegistry) *PasswordGateService {
	expected, err := hex.DecodeString(strings.TrimSpace(passwordSHA256))
	if err != nil || len(expected) != sha256.Size {
		if passwordSHA256 != "" {
			logging.Warn("ADMIN_PASSWORD_SHA256 is not a hex SHA-256 digest; password gate will reject every attempt")
		}
		expected = nil
	}
	return &PasswordGateService{expected: expected, guard: guard, metrics: m}
}

// Login checks password for client. password is whatever the request carried; anything but a
// non-empty string is ErrPasswordRequired.
func (s *PasswordGateService) Login(client string, password any) error {
	if s.guard != nil && s.guard.IsBlocked(client) {
		s.record("blocked")
		return ErrTooManyAttempts
	}

	pw, ok := password.(string)
	if !ok || pw == "" {
		s.record("invalid")
		return ErrPasswordRequired
	}

	sum := sha256.Sum256([]byte(pw))
	if s.expected != nil && subtle.ConstantTimeCompare(sum[:], s.expected) == 1 {
		if s.guard != nil {
			s.guard.RecordSuccess(client)
		}
		s.record("success")
		return nil
	}

	s.record("failure")
	if s.guard != nil && s.guard.RecordFailure(client) {
		return ErrTooManyAttempts
	}
	return ErrIncorrectPassword
}

func (s *PasswordGateService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
	}
}
