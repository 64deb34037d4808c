// Package loan serves the loan records loaded at startup. Listing and
// filtering are plain in-memory scans; deletion is the only mutation.
package loan

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/buysimply/buysimply/faults"
	"github.com/buysimply/buysimply/logger"
)

// Roles known to the loan service.
const (
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const retrievedMessage = "loans Retrieved Successfully"

// maturityDate layouts accepted in the seed data.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ListResult is the response shape of the full listing.
type ListResult struct {
	Message string `json:"message"`
	Data    []Loan `json:"data"`
}

// UserLoansResult is the response shape of the per-applicant listing.
type UserLoansResult struct {
	Message string `json:"message"`
	Loans   []Loan `json:"loans"`
}

// ExpiredResult is the response shape of the expired listing.
type ExpiredResult struct {
	ExpiredLoans []Loan `json:"expiredLoans"`
	Message      string `json:"message"`
}

// DeleteResult is the response shape of a deletion.
type DeleteResult struct {
	Message string `json:"message"`
}

// Service holds the loan collection. Reads vastly outnumber the single
// mutation (delete), so a RWMutex guards the slice.
type Service struct {
	mu     sync.RWMutex
	loans  []Loan
	logger logger.Logger
	now    func() time.Time
}

// NewService loads the loan collection from JSON seed data.
func NewService(data []byte, log logger.Logger) (*Service, error) {
	var loans []Loan
	if err := json.Unmarshal(data, &loans); err != nil {
		return nil, fmt.Errorf("failed to parse loan records: %w", err)
	}

	log.Info("loan records loaded", logger.Int("count", len(loans)))

	return &Service{
		loans:  loans,
		logger: log,
		now:    time.Now,
	}, nil
}

// GetAllLoans returns every loan, optionally filtered by status. The staff
// role never sees applicant.totalLoan.
func (s *Service) GetAllLoans(status, role string) ListResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]Loan, 0, len(s.loans))
	for _, l := range s.loans {
		if status != "" && l.Status != status {
			continue
		}
		filtered = append(filtered, l.redactFor(role))
	}

	return ListResult{
		Message: retrievedMessage,
		Data:    filtered,
	}
}

// GetUserLoans returns the loans belonging to one applicant email.
func (s *Service) GetUserLoans(userEmail, role string) UserLoansResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userLoans := make([]Loan, 0)
	for _, l := range s.loans {
		if l.Applicant.Email == userEmail {
			userLoans = append(userLoans, l.redactFor(role))
		}
	}

	return UserLoansResult{
		Message: retrievedMessage,
		Loans:   userLoans,
	}
}

// GetExpiredLoans returns the loans whose maturity date has passed.
func (s *Service) GetExpiredLoans(role string) ExpiredResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	expired := make([]Loan, 0)
	for _, l := range s.loans {
		maturity, err := parseDate(l.MaturityDate)
		if err != nil {
			s.logger.Warn("unparseable maturity date",
				logger.String("loan_id", l.ID),
				logger.String("maturity_date", l.MaturityDate))
			continue
		}
		if maturity.Before(now) {
			expired = append(expired, l.redactFor(role))
		}
	}

	return ExpiredResult{
		ExpiredLoans: expired,
		Message:      retrievedMessage,
	}
}

// DeleteLoan removes a loan by id. An unknown id is a NotFound fault.
func (s *Service) DeleteLoan(loanID string) (DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.loans {
		if l.ID == loanID {
			s.loans = append(s.loans[:i], s.loans[i+1:]...)
			s.logger.Info("loan deleted", logger.String("loan_id", loanID))
			return DeleteResult{
				Message: fmt.Sprintf("Loan %s deleted successfully", loanID),
			}, nil
		}
	}

	return DeleteResult{}, faults.NotFound(fmt.Sprintf("Loan with ID %s not found", loanID))
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
