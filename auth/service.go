// Package auth implements login and logout over the static staff records.
// Login issues a signed bearer token; logout revokes it.
package auth

import (
	"encoding/json"
	"fmt"

	"github.com/buysimply/buysimply/auth/revocation"
	"github.com/buysimply/buysimply/auth/token"
	"github.com/buysimply/buysimply/faults"
	"github.com/buysimply/buysimply/logger"
)

// Staff is one entry of the staff records.
type Staff struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserInfo is the user payload returned on login. The capital-N Name key is
// part of the public contract.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"Name"`
	Role  string `json:"role"`
}

// LoginResult is the response shape of a successful login.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// LogoutResult is the response shape of a successful logout.
type LogoutResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Service authenticates staff members against the seeded records.
type Service struct {
	staffs      []Staff
	codec       *token.Codec
	revocations *revocation.Store
	logger      logger.Logger
}

// NewService loads the staff records from JSON seed data.
func NewService(data []byte, codec *token.Codec, revocations *revocation.Store, log logger.Logger) (*Service, error) {
	var staffs []Staff
	if err := json.Unmarshal(data, &staffs); err != nil {
		return nil, fmt.Errorf("failed to parse staff records: %w", err)
	}

	log.Info("staff records loaded", logger.Int("count", len(staffs)))

	return &Service{
		staffs:      staffs,
		codec:       codec,
		revocations: revocations,
		logger:      log,
	}, nil
}

// Login matches email and password against the staff records and issues a
// token on success. The failure message is identical whether the email or
// the password was wrong, so callers cannot probe which one matched.
func (s *Service) Login(email, password string) (*LoginResult, error) {
	var match *Staff
	for i := range s.staffs {
		if s.staffs[i].Email == email && s.staffs[i].Password == password {
			match = &s.staffs[i]
			break
		}
	}

	if match == nil {
		return nil, faults.BadRequest("User does not exist")
	}

	accessToken, err := s.codec.Issue(token.Principal{
		UserID: match.ID,
		Role:   match.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("staff logged in",
		logger.String("user_id", match.ID),
		logger.String("role", match.Role))

	return &LoginResult{
		Token: accessToken,
		User: UserInfo{
			ID:    match.ID,
			Email: match.Email,
			Name:  match.Name,
			Role:  match.Role,
		},
	}, nil
}

// Logout revokes the presented token. Revocation is permanent for the
// process lifetime, so the token fails verification from here on even
// while its signature and expiry are still valid.
func (s *Service) Logout(tokenString string) (*LogoutResult, error) {
	if tokenString == "" {
		return nil, faults.BadRequest("No token provided")
	}

	s.revocations.Revoke(tokenString)

	return &LogoutResult{
		Status:  "success",
		Message: "Logout successful",
	}, nil
}
