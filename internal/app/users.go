package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

type UserService struct {
	repo   domain.UserRepository
	hasher domain.PasswordHasher
	tokens domain.TokenIssuer
}

func NewUserService(r domain.UserRepository, h domain.PasswordHasher, t domain.TokenIssuer) *UserService {
	return &UserService{repo: r, hasher: h, tokens: t}
}

type Registration struct {
	Username    string
	Password    string
	Email       string
	FirstName   *string
	LastName    *string
	PhoneNumber string
	Address     *string
	Role        string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

func (s *UserService) Register(ctx context.Context, in Registration) (domain.User, error) {
	role := domain.UserRole(strings.TrimSpace(in.Role))
	if role == "" {
		role = domain.RoleCustomer
	}
	switch {
	case strings.TrimSpace(in.Username) == "" || len(in.Username) > 50:
		return domain.User{}, domain.InvalidInput("username", "Username is required and can't be longer than 50 characters.")
	case len(in.Password) < 6 || len(in.Password) > 100:
		return domain.User{}, domain.InvalidInput("password", "Password must be between 6 and 100 characters long.")
	case !validEmail(in.Email):
		return domain.User{}, domain.InvalidInput("email", "Invalid email format.")
	case strings.TrimSpace(in.PhoneNumber) == "":
		return domain.User{}, domain.InvalidInput("phoneNumber", "Phone number is required.")
	case !role.Valid():
		return domain.User{}, domain.InvalidInput("role", "Role is required(customer,hotel_staff,admin).")
	}

	if _, err := s.repo.GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}
	return s.repo.SaveUser(ctx, domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		Role:         role,
	})
}

// Login never says which half of the credentials was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	tok, exp, err := s.tokens.Issue(u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) Profile(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateProfile copies profile fields. Password and role are not changed here.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in Registration) (domain.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if in.Username != "" {
		if len(in.Username) > 50 {
			return domain.User{}, domain.InvalidInput("username", "Username can't be longer than 50 characters.")
		}
		u.Username = in.Username
	}
	if in.Email != "" {
		if !validEmail(in.Email) {
			return domain.User{}, domain.InvalidInput("email", "Invalid email format.")
		}
		u.Email = in.Email
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if in.FirstName != nil {
		u.FirstName = in.FirstName
	}
	if in.LastName != nil {
		u.LastName = in.LastName
	}
	if in.Address != nil {
		u.Address = in.Address
	}
	return s.repo.SaveUser(ctx, u)
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}
