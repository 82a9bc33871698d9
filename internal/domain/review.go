package domain

import "time"

type Review struct {
	ID         int64
	UserID     int64
	HotelID    int64
	Rating     int // 1..5
	Comment    *string
	ReviewDate time.Time
}

type Payment struct {
	ID            int64
	UserID        int64
	Amount        float64
	Status        string
	PaymentMethod string
	Date          time.Time
}

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleHotelStaff UserRole = "hotel_staff"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleHotelStaff, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FirstName    *string
	LastName     *string
	PhoneNumber  string
	Address      *string
	Role         UserRole
}
