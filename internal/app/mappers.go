package app

import (
	"fmt"
	"strconv"
	"time"

	"hotel_booking/internal/domain"
)

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTimestamp accepts an ISO-8601 date or date-time. Values without a zone are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, l := range timestampLayouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", s)
}

// Timestamp marshals as RFC 3339 and unmarshals anything ParseTimestamp accepts.
type Timestamp struct{ time.Time }

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

/********** wire shapes (JSON lives here, not on domain types) **********/

type HotelDTO struct {
	HotelID       int64    `json:"hotelId"`
	HotelName     string   `json:"hotelName"`
	Description   *string  `json:"description,omitempty"`
	Location      string   `json:"location"`
	ContactNumber string   `json:"contactNumber"`
	Rating        *float64 `json:"rating,omitempty"`
}

type RoomDTO struct {
	RoomID       int64   `json:"roomId"`
	HotelID      int64   `json:"hotelId"`
	RoomType     string  `json:"roomType"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
	Description  *string `json:"description,omitempty"`
}

type ReservationDTO struct {
	ReservationID int64     `json:"reservationId"`
	UserID        int64     `json:"userId"`
	HotelID       int64     `json:"hotelId"`
	RoomID        int64     `json:"roomId"`
	CheckInDate   Timestamp `json:"checkInDate"`
	CheckOutDate  Timestamp `json:"checkOutDate"`
	Status        string    `json:"status,omitempty"`
}

type UpdateReservationDTO struct {
	Status       string     `json:"status"`
	RoomID       *int64     `json:"roomId,omitempty"`
	CheckInDate  *Timestamp `json:"checkInDate,omitempty"`
	CheckOutDate *Timestamp `json:"checkOutDate,omitempty"`
}

type ReviewDTO struct {
	ReviewID   int64     `json:"reviewId"`
	UserID     int64     `json:"userId"`
	HotelID    int64     `json:"hotelId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	ReviewDate time.Time `json:"reviewDate"`
}

type PaymentDTO struct {
	PaymentID     int64     `json:"paymentId"`
	UserID        int64     `json:"userId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	Date          time.Time `json:"date"`
}

type ProcessPaymentDTO struct {
	UserID         int64   `json:"userId"`
	Amount         float64 `json:"amount"`
	CardNumber     string  `json:"cardNumber"`
	ExpirationDate string  `json:"expirationDate"`
	CVV            string  `json:"cvv"`
}

// UserDTO never carries the password hash.
type UserDTO struct {
	UserID      int64   `json:"userId"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     *string `json:"address,omitempty"`
	Role        string  `json:"role"`
}

type UserRegisterDTO struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       string  `json:"email"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     *string `json:"address,omitempty"`
	Role        string  `json:"role,omitempty"`
}

type UserLoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    int64     `json:"userId"`
}

/********** translation pairs **********/

func HotelToDTO(h domain.Hotel) HotelDTO {
	return HotelDTO{
		HotelID:       h.ID,
		HotelName:     h.Name,
		Description:   h.Description,
		Location:      h.Location,
		ContactNumber: h.ContactNumber,
		Rating:        h.Rating,
	}
}

func HotelFromDTO(d HotelDTO) domain.Hotel {
	return domain.Hotel{
		ID:            d.HotelID,
		Name:          d.HotelName,
		Description:   d.Description,
		Location:      d.Location,
		ContactNumber: d.ContactNumber,
		Rating:        d.Rating,
	}
}

func RoomToDTO(r domain.Room) RoomDTO {
	return RoomDTO{
		RoomID:       r.ID,
		HotelID:      r.HotelID,
		RoomType:     r.RoomType,
		Price:        r.Price,
		Availability: r.Availability,
		Description:  r.Description,
	}
}

func RoomFromDTO(d RoomDTO) domain.Room {
	return domain.Room{
		ID:           d.RoomID,
		HotelID:      d.HotelID,
		RoomType:     d.RoomType,
		Price:        d.Price,
		Availability: d.Availability,
		Description:  d.Description,
	}
}

func ReservationToDTO(r domain.Reservation) ReservationDTO {
	return ReservationDTO{
		ReservationID: r.ID,
		UserID:        r.UserID,
		HotelID:       r.HotelID,
		RoomID:        r.RoomID,
		CheckInDate:   Timestamp{r.CheckIn},
		CheckOutDate:  Timestamp{r.CheckOut},
		Status:        string(r.Status),
	}
}

// ReservationFromDTO copies the status verbatim; the lifecycle decides what to keep.
func ReservationFromDTO(d ReservationDTO) domain.Reservation {
	return domain.Reservation{
		ID:       d.ReservationID,
		UserID:   d.UserID,
		HotelID:  d.HotelID,
		RoomID:   d.RoomID,
		CheckIn:  d.CheckInDate.Time,
		CheckOut: d.CheckOutDate.Time,
		Status:   domain.ReservationStatus(d.Status),
	}
}

func ReservationUpdateFromDTO(d UpdateReservationDTO) ReservationUpdate {
	u := ReservationUpdate{Status: d.Status, RoomID: d.RoomID}
	if d.CheckInDate != nil {
		u.CheckIn = &d.CheckInDate.Time
	}
	if d.CheckOutDate != nil {
		u.CheckOut = &d.CheckOutDate.Time
	}
	return u
}

func ReviewToDTO(r domain.Review) ReviewDTO {
	return ReviewDTO{
		ReviewID:   r.ID,
		UserID:     r.UserID,
		HotelID:    r.HotelID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewDate: r.ReviewDate,
	}
}

func ReviewFromDTO(d ReviewDTO) domain.Review {
	return domain.Review{
		ID:         d.ReviewID,
		UserID:     d.UserID,
		HotelID:    d.HotelID,
		Rating:     d.Rating,
		Comment:    d.Comment,
		ReviewDate: d.ReviewDate,
	}
}

func PaymentToDTO(p domain.Payment) PaymentDTO {
	return PaymentDTO{
		PaymentID:     p.ID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		Date:          p.Date,
	}
}

func PaymentRequestFromDTO(d ProcessPaymentDTO) PaymentRequest {
	return PaymentRequest{
		UserID:         d.UserID,
		Amount:         d.Amount,
		CardNumber:     d.CardNumber,
		ExpirationDate: d.ExpirationDate,
		CVV:            d.CVV,
	}
}

func UserToDTO(u domain.User) UserDTO {
	return UserDTO{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Role:        string(u.Role),
	}
}

func RegistrationFromDTO(d UserRegisterDTO) Registration {
	return Registration{
		Username:    d.Username,
		Password:    d.Password,
		Email:       d.Email,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		PhoneNumber: d.PhoneNumber,
		Address:     d.Address,
		Role:        d.Role,
	}
}

// ProfileFromDTO reuses Registration; password and role are ignored by UpdateProfile.
func ProfileFromDTO(d UserDTO) Registration {
	return Registration{
		Username:    d.Username,
		Email:       d.Email,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		PhoneNumber: d.PhoneNumber,
		Address:     d.Address,
	}
}

/********** slice helpers **********/

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func HotelsToDTO(hs []domain.Hotel) []HotelDTO { return mapSlice(hs, HotelToDTO) }
func RoomsToDTO(rs []domain.Room) []RoomDTO    { return mapSlice(rs, RoomToDTO) }
func ReservationsToDTO(rs []domain.Reservation) []ReservationDTO {
	return mapSlice(rs, ReservationToDTO)
}
func ReviewsToDTO(rs []domain.Review) []ReviewDTO    { return mapSlice(rs, ReviewToDTO) }
func PaymentsToDTO(ps []domain.Payment) []PaymentDTO { return mapSlice(ps, PaymentToDTO) }
