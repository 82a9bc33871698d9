package domain

type Hotel struct {
	ID            int64
	Name          string
	Description   *string
	Location      string
	ContactNumber string
	Rating        *float64 // 0..5
}

type Room struct {
	ID           int64
	HotelID      int64
	RoomType     string
	Price        float64
	Availability bool // administrator-set baseline, never touched by bookings
	Description  *string
}
