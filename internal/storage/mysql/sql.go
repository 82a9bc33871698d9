package mysql

// -----------------------------------------------------------------------------
// HOTELS / ROOMS
// -----------------------------------------------------------------------------

const selectHotelSQL = `
SELECT hotel_id, hotel_name, description, location, contact_number, rating
FROM hotels
`

const insertHotelSQL = `
INSERT INTO hotels (hotel_name, description, location, contact_number, rating)
VALUES (?, ?, ?, ?, ?)
`

const updateHotelSQL = `
UPDATE hotels
SET hotel_name = ?, description = ?, location = ?, contact_number = ?, rating = ?
WHERE hotel_id = ?
`

const deleteHotelSQL = `DELETE FROM hotels WHERE hotel_id = ?`

const selectRoomSQL = `
SELECT room_id, hotel_id, room_type, price, availability, description
FROM rooms
`

const insertRoomSQL = `
INSERT INTO rooms (hotel_id, room_type, price, availability, description)
VALUES (?, ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE rooms
SET hotel_id = ?, room_type = ?, price = ?, availability = ?, description = ?
WHERE room_id = ?
`

const deleteRoomSQL = `DELETE FROM rooms WHERE room_id = ?`

// -----------------------------------------------------------------------------
// RESERVATIONS
// -----------------------------------------------------------------------------

const selectReservationSQL = `
SELECT reservation_id, user_id, hotel_id, room_id, check_in, check_out, status
FROM reservations
`

const insertReservationSQL = `
INSERT INTO reservations (user_id, hotel_id, room_id, check_in, check_out, status)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateReservationSQL = `
UPDATE reservations
SET user_id = ?, hotel_id = ?, room_id = ?, check_in = ?, check_out = ?, status = ?
WHERE reservation_id = ?
`

// Serializes bookings per room for the rest of the transaction.
const lockRoomSQL = `SELECT hotel_id FROM rooms WHERE room_id = ? FOR UPDATE`

// Same three clauses as domain.Overlaps. Args, in order:
// room_id, self id (0 on insert), in, in, out, out, in, out.
const countOverlapsSQL = `
SELECT COUNT(*)
FROM reservations
WHERE room_id = ?
  AND reservation_id <> ?
  AND status = 'confirmed'
  AND (
        (check_in <= ? AND ? < check_out)
     OR (check_in <  ? AND ? <= check_out)
     OR (? <= check_in AND ? >= check_out)
  )
`

// -----------------------------------------------------------------------------
// USERS / REVIEWS / PAYMENTS
// -----------------------------------------------------------------------------

const selectUserSQL = `
SELECT user_id, username, password_hash, email, first_name, last_name, phone_number, address, role
FROM users
`

const insertUserSQL = `
INSERT INTO users (username, password_hash, email, first_name, last_name, phone_number, address, role)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const updateUserSQL = `
UPDATE users
SET username = ?, password_hash = ?, email = ?, first_name = ?, last_name = ?,
    phone_number = ?, address = ?, role = ?
WHERE user_id = ?
`

const selectReviewSQL = `
SELECT review_id, user_id, hotel_id, rating, comment, review_date
FROM reviews
`

const insertReviewSQL = `
INSERT INTO reviews (user_id, hotel_id, rating, comment, review_date)
VALUES (?, ?, ?, ?, ?)
`

const updateReviewSQL = `
UPDATE reviews SET rating = ?, comment = ?, review_date = ? WHERE review_id = ?
`

const deleteReviewSQL = `DELETE FROM reviews WHERE review_id = ?`

const selectPaymentSQL = `
SELECT payment_id, user_id, amount, payment_status, payment_method, payment_date
FROM payments
`

const insertPaymentSQL = `
INSERT INTO payments (user_id, amount, payment_status, payment_method, payment_date)
VALUES (?, ?, ?, ?, ?)
`
