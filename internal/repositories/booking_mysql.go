package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"aviatickets/internal/domain"
	"aviatickets/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const mysqlDupEntry = 1062

// MySQLBookingStore persists bookings in the shared MySQL pool. The table
// is self-provisioned on first use; provider_booking_id uniqueness is
// enforced by a UNIQUE KEY so a colliding insert fails even when two
// requests race past the pre-check.
type MySQLBookingStore struct {
	DB *sql.DB

	once   sync.Once
	ddlErr error
}

func NewMySQLBookingStore(db *sql.DB) *MySQLBookingStore {
	return &MySQLBookingStore{DB: db}
}

func (s *MySQLBookingStore) Name() string { return "mysql" }

func (s *MySQLBookingStore) ensure() error {
	s.once.Do(func() {
		ddl := `
CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	provider_booking_id VARCHAR(128) NOT NULL,
	provider VARCHAR(32) NOT NULL,
	status VARCHAR(32) NOT NULL,
	from_code VARCHAR(16) NOT NULL DEFAULT '',
	to_code VARCHAR(16) NOT NULL DEFAULT '',
	service_date VARCHAR(10) NOT NULL DEFAULT '',
	flight_number VARCHAR(32) NOT NULL DEFAULT '',
	depart_time VARCHAR(8) NOT NULL DEFAULT '',
	arrive_time VARCHAR(8) NOT NULL DEFAULT '',
	return_date VARCHAR(10) NOT NULL DEFAULT '',
	round_trip TINYINT(1) NOT NULL DEFAULT 0,
	contact_name VARCHAR(255) NOT NULL DEFAULT '',
	contact_email VARCHAR(255) NOT NULL DEFAULT '',
	owner_email VARCHAR(255) NOT NULL DEFAULT '',
	passengers JSON NULL,
	price BIGINT NOT NULL DEFAULT 0,
	currency VARCHAR(8) NOT NULL DEFAULT 'RUB',
	payment_status VARCHAR(32) NOT NULL DEFAULT 'pending',
	seat VARCHAR(8) NOT NULL DEFAULT '',
	gate VARCHAR(8) NOT NULL DEFAULT '',
	boarding_time VARCHAR(8) NOT NULL DEFAULT '',
	raw JSON NULL,
	created_at VARCHAR(20) NOT NULL DEFAULT '',
	UNIQUE KEY uniq_provider_booking (provider_booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
		_, s.ddlErr = s.DB.Exec(ddl)
	})
	return s.ddlErr
}

func (s *MySQLBookingStore) Put(b models.Booking) error {
	if strings.TrimSpace(b.ID) == "" {
		return domain.ValidationError{Field: "id", Msg: "empty booking id"}
	}
	if strings.TrimSpace(b.ProviderBookingID) == "" {
		return domain.ValidationError{Field: "providerBookingId", Msg: "empty provider booking id"}
	}
	if err := s.ensure(); err != nil {
		return domain.InternalError{Err: err}
	}

	var holder string
	err := s.DB.QueryRow(`SELECT id FROM bookings WHERE provider_booking_id=? LIMIT 1`, b.ProviderBookingID).Scan(&holder)
	switch {
	case err == nil && holder != b.ID:
		return domain.ConflictError{Resource: "booking", Msg: "provider booking id already in use"}
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return domain.InternalError{Err: err}
	}

	passengers, _ := json.Marshal(b.Passengers)
	if len(b.Passengers) == 0 {
		passengers = nil
	}

	// Plain INSERT: a duplicate on uniq_provider_booking must surface as
	// 1062, never rewrite another record's row. Only a duplicate on the
	// primary key means "overwrite my own record".
	_, err = s.DB.Exec(`
INSERT INTO bookings
	(id, provider_booking_id, provider, status, from_code, to_code, service_date,
	 flight_number, depart_time, arrive_time, return_date, round_trip,
	 contact_name, contact_email, owner_email, passengers,
	 price, currency, payment_status, seat, gate, boarding_time, raw, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.ProviderBookingID, b.Provider, b.Status, b.From, b.To, b.Date,
		b.FlightNumber, b.DepartTime, b.ArriveTime, b.ReturnDate, b.RoundTrip,
		b.Contact.Name, b.Contact.Email, b.OwnerEmail, nullIfEmptyJSON(passengers),
		b.Price, b.Currency, b.PaymentStatus, b.Seat, b.Gate, b.BoardingTime,
		nullIfEmptyJSON(b.Raw), b.CreatedAt,
	)
	if err == nil {
		return nil
	}

	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDupEntry {
		return domain.InternalError{Err: err}
	}
	if strings.Contains(me.Message, "uniq_provider_booking") {
		return domain.ConflictError{Resource: "booking", Msg: "provider booking id already in use", Err: err}
	}

	// Duplicate primary key: this internal id already has a row, update
	// its mutable fields in place.
	_, err = s.DB.Exec(`
UPDATE bookings SET
	provider_booking_id=?, provider=?, status=?, seat=?, gate=?,
	boarding_time=?, payment_status=?, raw=?
WHERE id=?`,
		b.ProviderBookingID, b.Provider, b.Status, b.Seat, b.Gate,
		b.BoardingTime, b.PaymentStatus, nullIfEmptyJSON(b.Raw), b.ID,
	)
	if err != nil {
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return domain.ConflictError{Resource: "booking", Msg: "provider booking id already in use", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

const bookingColumns = `id, provider_booking_id, provider, status, from_code, to_code, service_date,
	flight_number, depart_time, arrive_time, return_date, round_trip,
	contact_name, contact_email, owner_email, COALESCE(passengers, ''),
	price, currency, payment_status, seat, gate, boarding_time, COALESCE(raw, ''), created_at`

func (s *MySQLBookingStore) GetByID(id string) (models.Booking, error) {
	if err := s.ensure(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	row := s.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

func (s *MySQLBookingStore) FindByProviderID(providerID string) (models.Booking, error) {
	if err := s.ensure(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	row := s.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE provider_booking_id=? LIMIT 1`, providerID)
	return scanBooking(row)
}

func (s *MySQLBookingStore) ListByOwner(ownerEmail string) ([]models.Booking, error) {
	if err := s.ensure(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	rows, err := s.DB.Query(`SELECT `+bookingColumns+` FROM bookings WHERE owner_email=? ORDER BY created_at DESC`, ownerEmail)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *MySQLBookingStore) UpdateStatus(providerID, status string) (models.Booking, error) {
	if err := s.ensure(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	res, err := s.DB.Exec(`UPDATE bookings SET status=? WHERE provider_booking_id=?`, status, providerID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Idempotent re-confirm reports zero affected rows; distinguish it
		// from a genuinely missing record.
		if _, ferr := s.FindByProviderID(providerID); ferr != nil {
			return models.Booking{}, ferr
		}
	}
	return s.FindByProviderID(providerID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b          models.Booking
		passengers string
		raw        string
	)
	err := row.Scan(
		&b.ID, &b.ProviderBookingID, &b.Provider, &b.Status, &b.From, &b.To, &b.Date,
		&b.FlightNumber, &b.DepartTime, &b.ArriveTime, &b.ReturnDate, &b.RoundTrip,
		&b.Contact.Name, &b.Contact.Email, &b.OwnerEmail, &passengers,
		&b.Price, &b.Currency, &b.PaymentStatus, &b.Seat, &b.Gate, &b.BoardingTime,
		&raw, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if passengers != "" {
		_ = json.Unmarshal([]byte(passengers), &b.Passengers)
	}
	if raw != "" {
		b.Raw = json.RawMessage(raw)
	}
	return b, nil
}

func nullIfEmptyJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}
