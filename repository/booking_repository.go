package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"realpix-media/db"
	"realpix-media/models"
	"realpix-media/utils"
)

// BookingRepository handles database operations for bookings
type BookingRepository struct{}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// Ensure BookingRepository implements BookingRepositoryInterface
var _ BookingRepositoryInterface = (*BookingRepository)(nil)

func nullableString(p *string) sql.NullString {
	if p == nil || strings.TrimSpace(*p) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// Create inserts a booking with its line items in one transaction. The line
// items are the price snapshot taken at submission; they are stored verbatim
// and never re-derived from the catalog.
func (r *BookingRepository) Create(ctx context.Context, payload *models.BookingPayload) (*models.Booking, error) {
	log.Printf("📦 Create: Creating booking reference=%s, total=%d", payload.ReferenceNumber, payload.TotalAmount)

	if strings.TrimSpace(payload.ReferenceNumber) == "" {
		return nil, fmt.Errorf("reference_number cannot be empty")
	}
	if strings.TrimSpace(payload.AgentName) == "" {
		return nil, fmt.Errorf("agent_name cannot be empty")
	}
	if len(payload.Services) == 0 {
		return nil, fmt.Errorf("booking has no line items")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryBooking := `
		INSERT INTO bookings (reference_number, status, property_size, total_amount,
		                      agent_name, agent_email, agent_phone, agent_company,
		                      address, city, province, postal_code,
		                      property_type, bedrooms, bathrooms,
		                      preferred_date, time_slot, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at::text, updated_at::text
	`

	var booking models.Booking
	var createdAt, updatedAt string

	err = tx.QueryRowContext(ctx, queryBooking,
		payload.ReferenceNumber,
		payload.Status,
		payload.PropertySize,
		payload.TotalAmount,
		payload.AgentName,
		payload.AgentEmail,
		nullableString(payload.AgentPhone),
		nullableString(payload.AgentCompany),
		payload.Address,
		nullableString(payload.City),
		nullableString(payload.Province),
		nullableString(payload.PostalCode),
		nullableString(payload.PropertyType),
		payload.Bedrooms,
		payload.Bathrooms,
		nullableString(payload.PreferredDate),
		nullableString(payload.TimeSlot),
		nullableString(payload.Notes),
	).Scan(&booking.ID, &createdAt, &updatedAt)

	if err != nil {
		log.Printf("❌ Create: Error inserting booking: %v", err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	queryLine := `
		INSERT INTO booking_line_items (booking_id, position, name, unit_price, qty, line_total, per_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, line := range payload.Services {
		if _, err := tx.ExecContext(ctx, queryLine,
			booking.ID, i, line.Name, line.UnitPrice, line.Qty, line.LineTotal, line.PerImage,
		); err != nil {
			log.Printf("❌ Create: Error inserting line %d: %v", i, err)
			return nil, fmt.Errorf("failed to insert line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	booking.ReferenceNumber = payload.ReferenceNumber
	booking.Status = payload.Status
	booking.PropertySize = payload.PropertySize
	booking.TotalAmount = payload.TotalAmount
	booking.AgentName = payload.AgentName
	booking.AgentEmail = payload.AgentEmail
	booking.Address = payload.Address
	booking.CreatedAt = createdAt
	booking.UpdatedAt = updatedAt
	if payload.AgentPhone != nil {
		booking.AgentPhone = *payload.AgentPhone
	}
	if payload.AgentCompany != nil {
		booking.AgentCompany = *payload.AgentCompany
	}
	if payload.PostalCode != nil {
		booking.PostalCode = *payload.PostalCode
	}

	log.Printf("✅ Create: Successfully created booking id=%d reference=%s", booking.ID, booking.ReferenceNumber)
	return &booking, nil
}

const bookingColumns = `
	id, reference_number, status, property_size, total_amount,
	agent_name, agent_email, agent_phone, agent_company,
	address, city, province, postal_code,
	property_type, COALESCE(bedrooms, 0), COALESCE(bathrooms, 0),
	preferred_date, time_slot, notes, created_at::text, updated_at::text
`

func scanBooking(row interface{ Scan(...interface{}) error }) (*models.Booking, error) {
	var b models.Booking
	var agentPhone, agentCompany, city, province, postalCode sql.NullString
	var propertyType, preferredDate, timeSlot, notes sql.NullString

	err := row.Scan(
		&b.ID, &b.ReferenceNumber, &b.Status, &b.PropertySize, &b.TotalAmount,
		&b.AgentName, &b.AgentEmail, &agentPhone, &agentCompany,
		&b.Address, &city, &province, &postalCode,
		&propertyType, &b.Bedrooms, &b.Bathrooms,
		&preferredDate, &timeSlot, &notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.AgentPhone = agentPhone.String
	b.AgentCompany = agentCompany.String
	b.City = city.String
	b.Province = province.String
	b.PostalCode = postalCode.String
	b.PropertyType = propertyType.String
	b.PreferredDate = preferredDate.String
	b.TimeSlot = timeSlot.String
	b.Notes = notes.String
	return &b, nil
}

// GetByReference retrieves a booking and its line items by reference code
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	log.Printf("📦 GetByReference: Fetching booking reference=%s", reference)

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference_number = $1`
	booking, err := scanBooking(db.DB.QueryRowContext(ctx, query, reference))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetByReference: Booking not found: reference=%s", reference)
			return nil, fmt.Errorf("booking not found")
		}
		log.Printf("❌ GetByReference: Error fetching booking: %v", err)
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return r.withLines(ctx, booking)
}

// GetByID retrieves a booking by its raw numeric id (legacy confirmation links)
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	log.Printf("📦 GetByID: Fetching booking id=%d", id)

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	booking, err := scanBooking(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetByID: Booking not found: id=%d", id)
			return nil, fmt.Errorf("booking not found")
		}
		log.Printf("❌ GetByID: Error fetching booking: %v", err)
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return r.withLines(ctx, booking)
}

func (r *BookingRepository) withLines(ctx context.Context, booking *models.Booking) (*models.BookingResponse, error) {
	queryLines := `
		SELECT name, unit_price, qty, line_total, per_image
		FROM booking_line_items
		WHERE booking_id = $1
		ORDER BY position ASC
	`
	rows, err := db.DB.QueryContext(ctx, queryLines, booking.ID)
	if err != nil {
		log.Printf("❌ withLines: Error fetching lines: %v", err)
		return nil, fmt.Errorf("failed to fetch line items: %w", err)
	}
	defer rows.Close()

	var lines []models.LineItem
	for rows.Next() {
		var line models.LineItem
		if err := rows.Scan(&line.Name, &line.UnitPrice, &line.Qty, &line.LineTotal, &line.PerImage); err != nil {
			log.Printf("❌ withLines: Error scanning line: %v", err)
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		log.Printf("❌ withLines: Error iterating lines: %v", err)
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}

	log.Printf("✅ withLines: Fetched booking id=%d with %d lines", booking.ID, len(lines))
	return &models.BookingResponse{
		Booking:        *booking,
		Lines:          lines,
		TotalFormatted: utils.FormatUSD(booking.TotalAmount),
	}, nil
}

// List retrieves bookings filtered by status, newest first
func (r *BookingRepository) List(ctx context.Context, status *string) ([]models.BookingListItem, error) {
	log.Printf("📦 List: Fetching bookings with status=%v", status)

	query := `
		SELECT b.id, b.reference_number, b.status, b.property_size, b.total_amount,
		       b.agent_name, b.agent_email, b.agent_phone, b.agent_company,
		       b.address, b.city, b.province, b.postal_code,
		       b.property_type, COALESCE(b.bedrooms, 0), COALESCE(b.bathrooms, 0),
		       b.preferred_date, b.time_slot, b.notes, b.created_at::text, b.updated_at::text,
		       COUNT(li.id) as line_count
		FROM bookings b
		LEFT JOIN booking_line_items li ON b.id = li.booking_id
	`
	var args []interface{}
	if status != nil && *status != "" {
		query += ` WHERE b.status = $1`
		args = append(args, *status)
	}
	query += `
		GROUP BY b.id
		ORDER BY b.created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error fetching bookings: %v", err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.BookingListItem
	for rows.Next() {
		var item models.BookingListItem
		var agentPhone, agentCompany, city, province, postalCode sql.NullString
		var propertyType, preferredDate, timeSlot, notes sql.NullString

		err := rows.Scan(
			&item.ID, &item.ReferenceNumber, &item.Status, &item.PropertySize, &item.TotalAmount,
			&item.AgentName, &item.AgentEmail, &agentPhone, &agentCompany,
			&item.Address, &city, &province, &postalCode,
			&propertyType, &item.Bedrooms, &item.Bathrooms,
			&preferredDate, &timeSlot, &notes, &item.CreatedAt, &item.UpdatedAt,
			&item.LineCount,
		)
		if err != nil {
			log.Printf("❌ List: Error scanning booking: %v", err)
			continue
		}

		item.AgentPhone = agentPhone.String
		item.AgentCompany = agentCompany.String
		item.City = city.String
		item.Province = province.String
		item.PostalCode = postalCode.String
		item.PropertyType = propertyType.String
		item.PreferredDate = preferredDate.String
		item.TimeSlot = timeSlot.String
		item.Notes = notes.String
		bookings = append(bookings, item)
	}
	if err := rows.Err(); err != nil {
		log.Printf("❌ List: Error iterating bookings: %v", err)
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	log.Printf("✅ List: Successfully fetched %d bookings", len(bookings))
	return bookings, nil
}

// UpdateStatus transitions a booking between statuses. Only pending bookings
// can move, to confirmed or cancelled.
func (r *BookingRepository) UpdateStatus(ctx context.Context, reference string, status string) (*models.Booking, error) {
	log.Printf("📦 UpdateStatus: Updating booking reference=%s to status=%s", reference, status)

	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized != "confirmed" && normalized != "cancelled" {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var currentStatus string
	queryCurrent := `SELECT status FROM bookings WHERE reference_number = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, queryCurrent, reference).Scan(&currentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ UpdateStatus: Booking not found: reference=%s", reference)
			return nil, fmt.Errorf("booking not found")
		}
		log.Printf("❌ UpdateStatus: Error fetching booking: %v", err)
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	if currentStatus != "pending" {
		log.Printf("❌ UpdateStatus: Booking not in pending status: status=%s", currentStatus)
		return nil, fmt.Errorf("booking not in pending status")
	}

	queryUpdate := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE reference_number = $2
		RETURNING ` + bookingColumns
	booking, err := scanBooking(tx.QueryRowContext(ctx, queryUpdate, normalized, reference))
	if err != nil {
		log.Printf("❌ UpdateStatus: Error updating booking: %v", err)
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ UpdateStatus: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ UpdateStatus: Successfully updated booking reference=%s to %s", reference, normalized)
	return booking, nil
}
