package service

import (
	"context"

	"realpix-media/models"
)

// BookingServiceInterface defines the contract for booking submission and lookup
type BookingServiceInterface interface {
	Quote(req *models.QuoteRequest) (*models.QuoteResponse, error)
	Submit(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error)
	Lookup(ctx context.Context, reference string) (*models.BookingResponse, error)
}
