package repository

import (
	"context"

	"realpix-media/models"
)

// BookingRepositoryInterface defines the contract for booking repository operations
type BookingRepositoryInterface interface {
	Create(ctx context.Context, payload *models.BookingPayload) (*models.Booking, error)
	GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error)
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
	List(ctx context.Context, status *string) ([]models.BookingListItem, error)
	UpdateStatus(ctx context.Context, reference string, status string) (*models.Booking, error)
}
