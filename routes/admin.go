package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/services"
	"github.com/anemettemadsen33/RentHub-sub010/stay"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

// AdminListBookings lists bookings across the marketplace with optional
// status filtering.
func AdminListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	status := ctx.URLParam("status")

	q := storage.DB.Model(&models.Booking{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var bookings []models.Booking
	res := q.Preload("Property").Preload("Guest").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

func AdminGetBooking(ctx iris.Context) {
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.Preload("Property").Preload("Property.Host").Preload("Guest").
		First(&booking, bookingID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(booking)
}

// AdminCancelBooking force-cancels a booking, bypassing the usual
// host/guest transition rules but still refusing terminal states.
func AdminCancelBooking(ctx iris.Context) {
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.Preload("Property").First(&booking, bookingID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if booking.Status == stay.StatusCompleted || booking.Status == stay.StatusCancelled {
		utils.CreateError(iris.StatusBadRequest, "Invalid Transition",
			"Booking is already in a terminal state.", ctx)
		return
	}

	before := booking
	now := time.Now()
	booking.Status = stay.StatusCancelled
	booking.CancelledAt = &now

	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "booking.cancel", "booking", booking.ID, before, booking)

	if booking.Property != nil {
		notificationService := services.NewNotificationService()
		go notificationService.NotifyBookingStatus(&booking, booking.Property, booking.Status)
	}

	ctx.JSON(booking)
}

type AdminUpdatePropertyStatusInput struct {
	Status      string `json:"status" validate:"required,oneof=pending approved rejected"`
	ReviewNotes string `json:"reviewNotes"`
}

// AdminUpdatePropertyStatus moderates a listing.
func AdminUpdatePropertyStatus(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var input AdminUpdatePropertyStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := property
	property.Status = input.Status
	property.ReviewNotes = input.ReviewNotes

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.status", "property", property.ID, before, property)

	ctx.JSON(property)
}

// AdminStats aggregates marketplace counts for the dashboard.
func AdminStats(ctx iris.Context) {
	var users, properties, bookings int64
	storage.DB.Model(&models.User{}).Count(&users)
	storage.DB.Model(&models.Property{}).Count(&properties)
	storage.DB.Model(&models.Booking{}).Count(&bookings)

	bookingsByStatus := map[string]int64{}
	for _, status := range []string{
		stay.StatusPending, stay.StatusConfirmed, stay.StatusCheckedIn,
		stay.StatusCheckedOut, stay.StatusCompleted, stay.StatusCancelled,
	} {
		var n int64
		storage.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&n)
		bookingsByStatus[status] = n
	}

	var revenue float64
	storage.DB.Model(&models.Booking{}).
		Where("status IN ?", []string{stay.StatusCheckedOut, stay.StatusCompleted}).
		Select("COALESCE(SUM(total_price), 0)").Scan(&revenue)

	ctx.JSON(iris.Map{
		"users":            users,
		"properties":       properties,
		"bookings":         bookings,
		"bookingsByStatus": bookingsByStatus,
		"revenue":          revenue,
	})
}
