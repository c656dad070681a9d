package routes

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"

	"github.com/anemettemadsen33/RentHub-sub010/config"
	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/services"
	"github.com/anemettemadsen33/RentHub-sub010/stay"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

type CalculateBookingInput struct {
	PropertyID uint   `json:"property_id" validate:"required"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	Guests     int    `json:"guests" validate:"required,min=1"`
}

type CreateBookingInput struct {
	CheckIn   string `json:"checkIn" validate:"required"`
	CheckOut  string `json:"checkOut" validate:"required"`
	NumGuests int    `json:"numGuests" validate:"required,min=1"`
	Note      string `json:"note"`
}

func parseStayRange(checkIn, checkOut string, ctx iris.Context) (stay.DateRange, bool) {
	in, err := time.Parse(stay.DateLayout, checkIn)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkIn must be a YYYY-MM-DD date", ctx)
		return stay.DateRange{}, false
	}
	out, err := time.Parse(stay.DateLayout, checkOut)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkOut must be a YYYY-MM-DD date", ctx)
		return stay.DateRange{}, false
	}
	return stay.NewDateRange(in, out), true
}

// rateCardFor assembles the calculator input from the property row and its
// per-date overrides within the range.
func rateCardFor(db *gorm.DB, property *models.Property, r stay.DateRange) (stay.RateCard, error) {
	var overrides []models.CustomPrice
	err := db.Where("property_id = ? AND date >= ? AND date < ?",
		property.ID, r.CheckIn, r.CheckOut).Find(&overrides).Error
	if err != nil {
		return stay.RateCard{}, err
	}

	customPrices := make(map[string]float64, len(overrides))
	for _, o := range overrides {
		customPrices[stay.Day(o.Date).Format(stay.DateLayout)] = o.Price
	}

	return stay.RateCard{
		NightlyPrice:    property.NightlyPrice,
		CleaningFee:     property.CleaningFee,
		SecurityDeposit: property.SecurityDeposit,
		MinNights:       property.MinNights,
		MaxNights:       property.MaxNights,
		MaxGuests:       property.MaxGuests,
		CustomPrices:    customPrices,
	}, nil
}

// activeBookingRanges loads active bookings colliding with r, mirroring the
// half-open predicate: existing.check_in < checkOut AND existing.check_out > checkIn.
// excludeID skips the booking being re-confirmed.
func activeBookingRanges(db *gorm.DB, propertyID uint, r stay.DateRange, excludeID uint) ([]stay.DateRange, error) {
	var bookings []models.Booking
	q := db.Where("property_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
		propertyID, stay.ActiveStatuses, r.CheckOut, r.CheckIn)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}

	ranges := make([]stay.DateRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, stay.NewDateRange(b.CheckIn, b.CheckOut))
	}
	return ranges, nil
}

func blockedRanges(db *gorm.DB, propertyID uint, r stay.DateRange) ([]stay.DateRange, error) {
	var blocks []models.BlockedDate
	err := db.Where("property_id = ? AND start_date < ? AND end_date > ?",
		propertyID, r.CheckOut, r.CheckIn).Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	ranges := make([]stay.DateRange, 0, len(blocks))
	for _, b := range blocks {
		ranges = append(ranges, stay.NewDateRange(b.StartDate, b.EndDate))
	}
	return ranges, nil
}

// isRangeAvailable is the availability check: free of active bookings and
// blocked dates. Read-only.
func isRangeAvailable(db *gorm.DB, propertyID uint, r stay.DateRange, excludeID uint) (bool, error) {
	bookings, err := activeBookingRanges(db, propertyID, r, excludeID)
	if err != nil {
		return false, err
	}
	if stay.AnyOverlap(r, bookings) {
		return false, nil
	}

	blocks, err := blockedRanges(db, propertyID, r)
	if err != nil {
		return false, err
	}
	return !stay.AnyOverlap(r, blocks), nil
}

func isExclusionViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "bookings_no_overlap")
}

// CalculateBooking prices a prospective stay without writing anything.
func CalculateBooking(cfg *config.Config) iris.Handler {
	return func(ctx iris.Context) {
		var input CalculateBookingInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		r, ok := parseStayRange(input.CheckIn, input.CheckOut, ctx)
		if !ok {
			return
		}

		var property models.Property
		if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
			utils.CreateNotFound(ctx)
			return
		}

		rates, err := rateCardFor(storage.DB, &property, r)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		quote, err := stay.Calculate(rates, stay.TaxPolicy{RatePercent: cfg.TaxRatePercent}, r, input.Guests)
		if err != nil {
			if inputErr := stay.IsInputError(err); inputErr != nil {
				utils.CreateInputError(inputErr, ctx)
				return
			}
			utils.CreateInternalServerError(ctx)
			return
		}

		available, err := isRangeAvailable(storage.DB, property.ID, r, 0)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		ctx.JSON(iris.Map{
			"quote":     quote,
			"available": available,
			"currency":  property.Currency,
		})
	}
}

// CreateBooking reserves a stay. The availability check and the insert run
// inside one transaction holding an advisory lock on the property, so two
// guests racing for the same range cannot both succeed.
func CreateBooking(cfg *config.Config) iris.Handler {
	return func(ctx iris.Context) {
		propertyID := ctx.Params().GetUintDefault("id", 0)
		claims := jwt.Get(ctx).(*utils.AccessToken)

		var input CreateBookingInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		r, ok := parseStayRange(input.CheckIn, input.CheckOut, ctx)
		if !ok {
			return
		}

		var property models.Property
		if err := storage.DB.First(&property, propertyID).Error; err != nil {
			utils.CreateNotFound(ctx)
			return
		}

		rates, err := rateCardFor(storage.DB, &property, r)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		quote, err := stay.Calculate(rates, stay.TaxPolicy{RatePercent: cfg.TaxRatePercent}, r, input.NumGuests)
		if err != nil {
			if inputErr := stay.IsInputError(err); inputErr != nil {
				utils.CreateInputError(inputErr, ctx)
				return
			}
			utils.CreateInternalServerError(ctx)
			return
		}

		booking := models.Booking{
			Reference:       uuid.NewString(),
			PropertyID:      property.ID,
			GuestID:         claims.ID,
			CheckIn:         r.CheckIn,
			CheckOut:        r.CheckOut,
			NumGuests:       input.NumGuests,
			Nights:          quote.Nights,
			Subtotal:        quote.Subtotal,
			CleaningFee:     quote.CleaningFee,
			SecurityDeposit: quote.SecurityDeposit,
			Taxes:           quote.Taxes,
			TotalPrice:      quote.TotalPrice,
			Status:          stay.StatusPending,
			Note:            input.Note,
			ExpiresAt:       time.Now().Add(time.Duration(cfg.PendingExpiryHours) * time.Hour),
		}

		err = storage.DB.Transaction(func(tx *gorm.DB) error {
			// Serialize all booking writes per property.
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(property.ID)).Error; err != nil {
				return err
			}

			available, err := isRangeAvailable(tx, property.ID, r, 0)
			if err != nil {
				return err
			}
			if !available {
				return stay.ErrConflict
			}

			return tx.Create(&booking).Error
		})

		if err != nil {
			if errors.Is(err, stay.ErrConflict) || isExclusionViolation(err) {
				utils.CreateBookingConflict(ctx)
				return
			}
			utils.CreateInternalServerError(ctx)
			return
		}

		storage.DB.Preload("Property").Preload("Guest").First(&booking, booking.ID)

		var guest models.User
		if err := storage.DB.First(&guest, claims.ID).Error; err == nil {
			guestName := strings.TrimSpace(guest.FirstName + " " + guest.LastName)
			notificationService := services.NewNotificationService()
			go notificationService.NotifyBookingRequested(&booking, &property, guestName)
		}

		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(booking)
	}
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled checked_in checked_out completed"`
}

// UpdateBookingStatus moves a booking through its lifecycle. Confirmation
// re-checks availability under the same advisory lock as creation: pending
// requests do not hold dates, so the range may have been taken meanwhile.
func UpdateBookingStatus(cfg *config.Config) iris.Handler {
	return func(ctx iris.Context) {
		bookingID := ctx.Params().GetUintDefault("id", 0)
		claims := jwt.Get(ctx).(*utils.AccessToken)

		var input UpdateBookingStatusInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		var booking models.Booking
		if err := storage.DB.Preload("Property").First(&booking, bookingID).Error; err != nil {
			utils.CreateNotFound(ctx)
			return
		}

		actor := &models.User{Model: gorm.Model{ID: claims.ID}, Role: claims.Role}
		action := utils.ActionUpdate
		if input.Status == stay.StatusCancelled {
			action = utils.ActionCancel
		} else if input.Status == stay.StatusConfirmed {
			action = utils.ActionConfirm
		}
		if !utils.Can(actor, action, &booking) {
			utils.CreateForbidden(ctx)
			return
		}

		if !stay.CanTransition(booking.Status, input.Status) {
			utils.CreateError(iris.StatusBadRequest, "Invalid Transition",
				"Cannot move booking from "+booking.Status+" to "+input.Status, ctx)
			return
		}

		if input.Status == stay.StatusConfirmed && !stay.ConfirmWindowOpen(booking.ExpiresAt, time.Now()) {
			utils.CreateError(iris.StatusConflict, "Conflict Error",
				"The booking request has expired and can no longer be confirmed.", ctx)
			return
		}

		now := time.Now()
		err := storage.DB.Transaction(func(tx *gorm.DB) error {
			if input.Status == stay.StatusConfirmed {
				if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(booking.PropertyID)).Error; err != nil {
					return err
				}

				r := stay.NewDateRange(booking.CheckIn, booking.CheckOut)
				available, err := isRangeAvailable(tx, booking.PropertyID, r, booking.ID)
				if err != nil {
					return err
				}
				if !available {
					return stay.ErrConflict
				}
				booking.ConfirmedAt = &now
			}
			if input.Status == stay.StatusCancelled {
				booking.CancelledAt = &now
			}

			booking.Status = input.Status
			return tx.Save(&booking).Error
		})

		if err != nil {
			if errors.Is(err, stay.ErrConflict) || isExclusionViolation(err) {
				utils.CreateBookingConflict(ctx)
				return
			}
			utils.CreateInternalServerError(ctx)
			return
		}

		if booking.Property != nil {
			notificationService := services.NewNotificationService()
			go notificationService.NotifyBookingStatus(&booking, booking.Property, booking.Status)
		}

		ctx.JSON(booking)
	}
}

// GetBooking returns one booking to its guest, host or an admin.
func GetBooking(ctx iris.Context) {
	bookingID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var booking models.Booking
	if err := storage.DB.Preload("Property").Preload("Guest").First(&booking, bookingID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := &models.User{Model: gorm.Model{ID: claims.ID}, Role: claims.Role}
	if !utils.Can(actor, utils.ActionView, &booking) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(booking)
}

// GetUserBookings lists the authenticated guest's bookings.
func GetUserBookings(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var bookings []models.Booking
	res := storage.DB.Preload("Property").Preload("Property.Host").
		Where("guest_id = ?", claims.ID).
		Order("created_at DESC").Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetHostBookings lists bookings across all properties owned by the host.
func GetHostBookings(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var bookings []models.Booking
	res := storage.DB.
		Joins("JOIN properties p ON p.id = bookings.property_id").
		Where("p.host_id = ?", claims.ID).
		Preload("Property").
		Preload("Guest").
		Order("bookings.created_at DESC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetBookingsByPropertyID lists a property's bookings for its owner.
func GetBookingsByPropertyID(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := &models.User{Model: gorm.Model{ID: claims.ID}, Role: claims.Role}
	if !utils.Can(actor, utils.ActionUpdate, &property) {
		utils.CreateForbidden(ctx)
		return
	}

	var bookings []models.Booking
	res := storage.DB.Preload("Guest").
		Where("property_id = ?", propertyID).
		Order("check_in ASC").Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}
