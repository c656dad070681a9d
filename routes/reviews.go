package routes

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"

	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/stay"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

type CreateReviewInput struct {
	BookingID uint   `json:"bookingID" validate:"required"`
	Title     string `json:"title" validate:"max=256"`
	Body      string `json:"body" validate:"required"`
	Stars     int    `json:"stars" validate:"required,min=1,max=5"`
}

// CreateReview lets a guest review a stay they have completed.
func CreateReview(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, input.BookingID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if booking.GuestID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	if booking.Status != stay.StatusCheckedOut && booking.Status != stay.StatusCompleted {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Only completed stays can be reviewed.", ctx)
		return
	}

	var existing models.Review
	if err := storage.DB.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict Error",
			"This stay has already been reviewed.", ctx)
		return
	}

	bookingID := booking.ID
	review := models.Review{
		UserID:     claims.ID,
		PropertyID: booking.PropertyID,
		BookingID:  &bookingID,
		Title:      input.Title,
		Body:       input.Body,
		Stars:      input.Stars,
		IsVerified: true,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	refreshPropertyRating(booking.PropertyID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

func GetPropertyReviews(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var reviews []models.Review
	res := storage.DB.Preload("User").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").Find(&reviews)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reviews)
}

func DeleteReview(ctx iris.Context) {
	reviewID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var review models.Review
	if err := storage.DB.First(&review, reviewID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := &models.User{Model: gorm.Model{ID: claims.ID}, Role: claims.Role}
	if !utils.Can(actor, utils.ActionDelete, &review) {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	refreshPropertyRating(review.PropertyID)

	ctx.JSON(iris.Map{"success": true})
}

// refreshPropertyRating recomputes the denormalized average on the property.
func refreshPropertyRating(propertyID uint) {
	var avg float32
	storage.DB.Model(&models.Review{}).
		Where("property_id = ?", propertyID).
		Select("COALESCE(AVG(stars), 0)").Scan(&avg)

	storage.DB.Model(&models.Property{}).
		Where("id = ?", propertyID).
		Update("rating", avg)
}
