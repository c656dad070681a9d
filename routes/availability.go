package routes

import (
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/stay"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

// GetPropertyCalendar returns the month view: per-day status (booked >
// blocked > available) with the resolved nightly price. Guest names are only
// included for the property owner or an admin.
func GetPropertyCalendar(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	monthStr := ctx.URLParam("month")
	first, err := time.Parse("2006-01", monthStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "month must be formatted as YYYY-MM", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	monthRange := stay.DateRange{
		CheckIn:  time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0),
	}

	var bookings []models.Booking
	res := storage.DB.Preload("Guest").
		Where("property_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			property.ID, stay.ActiveStatuses, monthRange.CheckOut, monthRange.CheckIn).
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	blocks, err := blockedRanges(storage.DB, property.ID, monthRange)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	rates, err := rateCardFor(storage.DB, &property, monthRange)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	isOwner := claims.ID == property.HostID || claims.Role == "admin" || claims.Role == "super_admin"

	spans := make([]stay.BookingSpan, 0, len(bookings))
	for _, b := range bookings {
		span := stay.BookingSpan{
			ID:    b.ID,
			Range: stay.NewDateRange(b.CheckIn, b.CheckOut),
		}
		if isOwner && b.Guest != nil {
			span.GuestName = strings.TrimSpace(b.Guest.FirstName + " " + b.Guest.LastName)
		}
		spans = append(spans, span)
	}

	days := stay.BuildMonth(first.Year(), first.Month(), spans, blocks, rates)

	ctx.JSON(iris.Map{
		"propertyID": property.ID,
		"month":      monthStr,
		"days":       days,
	})
}

// Blocked dates

type BlockedDateInput struct {
	StartDate     string `json:"startDate" validate:"required"`
	EndDate       string `json:"endDate" validate:"required"`
	Reason        string `json:"reason"`
	IsMaintenance bool   `json:"isMaintenance"`
}

func GetBlockedDates(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var blocks []models.BlockedDate
	res := storage.DB.Where("property_id = ?", propertyID).Order("start_date ASC").Find(&blocks)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(blocks)
}

func CreateBlockedDate(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input BlockedDateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	r, ok := parseStayRange(input.StartDate, input.EndDate, ctx)
	if !ok {
		return
	}
	if !r.Valid() {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate must be before endDate", ctx)
		return
	}

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

	block := models.BlockedDate{
		PropertyID:    property.ID,
		StartDate:     r.CheckIn,
		EndDate:       r.CheckOut,
		Reason:        input.Reason,
		IsMaintenance: input.IsMaintenance,
	}

	if err := storage.DB.Create(&block).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(block)
}

func DeleteBlockedDate(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	blockID := ctx.Params().GetUintDefault("blockID", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var block models.BlockedDate
	if err := storage.DB.Preload("Property").
		Where("id = ? AND property_id = ?", blockID, propertyID).First(&block).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := &models.User{Model: gorm.Model{ID: claims.ID}, Role: claims.Role}
	if !utils.Can(actor, utils.ActionDelete, &block) {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&block).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// Custom prices

type CustomPriceInput struct {
	Date  string  `json:"date" validate:"required"`
	Price float64 `json:"price" validate:"required,min=0"`
}

func GetCustomPrices(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var prices []models.CustomPrice
	res := storage.DB.Where("property_id = ?", propertyID).Order("date ASC").Find(&prices)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(prices)
}

// SetCustomPrice upserts the per-date override for a property.
func SetCustomPrice(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CustomPriceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	date, err := time.Parse(stay.DateLayout, input.Date)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "date must be a YYYY-MM-DD date", ctx)
		return
	}

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

	price := models.CustomPrice{
		PropertyID: property.ID,
		Date:       stay.Day(date),
		Price:      input.Price,
	}

	res := storage.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(&price)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(price)
}

func DeleteCustomPrice(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	dateStr := ctx.URLParam("date")
	date, err := time.Parse(stay.DateLayout, dateStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "date must be a YYYY-MM-DD date", ctx)
		return
	}

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

	res := storage.DB.Where("property_id = ? AND date = ?", property.ID, stay.Day(date)).
		Delete(&models.CustomPrice{})
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
