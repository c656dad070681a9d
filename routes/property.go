package routes

import (
	"encoding/json"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"

	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

type CreatePropertyInput struct {
	Title        string  `json:"title" validate:"required,max=256"`
	Description  string  `json:"description"`
	PropertyType string  `json:"propertyType" validate:"required,oneof=entire_place private_room shared_room"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	Country      string  `json:"country"`
	Lat          float32 `json:"lat"`
	Lng          float32 `json:"lng"`

	MaxGuests int     `json:"maxGuests" validate:"required,min=1,max=16"`
	Bedrooms  int     `json:"bedrooms" validate:"min=0"`
	Beds      int     `json:"beds" validate:"min=0"`
	Bathrooms float32 `json:"bathrooms" validate:"min=0"`

	NightlyPrice    float64 `json:"nightlyPrice" validate:"required,min=0"`
	CleaningFee     float64 `json:"cleaningFee" validate:"min=0"`
	SecurityDeposit float64 `json:"securityDeposit" validate:"min=0"`
	MinNights       int     `json:"minNights" validate:"min=1"`
	MaxNights       int     `json:"maxNights" validate:"min=0"`
	Currency        string  `json:"currency"`

	Amenities  []string `json:"amenities"`
	HouseRules string   `json:"houseRules"`
	Images     []string `json:"images"`
	IsActive   *bool    `json:"isActive"`
}

func CreateProperty(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Ensure arrays are never null
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	images := uploadImages(input.Images)
	imagesJSON, _ := json.Marshal(images)

	property := models.Property{
		HostID:          claims.ID,
		Title:           input.Title,
		Description:     input.Description,
		PropertyType:    input.PropertyType,
		AddressLine1:    input.AddressLine1,
		AddressLine2:    input.AddressLine2,
		City:            input.City,
		State:           input.State,
		Zip:             input.Zip,
		Country:         input.Country,
		Lat:             input.Lat,
		Lng:             input.Lng,
		MaxGuests:       input.MaxGuests,
		Bedrooms:        input.Bedrooms,
		Beds:            input.Beds,
		Bathrooms:       input.Bathrooms,
		NightlyPrice:    input.NightlyPrice,
		CleaningFee:     input.CleaningFee,
		SecurityDeposit: input.SecurityDeposit,
		MinNights:       input.MinNights,
		MaxNights:       input.MaxNights,
		Currency:        input.Currency,
		Amenities:       string(amenitiesJSON),
		HouseRules:      input.HouseRules,
		Images:          string(imagesJSON),
		IsActive:        input.IsActive,
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func GetProperty(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	res := storage.DB.Preload("Host").Preload("Reviews").First(&property, propertyID)
	if res.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(property)
}

func GetPropertiesByUserID(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var properties []models.Property
	res := storage.DB.Where("host_id = ?", userID).Order("created_at DESC").Find(&properties)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

type UpdatePropertyInput struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	NightlyPrice    *float64 `json:"nightlyPrice"`
	CleaningFee     *float64 `json:"cleaningFee"`
	SecurityDeposit *float64 `json:"securityDeposit"`
	MinNights       *int     `json:"minNights"`
	MaxNights       *int     `json:"maxNights"`
	MaxGuests       *int     `json:"maxGuests"`
	HouseRules      *string  `json:"houseRules"`
	Amenities       []string `json:"amenities"`
	Images          []string `json:"images"`
	IsActive        *bool    `json:"isActive"`
}

// propertyImageURLs decodes the JSON image column into a slice of URLs.
func propertyImageURLs(imagesJSON string) []string {
	if imagesJSON == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(imagesJSON), &urls); err != nil {
		return nil
	}
	return urls
}

// removedImages returns the URLs present in old but absent from updated,
// i.e. the hosted images that no longer back the listing.
func removedImages(old, updated []string) []string {
	keep := make(map[string]struct{}, len(updated))
	for _, u := range updated {
		keep[u] = struct{}{}
	}
	var removed []string
	for _, u := range old {
		if _, ok := keep[u]; !ok {
			removed = append(removed, u)
		}
	}
	return removed
}

func UpdateProperty(ctx iris.Context) {
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

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.NightlyPrice != nil {
		property.NightlyPrice = *input.NightlyPrice
	}
	if input.CleaningFee != nil {
		property.CleaningFee = *input.CleaningFee
	}
	if input.SecurityDeposit != nil {
		property.SecurityDeposit = *input.SecurityDeposit
	}
	if input.MinNights != nil {
		property.MinNights = *input.MinNights
	}
	if input.MaxNights != nil {
		property.MaxNights = *input.MaxNights
	}
	if input.MaxGuests != nil {
		property.MaxGuests = *input.MaxGuests
	}
	if input.HouseRules != nil {
		property.HouseRules = *input.HouseRules
	}
	if input.Amenities != nil {
		amenitiesJSON, _ := json.Marshal(input.Amenities)
		property.Amenities = string(amenitiesJSON)
	}
	if input.Images != nil {
		oldURLs := propertyImageURLs(property.Images)
		newURLs := uploadImages(input.Images)
		imagesJSON, _ := json.Marshal(newURLs)
		property.Images = string(imagesJSON)

		// Drop hosted images the update replaced
		for _, u := range removedImages(oldURLs, newURLs) {
			go storage.DeleteImage(u)
		}
	}
	if input.IsActive != nil {
		property.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func DeleteProperty(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := &models.User{Model: gorm.Model{ID: claims.ID}, Role: claims.Role}
	if !utils.Can(actor, utils.ActionDelete, &property) {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, u := range propertyImageURLs(property.Images) {
		go storage.DeleteImage(u)
	}

	ctx.JSON(iris.Map{"success": true})
}
