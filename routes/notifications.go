package routes

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

// GetUserNotifications lists the authenticated user's notifications, newest
// first, paginated.
func GetUserNotifications(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	storage.DB.Model(&models.Notification{}).Where("user_id = ?", claims.ID).Count(&total)

	var notifications []models.Notification
	res := storage.DB.Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&notifications)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, notifications, page, perPage, total)
}

func MarkNotificationRead(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	notificationID := ctx.Params().GetUintDefault("id", 0)

	res := storage.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, claims.ID).
		Update("is_read", true)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

func MarkAllNotificationsRead(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	res := storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", claims.ID, false).
		Update("is_read", true)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "updated": res.RowsAffected})
}
