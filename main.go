package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/anemettemadsen33/RentHub-sub010/config"
	"github.com/anemettemadsen33/RentHub-sub010/routes"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

func main() {
	cfg := config.Load()

	storage.InitializeDB(cfg)
	storage.InitializeRedis(cfg)
	storage.InitializeCloudinary(cfg)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.AccessTokenSecret))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.RefreshTokenSecret))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register(cfg))
		user.Post("/login", routes.Login(cfg))
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken(cfg))
		user.Get("/{id}", accessTokenVerifierMiddleware, routes.GetUser)
		user.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterPushToken)
		user.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AllowsNotifications)
		user.Patch("/{id}/properties/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterUserSavedProperties)
	}

	property := app.Party("/api/property")
	{
		property.Post("/", accessTokenVerifierMiddleware, routes.CreateProperty)
		property.Get("/{id:uint}", routes.GetProperty)
		property.Get("/userid/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetPropertiesByUserID)
		property.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateProperty)
		property.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteProperty)

		property.Get("/{id:uint}/calendar", accessTokenVerifierMiddleware, routes.GetPropertyCalendar)

		property.Get("/{id:uint}/blocked-dates", routes.GetBlockedDates)
		property.Post("/{id:uint}/blocked-dates", accessTokenVerifierMiddleware, routes.CreateBlockedDate)
		property.Delete("/{id:uint}/blocked-dates/{blockID:uint}", accessTokenVerifierMiddleware, routes.DeleteBlockedDate)

		property.Get("/{id:uint}/custom-prices", routes.GetCustomPrices)
		property.Put("/{id:uint}/custom-prices", accessTokenVerifierMiddleware, routes.SetCustomPrice)
		property.Delete("/{id:uint}/custom-prices", accessTokenVerifierMiddleware, routes.DeleteCustomPrice)

		property.Get("/{id:uint}/reviews", routes.GetPropertyReviews)
		property.Get("/{id:uint}/bookings", accessTokenVerifierMiddleware, routes.GetBookingsByPropertyID)
	}

	booking := app.Party("/api/booking")
	{
		booking.Post("/calculate", routes.CalculateBooking(cfg))
		booking.Post("/property/{id:uint}", accessTokenVerifierMiddleware, routes.CreateBooking(cfg))
		booking.Get("/{id:uint}", accessTokenVerifierMiddleware, routes.GetBooking)
		booking.Patch("/{id:uint}/status", accessTokenVerifierMiddleware, routes.UpdateBookingStatus(cfg))
		booking.Get("/user", accessTokenVerifierMiddleware, routes.GetUserBookings)
		booking.Get("/host", accessTokenVerifierMiddleware, routes.GetHostBookings)
	}

	review := app.Party("/api/review")
	{
		review.Post("/", accessTokenVerifierMiddleware, routes.CreateReview)
		review.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeleteReview)
	}

	notification := app.Party("/api/notification")
	{
		notification.Get("/", accessTokenVerifierMiddleware, routes.GetUserNotifications)
		notification.Patch("/{id:uint}/read", accessTokenVerifierMiddleware, routes.MarkNotificationRead)
		notification.Patch("/read-all", accessTokenVerifierMiddleware, routes.MarkAllNotificationsRead)
	}

	upload := app.Party("/api/upload")
	{
		upload.Post("/image", accessTokenVerifierMiddleware, routes.UploadImage)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/bookings", routes.AdminListBookings)
		admin.Get("/bookings/{id:uint}", routes.AdminGetBooking)
		admin.Post("/bookings/{id:uint}/cancel", routes.AdminCancelBooking)
		admin.Patch("/properties/{id:uint}/status", routes.AdminUpdatePropertyStatus)
		admin.Get("/stats", routes.AdminStats)
	}

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
