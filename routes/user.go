package routes

import (
	"encoding/json"
	"strings"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"

	"github.com/anemettemadsen33/RentHub-sub010/config"
	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
	"github.com/anemettemadsen33/RentHub-sub010/utils"
)

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Register(cfg *config.Config) iris.Handler {
	return func(ctx iris.Context) {
		var userInput RegisterUserInput
		if err := ctx.ReadJSON(&userInput); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		var newUser models.User
		userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
		if userExistsErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		if userExists {
			utils.CreateEmailAlreadyRegistered(ctx)
			return
		}

		hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
		if hashErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		newUser = models.User{
			FirstName: userInput.FirstName,
			LastName:  userInput.LastName,
			Email:     strings.ToLower(userInput.Email),
			Password:  hashedPassword,
		}

		if err := storage.DB.Create(&newUser).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		returnUser(cfg, newUser, ctx)
	}
}

func Login(cfg *config.Config) iris.Handler {
	return func(ctx iris.Context) {
		var userInput LoginUserInput
		if err := ctx.ReadJSON(&userInput); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		var existingUser models.User
		errorMsg := "Invalid email or password."
		userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
		if userExistsErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		if !userExists {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
			return
		}

		if existingUser.SocialLogin {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
			return
		}

		passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
		if passwordErr != nil {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
			return
		}

		returnUser(cfg, existingUser, ctx)
	}
}

func GetUser(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	user.Password = ""
	ctx.JSON(user)
}

type AlterPushTokenInput struct {
	Token  string `json:"token" validate:"required"`
	Remove bool   `json:"remove"`
}

// AlterPushToken registers or removes a device push token for the user.
func AlterPushToken(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var input AlterPushTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var tokens []string
	if user.PushTokens != nil {
		json.Unmarshal(user.PushTokens, &tokens)
	}

	if input.Remove {
		filtered := tokens[:0]
		for _, t := range tokens {
			if t != input.Token {
				filtered = append(filtered, t)
			}
		}
		tokens = filtered
	} else {
		exists := false
		for _, t := range tokens {
			if t == input.Token {
				exists = true
				break
			}
		}
		if !exists {
			tokens = append(tokens, input.Token)
		}
	}

	tokensJSON, _ := json.Marshal(tokens)
	user.PushTokens = tokensJSON

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

type AllowsNotificationsInput struct {
	AllowsNotifications *bool `json:"allowsNotifications" validate:"required"`
}

func AllowsNotifications(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var input AllowsNotificationsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	user.AllowsNotifications = input.AllowsNotifications
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

type AlterSavedPropertiesInput struct {
	PropertyID uint   `json:"propertyID" validate:"required"`
	Op         string `json:"op" validate:"required,oneof=add remove"`
}

// AlterUserSavedProperties adds or removes a property from the user's saved
// list.
func AlterUserSavedProperties(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var input AlterSavedPropertiesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var saved []uint
	if user.SavedProperties != nil {
		json.Unmarshal(user.SavedProperties, &saved)
	}

	if input.Op == "remove" {
		filtered := saved[:0]
		for _, id := range saved {
			if id != input.PropertyID {
				filtered = append(filtered, id)
			}
		}
		saved = filtered
	} else {
		exists := false
		for _, id := range saved {
			if id == input.PropertyID {
				exists = true
				break
			}
		}
		if !exists {
			saved = append(saved, input.PropertyID)
		}
	}

	savedJSON, _ := json.Marshal(saved)
	user.SavedProperties = savedJSON

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(cfg *config.Config, user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(cfg, user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user.Password = ""
	ctx.JSON(iris.Map{
		"ID":                  user.ID,
		"firstName":           user.FirstName,
		"lastName":            user.LastName,
		"email":               user.Email,
		"role":                user.Role,
		"allowsNotifications": user.AllowsNotifications,
		"accessToken":         string(tokenPair.AccessToken),
		"refreshToken":        string(tokenPair.RefreshToken),
	})
}
