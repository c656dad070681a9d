package utils

import (
	"context"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/anemettemadsen33/RentHub-sub010/config"
	"github.com/anemettemadsen33/RentHub-sub010/models"
	"github.com/anemettemadsen33/RentHub-sub010/storage"
)

var bgContext = context.Background()

func CreateTokenPair(cfg *config.Config, id uint) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, cfg.AccessTokenSecret, 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, cfg.RefreshTokenSecret, 365*24*time.Hour)

	userID := strconv.FormatUint(uint64(id), 10)

	refreshClaims := jwt.Claims{Subject: userID}

	// Load role for embedding into the access token
	var u models.User
	role := "user"
	if err := storage.DB.Select("id, role").First(&u, id).Error; err == nil && u.Role != "" {
		role = u.Role
	}

	accessTokenClaims := AccessToken{
		ID:   id,
		Role: role,
	}

	accessToken, err := accessTokenSigner.Sign(accessTokenClaims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)

	return &tokenPair, nil
}

func RefreshToken(cfg *config.Config) iris.Handler {
	return func(ctx iris.Context) {
		token := jwt.GetVerifiedToken(ctx)
		tokenStr := string(token.Token)
		validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()

		if tokenErr != nil {
			CreateNotFound(ctx)
			return
		}

		if validToken != "true" {
			ctx.StatusCode(iris.StatusForbidden)
			return
		}

		storage.Redis.Del(bgContext, tokenStr)
		userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
		if parseErr != nil {
			CreateInternalServerError(ctx)
			return
		}

		tokenPair, tokenPairErr := CreateTokenPair(cfg, uint(userID))
		if tokenPairErr != nil {
			CreateInternalServerError(ctx)
			return
		}

		ctx.JSON(iris.Map{
			"accessToken":  string(tokenPair.AccessToken),
			"refreshToken": string(tokenPair.RefreshToken),
		})
	}
}

type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
