package storage

import (
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/anemettemadsen33/RentHub-sub010/config"
)

var Redis *redis.Client

func InitializeRedis(cfg *config.Config) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", cfg.RedisURL)
}
