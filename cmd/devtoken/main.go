package main

import (
	"delivery-schedule-service/internal/config"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/auth"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devtoken mints a bearer token for local runs, signed with JWT_SECRET.
func main() {
	userID := flag.Int64("user", 2, "user id (user_table.user_id)")
	role := flag.String("role", "scheduler", "role (admin|scheduler|driver)")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := config.Get("JWT_SECRET", "")
	if strings.TrimSpace(secret) == "" {
		log.Fatal("JWT_SECRET is required")
	}

	r, ok := domain.ParseRole(*role)
	if !ok {
		log.Fatalf("unknown role %q", *role)
	}

	token, err := auth.NewTokenService(secret).Issue(domain.Caller{UserID: *userID, Role: r}, *ttl)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
