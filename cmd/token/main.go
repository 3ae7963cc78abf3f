// Command token prints a bearer token for local use of the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ritmodivulga/promo-engine/internal/auth"
	"github.com/ritmodivulga/promo-engine/internal/config"
	"github.com/ritmodivulga/promo-engine/internal/domain"
)

func main() {
	user := flag.String("user", "1", "user id the token is issued to")
	role := flag.String("role", string(domain.RoleAdmin), "admin, video_manager or financial")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to load signing key: %v", err)
	}
	token, err := tokens.Issue(domain.Actor{UserID: *user, Role: domain.Role(*role)}, time.Now())
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
