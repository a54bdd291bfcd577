// Command issue_token signs an access token with the configured secret, for local development and smoke tests.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"quiz-course/internal/config"
	"quiz-course/internal/service"
)

func main() {
	userID := flag.String("user", "", "user id placed in the user_id claim")
	roles := flag.String("roles", "", "comma separated roles, e.g. Admin")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to jwt.access_token_ttl")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	authService, err := service.NewAuthService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create AuthService: %v\n", err)
		os.Exit(1)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.JWT.AccessTokenTTL
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := authService.CreateJWT(context.Background(), *userID, roleList, lifetime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
