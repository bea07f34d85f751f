package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"communityevents/internal/adapters/auth"
)

// admintoken mints a bearer token for the admin API. Intended for local
// development and small deployments without a separate identity provider.
func main() {
	userID := flag.String("user", "", "subject to embed in the token (required)")
	email := flag.String("email", "", "email claim")
	roles := flag.String("roles", "admin", "comma-separated role claims")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: admintoken -user <id> [-email <email>] [-roles admin,staff] [-expiry 24h]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	issuer := auth.NewJWTIssuer(secret)
	token, err := issuer.Issue(*userID, *email, roleList, *expiry)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to issue token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
