// Command token mints a bearer token for local testing of the catalog API.
package main

import (
	"flag"
	"fmt"
	"os"

	"linguacademy/config"
	"linguacademy/internal/infrastructure/security"
)

func main() {
	user := flag.String("user", "", "user id (token subject)")
	name := flag.String("name", "", "display name")
	ttl := flag.Duration("ttl", security.DefaultAccessTTL, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	secret := cfg.JWTSecret
	if secret == "" {
		secret = security.DevSecret
	}

	tok, err := security.NewTokenManager(secret, *ttl).Generate(*user, *name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(2)
	}
	fmt.Println(tok)
}
