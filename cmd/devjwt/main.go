package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/platform/auth/tokens"
	"github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

// Dev-only token minter for local curl workflows:
//
//	JWT_SECRET=dev-secret go run ./cmd/devjwt -name "Kim" -role coach
func main() {
	var (
		sub  = flag.String("sub", "", "subject user id (default: random uuid)")
		name = flag.String("name", "Dev Coach", "display name claim")
		role = flag.String("role", "coach", "role claim (coach or staff)")
		ttl  = flag.Duration("ttl", 7*24*time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if *role != string(domain.RoleCoach) && *role != string(domain.RoleStaff) {
		log.Fatalf("invalid role %q: must be coach or staff", *role)
	}
	id := *sub
	if id == "" {
		id = uuid.NewString()
	}

	manager := tokens.New(tokens.Config{Secret: secret, TTL: *ttl})
	token, err := manager.Mint(userrepo.User{
		ID:   domain.UserID(id),
		Name: *name,
		Role: domain.Role(*role),
	})
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}
	fmt.Println(token)
}
