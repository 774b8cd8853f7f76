// create-superuser registers an administrative account.
//
// Usage: go run ./scripts/create-superuser -email admin@example.org
//
// The password is read from the SUPERUSER_PASSWORD environment variable so it
// never appears in shell history. Database connection settings come from
// config.yaml and the PG* environment variables, the same as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/config"
	"github.com/xemob/coopnet/pkg/database"
	"github.com/xemob/coopnet/pkg/repositories"
	"github.com/xemob/coopnet/pkg/services"
)

func main() {
	email := flag.String("email", "", "Email address of the new superuser")
	flag.Parse()

	password := os.Getenv("SUPERUSER_PASSWORD")
	if *email == "" || password == "" {
		fmt.Fprintf(os.Stderr, "Usage: SUPERUSER_PASSWORD=... %s -email <address>\n", os.Args[0])
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load("script")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: 2,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	scopedCtx, cleanup, err := database.NewScopeProvider(db).WithScope(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire connection: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	userService := services.NewUserService(repositories.NewUserRepository(), logger)
	user, err := userService.CreateSuperuser(scopedCtx, *email, password)
	if err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			for field, msg := range ve.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Failed to create superuser: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Created superuser %s (id %d)\n", user.Email, user.ID)
}
