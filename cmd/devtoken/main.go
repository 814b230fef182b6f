// Command devtoken issues an access token for a directory account, creating the account on
// first use. It stands in for the external identity provider during local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	appModels "github.com/yigit/claimboard/internal/app/models"
	appRepos "github.com/yigit/claimboard/internal/app/repositories"
	appServices "github.com/yigit/claimboard/internal/app/services"
	"github.com/yigit/claimboard/internal/bootstrap"
	"github.com/yigit/claimboard/internal/db"
	pkgAuth "github.com/yigit/claimboard/internal/pkg/auth"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

func main() {
	email := flag.String("email", "", "account email (required)")
	name := flag.String("name", "", "display name used when the account is created")
	role := flag.String("role", string(appModels.RoleStudent), "student, mentor or proctor")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *name == "" {
		*name = *email
	}

	if err := run(*email, *name, appModels.RoleType(*role)); err != nil {
		logger.Error().Err(err).Msg("Failed to issue token")
		os.Exit(1)
	}
}

func run(email, name string, role appModels.RoleType) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return err
	}

	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	userRepo := appRepos.NewUserRepository(database.Pool)
	users := appServices.NewUserService(userRepo, nil, lgr)

	user, err := users.FindOrCreate(ctx, &appModels.User{
		Email:    email,
		Name:     name,
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		return err
	}
	if user.Role != role {
		lgr.Warn().Str("requested", string(role)).Str("stored", string(user.Role)).Msg("Account exists with a different role")
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	token, expiresIn, err := jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return err
	}

	lgr.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Int("expiresIn", expiresIn).Msg("Token issued")
	fmt.Println(token)
	return nil
}
