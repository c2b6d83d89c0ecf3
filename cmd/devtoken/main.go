// Package main prints a signed development token for a user ID, for calling
// the /api/groups endpoints locally.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/config"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service/auth"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "user ID to put in the token's subject (required)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before configuration")
	flag.Parse()

	if err := run(os.Stdout, *envFile, *userID); err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
}

func run(out io.Writer, envFile, userID string) error {
	if userID == "" {
		return errors.New("-user is required")
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg, err := config.LoadAuth()
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(*cfg)
	if err != nil {
		return err
	}

	token, err := tokens.GenerateToken(context.Background(), userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
