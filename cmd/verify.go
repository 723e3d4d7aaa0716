package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TG-Note-App/tgauth/internal/config"
	"github.com/TG-Note-App/tgauth/internal/initdata"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <init-data>",
	Short: "Verify the Telegram signature of an init-data string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.BotToken == "" {
			return errors.New("TELEGRAM_BOT_TOKEN is not set")
		}
		return verifyInitData(cmd, initdata.NewValidator(cfg.BotToken, cfg.AuthMaxAge), args[0])
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyInitData(cmd *cobra.Command, v *initdata.Validator, raw string) error {
	values, err := initdata.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse init data: %w", err)
	}
	if err := v.Validate(values); err != nil {
		return err
	}

	user, err := values.User()
	if err != nil {
		cmd.Println("signature valid, no user in payload")
		return nil
	}
	cmd.Printf("signature valid for user %d (%s)\n", user.ID, user.FirstName)
	return nil
}
