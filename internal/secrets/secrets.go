// Package secrets reads the bot's credentials from the OS keychain. Nothing
// secret lives in the YAML config.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/andrewwu13/employment-bot/internal/config"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "employment-bot"

	webhookAccount = "employment-bot:webhook"
)

func GetIMAPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	return "", errors.New("IMAP password not found in keychain")
}

func SetIMAPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteIMAPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func IMAPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"employment-bot:imap:%s@%s",
		cfg.Mail.Username,
		cfg.Mail.IMAPHost,
	)
}

// GetWebhookURL returns the channel webhook. The URL embeds its own token, so
// it is stored alongside the passwords rather than in config.
func GetWebhookURL() (string, error) {
	u, err := keyring.Get(KeyringService, webhookAccount)
	if err != nil || strings.TrimSpace(u) == "" {
		return "", errors.New("webhook URL not found in keychain")
	}
	return u, nil
}

func SetWebhookURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("webhook URL is empty")
	}
	return keyring.Set(KeyringService, webhookAccount, url)
}
