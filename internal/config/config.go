package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Mail struct {
		Enabled  bool   `yaml:"enabled"`
		IMAPHost string `yaml:"imap_host"`
		IMAPPort int    `yaml:"imap_port"`
		Username string `yaml:"username"`
		Mailbox  string `yaml:"mailbox"`
		// Sender is the alert address unread mail is filtered on.
		Sender   string `yaml:"sender"`
		MaxFetch int    `yaml:"max_fetch"`
		// Fixture points at a JSON inbox used instead of IMAP; whoever sets
		// it is running without mail credentials.
		Fixture string `yaml:"fixture"`
	} `yaml:"mail"`

	Scrape struct {
		CooldownSeconds int     `yaml:"cooldown_seconds"`
		TimeoutSeconds  int     `yaml:"timeout_seconds"`
		UserAgent       string  `yaml:"user_agent"`
		HostReqPerSec   float64 `yaml:"host_req_per_sec"`
		HostBurst       int     `yaml:"host_burst"`
	} `yaml:"scrape"`

	Posting struct {
		IntervalSeconds int `yaml:"interval_seconds"`
		BatchLimit      int `yaml:"batch_limit"`
		SendDelayMS     int `yaml:"send_delay_ms"`
	} `yaml:"posting"`

	Polling struct {
		MailSeconds int `yaml:"mail_seconds"`
	} `yaml:"polling"`

	Store struct {
		// Dev routes records to a separate table so local runs never touch
		// the production collection.
		Dev bool `yaml:"dev"`
	} `yaml:"store"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
