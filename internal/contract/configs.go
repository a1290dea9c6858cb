package contract

import (
	"fmt"
	"maps"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/readiness/schema"
)

// Default values for configuration.
const (
	DefaultPrecision         = 1
	DefaultMinOverall        = 60.0
	DefaultDeliveryTimeout   = 30 * time.Second
	DefaultEmailJSEndpoint   = "https://api.emailjs.com"
	DefaultOutboxDir         = "readiness-outbox"
	DefaultListenAddr        = ":8080"
	DefaultSendRatePerMinute = 6
	DefaultReportDir         = "."
)

// OverallThresholdKey names the overall score in threshold maps and overrides.
const OverallThresholdKey = "overall"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// EmailJSConfig holds the EmailJS account settings.
type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string // Please use env var as this is plaintext
	Endpoint   string
}

// DeliveryConfig holds how rendered reports leave the process.
type DeliveryConfig struct {
	Transport schema.DeliveryTransport
	EmailJS   EmailJSConfig
	OutboxDir string
	Timeout   time.Duration
}

// Config holds the runtime configuration for an assessment.
// This struct remains the "final, validated" config.
type Config struct {
	AnswersPath string // answer sheet to score; empty for commands that need none
	Interactive bool

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Section    string

	ExcludeUnscoredDomains bool

	// RespondentOverride replaces non-empty respondent fields of an answer sheet.
	RespondentOverride schema.Respondent

	ReportDir string
	Send      bool
	Delivery  DeliveryConfig

	// MinOverall is the lowest overall score the check command accepts.
	MinOverall float64

	// MinByDomain is a mapping of [Domain] = lowest acceptable domain score
	MinByDomain map[schema.DomainName]float64

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	ListenAddr        string
	SendRatePerMinute int

	LogLevel string
	LogFile  string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from positional arguments ---
	AnswersPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	LogLevel         string `mapstructure:"log-level"`
	LogFile          string `mapstructure:"log-file"`

	// --- Scoring ---
	ExcludeUnscoredDomains bool `mapstructure:"exclude-unscored-domains"`
	Interactive            bool `mapstructure:"interactive"`

	// --- Respondent overrides ---
	Name    string `mapstructure:"name"`
	Email   string `mapstructure:"email"`
	Company string `mapstructure:"company"`
	Role    string `mapstructure:"role"`

	// --- Fields from catalogCmd ---
	Section string `mapstructure:"section"`

	// --- Fields from reportCmd.Flags() ---
	ReportDir string `mapstructure:"report-dir"`
	Send      bool   `mapstructure:"send"`

	// --- Delivery settings ---
	DeliveryTransport string `mapstructure:"delivery-transport"`
	DeliveryTimeout   string `mapstructure:"delivery-timeout"`
	EmailJSServiceID  string `mapstructure:"emailjs-service-id"`
	EmailJSTemplateID string `mapstructure:"emailjs-template-id"`
	EmailJSPublicKey  string `mapstructure:"emailjs-public-key"`
	EmailJSPrivateKey string `mapstructure:"emailjs-private-key"`
	EmailJSEndpoint   string `mapstructure:"emailjs-endpoint"`
	OutboxDir         string `mapstructure:"outbox-dir"`

	// --- Fields from checkCmd.Flags() ---
	MinOverall    float64 `mapstructure:"min-overall"`
	ThresholdsStr string  `mapstructure:"thresholds-override"`

	// --- Domain thresholds from config file ---
	Thresholds map[string]float64 `mapstructure:"thresholds"`

	// --- Fields from serveCmd.Flags() ---
	ListenAddr        string `mapstructure:"listen-addr"`
	SendRatePerMinute int    `mapstructure:"send-rate-per-minute"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.MinByDomain != nil {
		clone.MinByDomain = make(map[schema.DomainName]float64, len(c.MinByDomain))
		maps.Copy(clone.MinByDomain, c.MinByDomain)
	}
	return &clone
}

// HistoryParams returns the settings worth recording alongside a scoring run.
func (c *Config) HistoryParams() map[string]any {
	return map[string]any{
		"exclude_unscored_domains": c.ExcludeUnscoredDomains,
		"min_overall":              c.MinOverall,
		"output":                   string(c.Output),
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRespondentOverride(cfg, input); err != nil {
		return err
	}
	if err := processDelivery(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := input.HistoryBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.AnswersPath = strings.TrimSpace(input.AnswersPathStr)
	cfg.Interactive = input.Interactive
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Section = strings.TrimSpace(input.Section)
	cfg.ExcludeUnscoredDomains = input.ExcludeUnscoredDomains
	cfg.Send = input.Send
	cfg.LogLevel = input.LogLevel
	cfg.LogFile = input.LogFile

	cfg.ReportDir = input.ReportDir
	if cfg.ReportDir == "" {
		cfg.ReportDir = DefaultReportDir
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(defaultString(input.Emoji, "no"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(defaultString(input.Output, string(schema.TextOut))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, markdown", cfg.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	// --- 2. Server Validation ---
	cfg.ListenAddr = defaultString(input.ListenAddr, DefaultListenAddr)
	cfg.SendRatePerMinute = input.SendRatePerMinute
	if cfg.SendRatePerMinute == 0 {
		cfg.SendRatePerMinute = DefaultSendRatePerMinute
	}
	if cfg.SendRatePerMinute < 0 {
		return fmt.Errorf("send-rate-per-minute must be greater than 0 (received %d)", input.SendRatePerMinute)
	}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processRespondentOverride validates the respondent fields given on the command line.
func processRespondentOverride(cfg *Config, input *ConfigRawInput) error {
	cfg.RespondentOverride = schema.Respondent{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Company: strings.TrimSpace(input.Company),
		Role:    strings.TrimSpace(input.Role),
	}
	if cfg.RespondentOverride.Email != "" {
		if _, err := mail.ParseAddress(cfg.RespondentOverride.Email); err != nil {
			return fmt.Errorf("invalid --email '%s': %w", input.Email, err)
		}
	}
	return nil
}

// ApplyRespondentOverride returns r with every non-empty override field applied.
func (c *Config) ApplyRespondentOverride(r schema.Respondent) schema.Respondent {
	o := c.RespondentOverride
	if o.Name != "" {
		r.Name = o.Name
	}
	if o.Email != "" {
		r.Email = o.Email
	}
	if o.Company != "" {
		r.Company = o.Company
	}
	if o.Role != "" {
		r.Role = o.Role
	}
	return r
}

// processDelivery resolves the delivery transport and its settings.
func processDelivery(cfg *Config, input *ConfigRawInput) error {
	transport := strings.ToLower(defaultString(input.DeliveryTransport, string(schema.NoneTransport)))
	cfg.Delivery.Transport = schema.DeliveryTransport(transport)
	if _, ok := schema.ValidDeliveryTransports[cfg.Delivery.Transport]; !ok {
		return fmt.Errorf("invalid delivery transport '%s'. must be emailjs, outbox, none", input.DeliveryTransport)
	}

	cfg.Delivery.Timeout = DefaultDeliveryTimeout
	if input.DeliveryTimeout != "" {
		timeout, err := time.ParseDuration(input.DeliveryTimeout)
		if err != nil {
			return fmt.Errorf("invalid delivery-timeout '%s': %w", input.DeliveryTimeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("delivery-timeout must be positive (received %s)", input.DeliveryTimeout)
		}
		cfg.Delivery.Timeout = timeout
	}

	cfg.Delivery.EmailJS = EmailJSConfig{
		ServiceID:  strings.TrimSpace(input.EmailJSServiceID),
		TemplateID: strings.TrimSpace(input.EmailJSTemplateID),
		PublicKey:  strings.TrimSpace(input.EmailJSPublicKey),
		PrivateKey: strings.TrimSpace(input.EmailJSPrivateKey),
		Endpoint:   strings.TrimRight(defaultString(input.EmailJSEndpoint, DefaultEmailJSEndpoint), "/"),
	}
	cfg.Delivery.OutboxDir = defaultString(input.OutboxDir, DefaultOutboxDir)

	switch cfg.Delivery.Transport {
	case schema.EmailJSTransport:
		var missing []string
		if cfg.Delivery.EmailJS.ServiceID == "" {
			missing = append(missing, "emailjs-service-id")
		}
		if cfg.Delivery.EmailJS.TemplateID == "" {
			missing = append(missing, "emailjs-template-id")
		}
		if cfg.Delivery.EmailJS.PublicKey == "" {
			missing = append(missing, "emailjs-public-key")
		}
		if len(missing) > 0 {
			return fmt.Errorf("emailjs transport requires %s", strings.Join(missing, ", "))
		}
	case schema.NoneTransport:
		if cfg.Send {
			return fmt.Errorf("--send requires a delivery transport (emailjs or outbox)")
		}
	}
	return nil
}

// processThresholds converts the raw threshold input into cfg.MinOverall and cfg.MinByDomain.
// Command-line --thresholds-override flag takes precedence over config file settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	cfg.MinOverall = input.MinOverall
	if cfg.MinOverall == 0 {
		cfg.MinOverall = DefaultMinOverall
	}
	cfg.MinByDomain = make(map[schema.DomainName]float64)

	// Keys are normalized before merging so "Processing Integrity" and
	// "processing-integrity" collide and the override always wins.
	merged := make(map[string]float64, len(input.Thresholds))
	for key, value := range input.Thresholds {
		merged[NormalizeThresholdKey(key)] = value
	}

	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		for key, value := range parsed {
			merged[NormalizeThresholdKey(key)] = value
		}
	}

	for key, value := range merged {
		if value < 0.0 || value > 100.0 {
			return fmt.Errorf("threshold for %s must be between 0.0 and 100.0 (received %.2f)", key, value)
		}
		if NormalizeThresholdKey(key) == OverallThresholdKey {
			cfg.MinOverall = value
			continue
		}
		domain, ok := ParseDomainKey(key)
		if !ok {
			return fmt.Errorf("unknown threshold key '%s'. must be overall or a domain name", key)
		}
		cfg.MinByDomain[domain] = value
	}

	if cfg.MinOverall < 0.0 || cfg.MinOverall > 100.0 {
		return fmt.Errorf("min-overall must be between 0.0 and 100.0 (received %.2f)", cfg.MinOverall)
	}
	return nil
}

// NormalizeThresholdKey lowercases a key and joins its words with underscores,
// so "Processing Integrity" and "processing-integrity" are the same key.
func NormalizeThresholdKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", " ")
	return strings.Join(strings.Fields(key), "_")
}

// ParseDomainKey resolves a threshold key to its domain.
func ParseDomainKey(key string) (schema.DomainName, bool) {
	normalized := NormalizeThresholdKey(key)
	for _, d := range schema.AllDomains {
		if NormalizeThresholdKey(string(d)) == normalized {
			return d, true
		}
	}
	return "", false
}

// parseThresholdsString parses a string like "overall:60,security:70,processing_integrity:50"
// into a map of key to float64.
func parseThresholdsString(s string) (map[string]float64, error) {
	thresholds := make(map[string]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'key:value'", part)
		}

		key := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for %s: %w", valueStr, key, err)
		}
		thresholds[key] = value
	}

	return thresholds, nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
