package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/termspot/internal/config"
	errs "github.com/tessro/termspot/internal/errors"
	"github.com/tessro/termspot/internal/spotify/player"
	"github.com/tessro/termspot/internal/tui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing termspot configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetDeviceCmd = &cobra.Command{
	Use:   "set-device",
	Short: "Interactively select default device",
	Long:  `Shows a picker to select the device used when none is active.`,
	RunE:  runConfigSetDevice,
}

func init() {
	configSetCmd.Long = "Set a configuration value.\n\nSupported keys:\n" + configKeysHelp() + `
Examples:
  termspot config set session.default_device "MacBook Pro"
  termspot config set session.search_limit 10`

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetDeviceCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := *cfg
	if shown.Spotify.ClientSecret != "" {
		shown.Spotify.ClientSecret = "********"
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(shown)
	}

	path := config.FindConfigFile()
	if cfgFile != "" {
		path = cfgFile
	}
	if path == "" {
		path = "(none, using defaults)"
	}
	fmt.Printf("# Config file: %s\n\n", path)

	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(shown)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s. Run 'termspot config init' first", errs.ErrConfigNotFound, configPath)
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

// findEditor returns $EDITOR, $VISUAL or the first common editor on PATH.
func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"nano", "vim", "vi", "notepad"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultCfg := config.Default()

	if err := writeConfigFile(configPath, defaultCfg); err != nil {
		return err
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		fmt.Println(styles.OK.Render("Created " + configPath))
		fmt.Println()
		fmt.Println("Set spotify.client_id (or TERMSPOT_SPOTIFY_CLIENT_ID), then run")
		fmt.Println(styles.Highlight.Render("  termspot auth login"))
	}

	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}

	if p := config.FindConfigFile(); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".termspotrc"
	}

	return filepath.Join(home, ".termspotrc")
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	configPath := getConfigPath()
	if err := setConfigValue(configPath, key, value); err != nil {
		return err
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	} else {
		fmt.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

type configKey struct {
	name    string
	help    string
	integer bool
}

var configKeys = []configKey{
	{name: "spotify.client_id", help: "Spotify client ID"},
	{name: "spotify.client_secret", help: "Spotify client secret (optional with PKCE)"},
	{name: "spotify.redirect_uri", help: "OAuth redirect URI"},
	{name: "session.default_device", help: "Device selected at startup when none is active"},
	{name: "session.search_limit", help: "Number of search results (1-50)", integer: true},
	{name: "session.playlist_limit", help: "Number of playlists listed (1-50)", integer: true},
	{name: "session.exit_bypass", help: "Extra answer that confirms exit"},
	{name: "log.level", help: "debug, info, warn or error"},
	{name: "log.file", help: "Write logs to this file instead of stderr"},
}

func configKeysHelp() string {
	var b strings.Builder
	for _, k := range configKeys {
		fmt.Fprintf(&b, "  %-24s%s\n", k.name, k.help)
	}
	return b.String()
}

// parseConfigValue converts value to the TOML type of key.
func parseConfigValue(key, value string) (interface{}, error) {
	for _, k := range configKeys {
		if k.name != key {
			continue
		}
		if !k.integer {
			return value, nil
		}
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: value must be an integer for %s", errs.ErrInvalidConfig, key)
		}
		return i, nil
	}
	return nil, fmt.Errorf("%w: unknown key %s", errs.ErrInvalidConfig, key)
}

// setConfigValue rewrites one key of the config file at path. The file is
// left untouched when the result would not validate.
func setConfigValue(path, key, value string) error {
	typed, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}
	section, field, _ := strings.Cut(key, ".")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w at %s. Run 'termspot config init' first", errs.ErrConfigNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]interface{}{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	sectionMap, ok := raw[section].(map[string]interface{})
	if !ok {
		sectionMap = make(map[string]interface{})
		raw[section] = sectionMap
	}
	sectionMap[field] = typed

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	merged := config.Default()
	if _, err := toml.Decode(buf.String(), merged); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}

	return writeConfigFile(path, raw)
}

// writeConfigFile encodes v as TOML at path, readable by the owner only.
func writeConfigFile(path string, v interface{}) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintln(f, "# termspot configuration")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func runConfigSetDevice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := newSpotifyClient(ctx)
	if err != nil {
		return err
	}

	devices, err := player.New(c).ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	if len(devices) == 0 {
		return fmt.Errorf("%w. Make sure Spotify is open on at least one device", errs.ErrNoDevices)
	}

	var options []huh.Option[string]
	for _, d := range devices {
		label := fmt.Sprintf("%s %s (%s)", styles.DeviceIcon(d.Type), d.Name, d.Type)
		if d.IsActive {
			label = label + " [active]"
		}
		options = append(options, huh.NewOption(label, d.Name))
	}

	selected := cfg.Session.DefaultDevice
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select default device").
				Description("This device will be selected at startup when no device is active").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSelectionCancelled, err)
	}

	return runConfigSet(cmd, []string{"session.default_device", selected})
}
