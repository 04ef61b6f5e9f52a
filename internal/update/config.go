package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DataPath         string
	Theme            string
	FocusWorkMinutes int
	ChatModel        string
	AnalysisModel    string
	// AIEnabled is derived by the composition root from key presence,
	// not read from the environment directly.
	AIEnabled bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataPath:         defaultDataPath(),
		Theme:            "dark",
		FocusWorkMinutes: 25,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_DATA_PATH")); v != "" {
		cfg.DataPath = v
	}
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_THEME")); v != "" {
		cfg.Theme = v
	}
	if v, ok := getEnvInt("FOCUSFLOW_FOCUS_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_CHAT_MODEL")); v != "" {
		cfg.ChatModel = v
	}
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_ANALYSIS_MODEL")); v != "" {
		cfg.AnalysisModel = v
	}
	return cfg
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusflow.db"
	}
	return filepath.Join(home, ".focusflow", "focusflow.db")
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
