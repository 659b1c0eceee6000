package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"plantmanager/internal/api"
)

func TestResolveConfigPrecedence(t *testing.T) {
	const dir = "/home/ana/.plantmanager"

	tests := []struct {
		name     string
		flags    flagValues
		env      map[string]string
		settings Settings
		want     Config
	}{
		{
			name: "defaults",
			want: Config{
				DBPath:  filepath.Join(dir, "plantmanager.db"),
				APIURL:  api.DefaultBaseURL,
				LogPath: filepath.Join(dir, "plantmanager.log"),
			},
		},
		{
			name:     "settings file over default",
			settings: Settings{UserName: "Ana", APIURL: "http://yaml:3333", LogLevel: "warn"},
			want: Config{
				DBPath:   filepath.Join(dir, "plantmanager.db"),
				APIURL:   "http://yaml:3333",
				LogLevel: "warn",
				LogPath:  filepath.Join(dir, "plantmanager.log"),
				UserName: "Ana",
			},
		},
		{
			name:     "environment over settings file",
			env:      map[string]string{APIURLEnvVar: "http://env:3333", LogLevelEnvVar: "debug"},
			settings: Settings{APIURL: "http://yaml:3333", LogLevel: "warn"},
			want: Config{
				DBPath:   filepath.Join(dir, "plantmanager.db"),
				APIURL:   "http://env:3333",
				LogLevel: "debug",
				LogPath:  filepath.Join(dir, "plantmanager.log"),
			},
		},
		{
			name:     "flags over everything",
			flags:    flagValues{dbPath: "/tmp/p.db", apiURL: "http://flag:3333", logLevel: "error"},
			env:      map[string]string{APIURLEnvVar: "http://env:3333", LogLevelEnvVar: "debug"},
			settings: Settings{APIURL: "http://yaml:3333", LogLevel: "warn"},
			want: Config{
				DBPath:   "/tmp/p.db",
				APIURL:   "http://flag:3333",
				LogLevel: "error",
				LogPath:  filepath.Join(dir, "plantmanager.log"),
			},
		},
		{
			name:     "blank values fall through",
			env:      map[string]string{APIURLEnvVar: "   "},
			settings: Settings{APIURL: ""},
			want: Config{
				DBPath:  filepath.Join(dir, "plantmanager.db"),
				APIURL:  api.DefaultBaseURL,
				LogPath: filepath.Join(dir, "plantmanager.log"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }
			got := resolveConfig(tt.flags, tt.settings, dir, getenv)
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("resolveConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs([]string{"--db", "/tmp/p.db", "--api-url", "http://x", "--log-level", "info"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	want := flagValues{dbPath: "/tmp/p.db", apiURL: "http://x", logLevel: "info"}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(flagValues{})); diff != "" {
		t.Errorf("parseArgs() mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseArgs([]string{"--nope"}, io.Discard); err == nil {
		t.Error("parseArgs() accepted an unknown flag")
	}
}

func TestSettingsFile(t *testing.T) {
	dir := t.TempDir()

	got, err := loadSettings(dir)
	if err != nil {
		t.Fatalf("loadSettings on a fresh dir: %v", err)
	}
	if diff := cmp.Diff(Settings{}, got); diff != "" {
		t.Errorf("fresh settings mismatch (-want +got):\n%s", diff)
	}

	want := Settings{UserName: "Ana", APIURL: "http://localhost:3333", Onboarded: true}
	if err := saveSettings(dir, want); err != nil {
		t.Fatalf("saveSettings: %v", err)
	}
	got, err = loadSettings(dir)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(settingsPath(dir), []byte("user_name: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSettings(dir); err == nil {
		t.Error("loadSettings() accepted invalid YAML")
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nexport PLANTMANAGER_TEST_A=\"from file\"\nPLANTMANAGER_TEST_B=from file\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANTMANAGER_TEST_A", "")
	t.Setenv("PLANTMANAGER_TEST_B", "from env")

	loadDotEnv(path)

	if got := os.Getenv("PLANTMANAGER_TEST_A"); got != "from file" {
		t.Errorf("A = %q, want %q", got, "from file")
	}
	if got := os.Getenv("PLANTMANAGER_TEST_B"); got != "from env" {
		t.Errorf("B = %q, want %q", got, "from env")
	}
}

func TestOnboardingAsksForName(t *testing.T) {
	m := newOnboardingModel(Settings{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(onboardingModel)
	if m.step != stepName || m.status == "" {
		t.Fatalf("empty name: step = %v, status = %q", m.step, m.status)
	}

	m.nameInput.SetValue("  Ana ")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(onboardingModel)
	want := Settings{UserName: "Ana", Onboarded: true}
	if diff := cmp.Diff(want, m.settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if m.step != stepDone {
		t.Errorf("step = %v, want done", m.step)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on the confirmation card did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter on the confirmation card did not quit")
	}
}

func TestOnboardingSkip(t *testing.T) {
	m := newOnboardingModel(Settings{APIURL: "http://x"})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(onboardingModel)
	if cmd == nil {
		t.Fatal("esc did not quit")
	}
	want := Settings{APIURL: "http://x", Onboarded: true}
	if diff := cmp.Diff(want, m.settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}
