package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-testutil"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	progress := ProgressConfig{
		Database: filepath.Join(dir, "progress.db"),
		SavePath: filepath.Join(dir, "world.sav"),
	}
	return &Config{
		Listeners: []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 4000}},
		Storage:   StorageConfig{Items: AssetConfig[*game.ItemDefinition]{Path: dir}},
		Progress:  progress,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(c *Config)
		expErr string
	}{
		"valid": {
			mutate: func(c *Config) {},
		},
		"no listeners": {
			mutate: func(c *Config) { c.Listeners = nil },
			expErr: "at least one listener",
		},
		"listener without port": {
			mutate: func(c *Config) { c.Listeners[0].Port = 0 },
			expErr: "listener 0: port must be set",
		},
		"host key on telnet": {
			mutate: func(c *Config) { c.Listeners[0].HostKeyPath = "key" },
			expErr: "host_key_path only applies",
		},
		"missing items path": {
			mutate: func(c *Config) { c.Storage.Items.Path = "" },
			expErr: "items: path is required",
		},
		"items path does not exist": {
			mutate: func(c *Config) { c.Storage.Items.Path = "/does/not/exist" },
			expErr: "invalid path",
		},
		"missing database": {
			mutate: func(c *Config) { c.Progress.Database = "" },
			expErr: "database is required",
		},
		"save over database": {
			mutate: func(c *Config) { c.Progress.SavePath = c.Progress.Database },
			expErr: "must differ",
		},
		"bad nats timeout": {
			mutate: func(c *Config) { c.Nats.StartTimeout = "soon" },
			expErr: "parsing start_timeout",
		},
		"negative hp": {
			mutate: func(c *Config) { c.Console.MaxHP = -1 },
			expErr: "max_hp",
		},
		"missing tuning file": {
			mutate: func(c *Config) { c.Tuning.Path = "/does/not/exist.yaml" },
			expErr: "tuning",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := validConfig(t)
			tt.mutate(c)

			err := c.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("ROGUE_SAVE_PATH", "/tmp/other.sav")
	t.Setenv("ROGUE_NATS_PORT", "4333")
	t.Setenv("ROGUE_MAX_HP", "9")

	c := validConfig(t)
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "save path", c.Progress.SavePath, "/tmp/other.sav")
	testutil.AssertEqual(t, "nats port", c.Nats.Port, 4333)
	testutil.AssertEqual(t, "max hp", c.Console.MaxHP, 9)
}

func TestConfig_ApplyEnvBadValue(t *testing.T) {
	t.Setenv("ROGUE_NATS_PORT", "many")

	c := validConfig(t)
	testutil.AssertErrorContains(t, c.ApplyEnv(), "parsing environment")
}

func TestListenerType_UnmarshalText(t *testing.T) {
	tests := map[string]struct {
		input  string
		exp    ListenerType
		expErr string
	}{
		"telnet":  {input: "telnet", exp: ListenerTypeTelnet},
		"ssh":     {input: "ssh", exp: ListenerTypeSSH},
		"unknown": {input: "gopher", expErr: "unknown listener type"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var lt ListenerType
			err := lt.UnmarshalText([]byte(tt.input))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "type", lt, tt.exp)
		})
	}
}

func TestListenerConfig_HostKey(t *testing.T) {
	cl := &ListenerConfig{Protocol: ListenerTypeSSH, Port: 2222}
	signer, err := cl.loadOrGenerateHostKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "key type", signer.PublicKey().Type(), "ssh-ed25519")

	path := filepath.Join(t.TempDir(), "host_key")
	if err := os.WriteFile(path, []byte("not a key"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cl.HostKeyPath = path
	_, err = cl.loadOrGenerateHostKey()
	testutil.AssertErrorContains(t, err, "parsing host key")
}
