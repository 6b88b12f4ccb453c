package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		yaml   string
		exp    Tuning
		expErr string
	}{
		"partial file keeps defaults": {
			yaml: "drop_damping: 2.5\ntick_ms: 50\n",
			exp: func() Tuning {
				d := Defaults()
				d.DropDamping = 2.5
				d.TickMs = 50
				return d
			}(),
		},
		"empty file": {
			yaml: "",
			exp:  Defaults(),
		},
		"bad yaml": {
			yaml:   "drop_damping: [",
			expErr: "tuning.yaml",
		},
		"invalid values": {
			yaml:   "tick_ms: 0\nprompt_seconds: -1\n",
			expErr: "tick_ms must be positive",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatalf("writing tuning: %v", err)
			}

			got, err := Load(path)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "tuning", got, tt.exp)
		})
	}
}

func TestLoad_NoPath(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "tuning", got, Defaults())
	testutil.AssertEqual(t, "tick", got.Tick(), 33*time.Millisecond)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}
}
