package config

import (
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
)

type testCLI struct {
	APIKey      string        `name:"api-key"`
	Translation string        `name:"translation"`
	Pause       time.Duration `name:"pause" default:"1s"`
}

func parseWith(t *testing.T, source string, args []string) *testCLI {
	t.Helper()

	resolver, err := TOML(strings.NewReader(source))
	if err != nil {
		t.Fatalf("TOML() error = %v", err)
	}

	cli := &testCLI{}
	parser, err := kong.New(cli, kong.Resolvers(resolver))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return cli
}

func TestTOMLSuppliesDefaults(t *testing.T) {
	source := `
api_key = "from-file"
translation = "kjv"
pause = "2s"
`
	cli := parseWith(t, source, nil)

	if cli.APIKey != "from-file" {
		t.Errorf("APIKey = %q, want %q", cli.APIKey, "from-file")
	}
	if cli.Translation != "kjv" {
		t.Errorf("Translation = %q, want %q", cli.Translation, "kjv")
	}
	if cli.Pause != 2*time.Second {
		t.Errorf("Pause = %v, want %v", cli.Pause, 2*time.Second)
	}
}

func TestTOMLExplicitFlagWins(t *testing.T) {
	source := `api_key = "from-file"`
	cli := parseWith(t, source, []string{"--api-key", "from-flag"})

	if cli.APIKey != "from-flag" {
		t.Errorf("APIKey = %q, want %q", cli.APIKey, "from-flag")
	}
}

func TestTOMLDashedKeys(t *testing.T) {
	source := `api-key = "dashed"`
	cli := parseWith(t, source, nil)

	if cli.APIKey != "dashed" {
		t.Errorf("APIKey = %q, want %q", cli.APIKey, "dashed")
	}
}

func TestTOMLMissingKeysKeepDefaults(t *testing.T) {
	cli := parseWith(t, `translation = "asv"`, nil)

	if cli.Pause != time.Second {
		t.Errorf("Pause = %v, want default %v", cli.Pause, time.Second)
	}
	if cli.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cli.APIKey)
	}
}

func TestTOMLInvalidSyntax(t *testing.T) {
	if _, err := TOML(strings.NewReader(`this is not = [valid toml`)); err == nil {
		t.Error("TOML() accepted invalid input")
	}
}
