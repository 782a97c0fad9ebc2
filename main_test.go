package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/giantswarm/auth-settings/pkg/key"
)

func writeValues(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "values.yaml")
	values := "oidc:\n  clientID: oidc-client\n  clientSecret: oidc-secret\ngithub:\n  allowedTeams: [giantswarm/admins]\n"
	if err := os.WriteFile(path, []byte(values), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPrint(t *testing.T) {
	testCases := []struct {
		name     string
		format   string
		contains []string
	}{
		{
			name:     "case 0: text",
			format:   printText,
			contains: []string{"Login with OpenID Connect", "[Enabled]", "Login with GitHub", "[Disabled]", "• giantswarm/admins"},
		},
		{
			name:     "case 1: yaml",
			format:   printYAML,
			contains: []string{"oidc_client_id:\n  name: OIDC Client ID", "value: oidc-client", "- giantswarm/admins"},
		},
		{
			name:     "case 2: json",
			format:   printJSON,
			contains: []string{`"oidc_client_id": {`, `"value": "oidc-client"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			f := flags{valuesFile: writeValues(t), printFormat: tc.format}
			if err := run(context.Background(), f, zapr.NewLogger(zap.NewNop()), &out); err != nil {
				t.Fatal(err)
			}
			result := out.String()
			for _, c := range tc.contains {
				if !strings.Contains(result, c) {
					t.Fatalf("expected output to contain %q, got:\n%s", c, result)
				}
			}
			if strings.Contains(result, "oidc-secret") {
				t.Fatalf("expected secret to be redacted, got:\n%s", result)
			}
			if tc.format != printText && !strings.Contains(result, key.RedactedValue) {
				t.Fatalf("expected redacted marker, got:\n%s", result)
			}
		})
	}
}

func TestRunInvalidPrintFormat(t *testing.T) {
	f := flags{valuesFile: writeValues(t), printFormat: "xml"}
	err := run(context.Background(), f, zapr.NewLogger(zap.NewNop()), &bytes.Buffer{})
	if !IsInvalidFlag(err) {
		t.Fatalf("expected invalid flag error, got %v", err)
	}
}

func TestGetConfig(t *testing.T) {
	config, err := getConfig(flags{dexAppName: "dex", dexAppNamespace: "org-example", address: ":9090"})
	if err != nil {
		t.Fatal(err)
	}
	if !config.UsesDex() {
		t.Fatalf("expected dex source")
	}
	if config.Source.DexApp.Name != "dex" || config.Source.DexApp.Namespace != "org-example" || config.Server.Address != ":9090" {
		t.Fatalf("expected flags to override defaults, got %#v", config)
	}

	config, err = getConfig(flags{valuesFile: "values.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if config.UsesDex() {
		t.Fatalf("expected file source")
	}
}
