package setup

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func TestGetConfigFromFile(t *testing.T) {
	testCases := []struct {
		name        string
		file        string
		expected    Config
		expectedErr bool
	}{
		{
			name:     "case 0",
			file:     "",
			expected: DefaultConfig(),
		},
		{
			name: "case 1",
			file: "server:\n  address: 0.0.0.0:9000\n  readHeaderTimeout: 3s\nsource:\n  valuesFile: /etc/auth-settings/values.yaml\n",
			expected: Config{
				Server: Server{Address: "0.0.0.0:9000", ReadHeaderTimeout: 3 * time.Second},
				Source: Source{
					ValuesFile: "/etc/auth-settings/values.yaml",
					DexApp:     DexApp{Namespace: "giantswarm"},
				},
			},
		},
		{
			name: "case 2",
			file: "source:\n  dexApp:\n    name: dex-app\n    namespace: org-example\n",
			expected: Config{
				Server: Server{Address: DefaultAddress, ReadHeaderTimeout: DefaultReadHeaderTimeout},
				Source: Source{DexApp: DexApp{Name: "dex-app", Namespace: "org-example"}},
			},
		},
		{
			name:        "case 3",
			file:        "server:\n  port: 80\n",
			expectedErr: true,
		},
		{
			name:        "case 4",
			file:        "server:\n  address: \"\"\n",
			expectedErr: true,
		},
		{
			name:        "case 5",
			file:        "source:\n  dexApp:\n    namespace: \"\"\n",
			expectedErr: true,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.file), 0600); err != nil {
				t.Fatal(err)
			}
			result, err := GetConfigFromFile(path)
			if err != nil && !tc.expectedErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if err == nil && tc.expectedErr {
				t.Fatalf("expected error but got none")
			}
			if tc.expectedErr {
				if !IsInvalidConfig(err) {
					t.Fatalf("expected invalid config error, got %v", err)
				}
				return
			}
			if !reflect.DeepEqual(result, tc.expected) {
				t.Fatalf("expected result %#v got %#v", tc.expected, result)
			}
			if result.UsesDex() != (tc.expected.Source.ValuesFile == "") {
				t.Fatalf("unexpected source selection")
			}
		})
	}
}

func TestGetConfigFromMissingFile(t *testing.T) {
	_, err := GetConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !IsInvalidConfig(err) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}
