package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactingHandler(t *testing.T) {
	tests := []struct {
		name     string
		attrs    []slog.Attr
		expected map[string]string
	}{
		{
			name: "sensitive keys are redacted",
			attrs: []slog.Attr{
				slog.String("token", "abcdef"),
				slog.String("authToken", "abcdef"),
				slog.String("baseurl", "http://h:32400"), // safe
			},
			expected: map[string]string{
				"token":     "[REDACTED]",
				"authToken": "[REDACTED]",
				"baseurl":   "http://h:32400",
			},
		},
		{
			name: "case insensitive matching",
			attrs: []slog.Attr{
				slog.String("X-Plex-Token", "secret"),
				slog.String("UserPassword", "secret"),
			},
			expected: map[string]string{
				"X-Plex-Token": "[REDACTED]",
				"UserPassword": "[REDACTED]",
			},
		},
		{
			name: "nested groups are redacted",
			attrs: []slog.Attr{
				slog.Group("config",
					slog.String("token", "hidden"),
					slog.String("timeout", "30s"),
				),
			},
			expected: map[string]string{
				"config.token":   "[REDACTED]",
				"config.timeout": "30s",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewRedactingHandler(slog.NewJSONHandler(&buf, nil))
			logger := slog.New(h)

			args := make([]any, len(tt.attrs))
			for i, a := range tt.attrs {
				args[i] = a
			}
			logger.Info("test message", args...)

			var result map[string]any
			if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
				t.Fatalf("failed to parse log output: %v", err)
			}

			for k, v := range tt.expected {
				parts := strings.Split(k, ".")
				var val any = result
				var found bool

				for i, part := range parts {
					m, ok := val.(map[string]any)
					if !ok {
						break
					}
					val, ok = m[part]
					if !ok {
						break
					}
					if i == len(parts)-1 {
						found = true
					}
				}

				if !found {
					t.Errorf("key %s not found in output", k)
					continue
				}

				if val != v {
					t.Errorf("key %s: got %v, want %v", k, val, v)
				}
			}
		})
	}
}

func TestRedactingHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewRedactingHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(h).With("token", "supersecret")

	logger.Info("hello")

	if strings.Contains(buf.String(), "supersecret") {
		t.Fatalf("pre-bound attr leaked: %s", buf.String())
	}
}
