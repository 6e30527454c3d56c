package config

import "testing"

func TestParseCORSOrigins(t *testing.T) {
	t.Run("local default", func(t *testing.T) {
		origins := parseCORSOrigins("", "local")
		if len(origins) != 2 {
			t.Fatalf("expected 2 default origins, got %v", origins)
		}
	})

	t.Run("prod denies by default", func(t *testing.T) {
		if origins := parseCORSOrigins("", "prod"); origins != nil {
			t.Fatalf("expected nil origins in prod, got %v", origins)
		}
	})

	t.Run("trims and skips empties", func(t *testing.T) {
		origins := parseCORSOrigins(" https://a.example , ,https://b.example", "prod")
		if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
			t.Fatalf("unexpected origins: %v", origins)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "AUTH_REQUIRED", "JWT_ISSUER", "JWT_TTL_MINUTES", "REPORTS_MAX_RANGE_DAYS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if !cfg.AuthRequired {
		t.Error("expected auth required by default")
	}
	if cfg.JWTIssuer != "macrohub" {
		t.Errorf("expected default issuer 'macrohub', got %s", cfg.JWTIssuer)
	}
	if cfg.JWTTTLMinutes != 10080 {
		t.Errorf("expected default TTL 10080, got %d", cfg.JWTTTLMinutes)
	}
	if cfg.ReportsMaxRangeDays != 366 {
		t.Errorf("expected default max range 366, got %d", cfg.ReportsMaxRangeDays)
	}
}

func TestAuthRequiredDisabled(t *testing.T) {
	t.Setenv("AUTH_REQUIRED", "0")

	cfg := Load()
	if cfg.AuthRequired {
		t.Error("expected AUTH_REQUIRED=0 to disable auth")
	}
}
