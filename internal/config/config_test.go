package config

import "testing"

func TestLoadDatabasePoolSizes(t *testing.T) {
	tests := []struct {
		name        string
		maxOpenEnv  string
		wantMaxOpen int
		maxIdleEnv  string
		wantMaxIdle int
	}{
		{"defaults", "", 100, "", 10},
		{"overridden", "25", 25, "5", 5},
		{"non-numeric falls back", "lots", 100, "few", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_MAX_OPEN_CONNS", tt.maxOpenEnv)
			t.Setenv("DB_MAX_IDLE_CONNS", tt.maxIdleEnv)

			cfg := Load()
			if cfg.Database.MaxOpenConns != tt.wantMaxOpen {
				t.Errorf("MaxOpenConns = %d, want %d", cfg.Database.MaxOpenConns, tt.wantMaxOpen)
			}
			if cfg.Database.MaxIdleConns != tt.wantMaxIdle {
				t.Errorf("MaxIdleConns = %d, want %d", cfg.Database.MaxIdleConns, tt.wantMaxIdle)
			}
		})
	}
}
