package cliconfig

import "testing"

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"CFLOG_REGION":   "ap-northeast-1",
				"CFLOG_PROFILE":  "cdn",
				"CFLOG_ENDPOINT": "http://localhost:9000",
				"CFLOG_LIMIT":    "25",
				"CFLOG_JSON":     "true",
				"CFLOG_VERBOSE":  "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Region:   "ap-northeast-1",
				Profile:  "cdn",
				Endpoint: "http://localhost:9000",
				Limit:    25,
				JSON:     true,
				Verbose:  true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"CFLOG_REGION":  "ap-northeast-1",
				"CFLOG_PROFILE": "cdn",
			},
			changed:  map[string]bool{"region": true},
			initial:  Config{Region: "eu-west-1"},
			expected: Config{Region: "eu-west-1", Profile: "cdn"},
		},
		{
			name: "bad int value",
			envVars: map[string]string{
				"CFLOG_LIMIT": "many",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "bad bool value",
			envVars: map[string]string{
				"CFLOG_JSON": "maybe",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
