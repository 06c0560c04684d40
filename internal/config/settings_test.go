package config

import (
	"testing"
)

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("NAMEMATCH_WORKERS", "3")
	t.Setenv("NAMEMATCH_THRESHOLD", "80.5")
	t.Setenv("NAMEMATCH_SHUFFLE", "off")
	t.Setenv("NAMEMATCH_SEED", "42")
	t.Setenv("NAMEMATCH_SKIP_MALFORMED", "yes")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Workers != 3 {
		t.Errorf("Workers = %d, want 3", s.Workers)
	}
	if s.Threshold != 80.5 {
		t.Errorf("Threshold = %v, want 80.5", s.Threshold)
	}
	if s.Shuffle {
		t.Errorf("Shuffle = true, want false")
	}
	if s.Seed != 42 {
		t.Errorf("Seed = %d, want 42", s.Seed)
	}
	if !s.SkipMalformed {
		t.Errorf("SkipMalformed = false, want true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Settings) {}, wantErr: false},
		{name: "zero workers", mutate: func(s *Settings) { s.Workers = 0 }, wantErr: true},
		{name: "threshold above range", mutate: func(s *Settings) { s.Threshold = 101 }, wantErr: true},
		{name: "negative threshold", mutate: func(s *Settings) { s.Threshold = -1 }, wantErr: true},
		{name: "zero chunk", mutate: func(s *Settings) { s.ChunkSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("NAMEMATCH_TEST_BOOL", "garbage")
	if got := GetEnvBool("NAMEMATCH_TEST_BOOL", true); !got {
		t.Errorf("GetEnvBool with unparsable value should fall back to default")
	}
}
