package version

import "testing"

func TestBuildIDFor(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{
			name:     "epoch date",
			date:     "2026-01-15",
			expected: 0,
		},
		{
			name:     "next day after epoch",
			date:     "2026-01-16",
			expected: 1,
		},
		{
			name:     "one year later",
			date:     "2027-01-15",
			expected: 365,
		},
		{
			name:     "date with leap years included",
			date:     "2029-01-15",
			expected: 1096,
		},
		{
			name:      "invalid format",
			date:      "invalid",
			wantError: true,
		},
		{
			name:      "empty date",
			date:      "",
			wantError: true,
		},
		{
			name:      "before epoch",
			date:      "2026-01-14",
			wantError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildIDFor(tt.date)

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("buildIDFor(%q) = %d, want %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestString_UnknownBuild(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = ""
	if got := String(); got != "Build unknown (BuildDate is empty)" {
		t.Errorf("String() = %q", got)
	}
	if Info().Calculated {
		t.Error("Info must not be calculated without a build date")
	}
}
