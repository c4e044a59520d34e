package api

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"position ok", PositionPayload{Row: 0, Col: 4}, false},
		{"position negative", PositionPayload{Row: -1, Col: 0}, true},
		{"unit missing id", UnitPayload{}, true},
		{"xp ok", ExperiencePayload{UnitID: "u", Amount: 10}, false},
		{"xp zero", ExperiencePayload{UnitID: "u"}, true},
		{"unlock negative", UnlockPayload{UnitID: "u", Row: 2, Col: -1}, true},
		{"upgrade missing key", UpgradePayload{Enabled: true}, true},
		{"pulse zero is allowed", PulsePayload{Side: "PLAYER"}, false},
		{"pulse negative", PulsePayload{Side: "ENEMY", Amount: -3}, true},
		{"pulse no side", PulsePayload{Amount: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
