package planner

import "testing"

func TestEvaluateCost(t *testing.T) {
	tests := []struct {
		name          string
		formula       string
		quantity      int
		estimatedTime float64
		rate          float64
		want          float64
		wantErr       bool
	}{
		{
			name:          "empty formula falls back to time times rate",
			quantity:      3,
			estimatedTime: 90,
			rate:          40000,
			want:          60000,
		},
		{
			name:     "quantity based formula",
			formula:  "quantity * 1500",
			quantity: 10,
			want:     15000,
		},
		{
			name:          "mixed formula",
			formula:       "(estimated_time / 60) * rate + quantity * 100",
			quantity:      5,
			estimatedTime: 30,
			rate:          60000,
			want:          30500,
		},
		{
			name:    "syntax error",
			formula: "rate *** 2",
			wantErr: true,
		},
		{
			name:    "unknown identifier",
			formula: "weight * 2",
			wantErr: true,
		},
		{
			name:    "non numeric result",
			formula: "quantity > 0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateCost(tt.formula, tt.quantity, tt.estimatedTime, tt.rate)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
