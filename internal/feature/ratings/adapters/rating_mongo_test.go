package adapters

import "testing"

// 平均評価の丸め仕様のテストです。
// [7, 8] -> 7.5、[7, 8, 9] -> 8.0 のように小数第1位に丸めます。
func TestRoundToTenth(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "exact half rounds away from zero", in: 7.45, want: 7.5},
		{name: "two ratings average", in: 7.5, want: 7.5},
		{name: "three ratings average", in: 8.0, want: 8.0},
		{name: "repeating decimal rounds down", in: 7.333333333, want: 7.3},
		{name: "repeating decimal rounds up", in: 7.666666666, want: 7.7},
		{name: "zero stays zero", in: 0, want: 0},
		{name: "maximum rating", in: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roundToTenth(tt.in); got != tt.want {
				t.Errorf("roundToTenth(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
