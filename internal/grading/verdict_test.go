package grading

import (
	"reflect"
	"testing"
)

func TestVerdicts(t *testing.T) {
	tests := []struct {
		name    string
		c       *Classification
		strokes int
		want    []Verdict
	}{
		{
			name:    "all matched in order",
			c:       &Classification{Mapping: []int{1, 2, 3}},
			strokes: 3,
			want:    []Verdict{Correct, Correct, Correct},
		},
		{
			name:    "unmatched stroke",
			c:       &Classification{Mapping: []int{1, 0, 2}, Errors: []StrokeError{{Type: ErrorExtra, WrittenIndices: []int{2}}}},
			strokes: 3,
			want:    []Verdict{Correct, Incorrect, Correct},
		},
		{
			name: "order error uses one-based indices",
			c: &Classification{
				Mapping: []int{2, 1},
				Errors: []StrokeError{
					{Type: ErrorOrder, WrittenIndices: []int{1}},
					{Type: ErrorOrder, WrittenIndices: []int{2}},
				},
			},
			strokes: 2,
			want:    []Verdict{WrongOrder, WrongOrder},
		},
		{
			name: "orientation error does not change verdict",
			c: &Classification{
				Mapping: []int{1},
				Errors:  []StrokeError{{Type: ErrorOrientation, WrittenIndices: []int{1}}},
			},
			strokes: 1,
			want:    []Verdict{Correct},
		},
		{
			name:    "unmatched beats order",
			c:       &Classification{Mapping: []int{0}, Errors: []StrokeError{{Type: ErrorOrder, WrittenIndices: []int{1}}}},
			strokes: 1,
			want:    []Verdict{Incorrect},
		},
		{
			name:    "short mapping",
			c:       &Classification{Mapping: []int{1}},
			strokes: 3,
			want:    []Verdict{Correct, Incorrect, Incorrect},
		},
		{
			name:    "nil classification",
			strokes: 2,
			want:    []Verdict{Incorrect, Incorrect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Verdicts(tt.c, tt.strokes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Verdicts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllCorrect(t *testing.T) {
	tests := []struct {
		in   []Verdict
		want bool
	}{
		{[]Verdict{Correct, Correct}, true},
		{[]Verdict{Correct, WrongOrder}, false},
		{[]Verdict{Incorrect}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := AllCorrect(tt.in); got != tt.want {
			t.Errorf("AllCorrect(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTokens(t *testing.T) {
	var tk Tokens
	a := tk.Issue("card-1")
	if !tk.Current(a) {
		t.Fatal("fresh token should be current")
	}
	b := tk.Issue("card-1")
	if tk.Current(a) {
		t.Error("reissued target should invalidate the older token")
	}
	if !tk.Current(b) {
		t.Error("latest token should be current")
	}
	tk.Invalidate()
	if tk.Current(b) {
		t.Error("invalidated token should be stale")
	}
	if tk.Current(Token{}) {
		t.Error("zero token should never be current")
	}
}
