package appendix

import (
	"reflect"
	"testing"
)

func TestAggregate(t *testing.T) {
	cases := []struct {
		name     string
		boundary int
		labels   []Label
		want     []int
	}{
		{
			name:     "runs with gaps",
			boundary: 1,
			labels:   []Label{LabelNonTable, LabelTable, LabelTable, LabelNonTable, LabelTable},
			want:     []int{2, 3, 5},
		},
		{
			name:     "offset boundary",
			boundary: 3,
			labels:   []Label{LabelTable, LabelNonTable, LabelTable, LabelTable},
			want:     []int{3, 5, 6},
		},
		{
			name:     "all tables",
			boundary: 2,
			labels:   []Label{LabelTable, LabelTable},
			want:     []int{2, 3},
		},
		{
			name:     "no tables",
			boundary: 4,
			labels:   []Label{LabelNonTable, LabelNonTable},
			want:     nil,
		},
		{
			name:     "not found",
			boundary: NotFound,
			labels:   []Label{LabelTable},
			want:     nil,
		},
		{
			name:     "empty labels",
			boundary: 5,
			labels:   nil,
			want:     nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Aggregate(tc.boundary, tc.labels)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Aggregate(%d, %v) = %v, want %v", tc.boundary, tc.labels, got, tc.want)
			}
		})
	}
}

func TestAllPages(t *testing.T) {
	cases := []struct {
		name     string
		boundary int
		total    int
		want     []int
	}{
		{"mid document", 3, 6, []int{3, 4, 5, 6}},
		{"single page", 6, 6, []int{6}},
		{"past end", 7, 6, nil},
		{"not found", NotFound, 6, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AllPages(tc.boundary, tc.total)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("AllPages(%d, %d) = %v, want %v", tc.boundary, tc.total, got, tc.want)
			}
		})
	}
}
