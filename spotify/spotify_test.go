package spotify

import "testing"

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name  string
		track TrackInfo
		want  string
	}{
		{
			name:  "single artist",
			track: TrackInfo{Title: "Hello", Artists: []string{"Adele"}},
			want:  "Adele Hello",
		},
		{
			name:  "multiple artists",
			track: TrackInfo{Title: "Get Lucky", Artists: []string{"Daft Punk", "Pharrell Williams"}},
			want:  "Daft Punk Pharrell Williams Get Lucky",
		},
		{
			name:  "no artists",
			track: TrackInfo{Title: "Unknown"},
			want:  "Unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.SearchQuery(); got != tt.want {
				t.Errorf("SearchQuery() = %q; want %q", got, tt.want)
			}
		})
	}
}
