package services

import "testing"

func TestCleanVideoURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch url extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"short url with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=5", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"embed path", "https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"shorts path", "https://youtube.com/shorts/dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"iframe markup", `<iframe width="560" src="https://www.youtube.com/embed/dQw4w9WgXcQ" frameborder="0"></iframe>`, "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"raw id", "dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"direct file url passthrough", "https://cdn.engkids.vn/videos/lesson1.mp4", "https://cdn.engkids.vn/videos/lesson1.mp4"},
		{"storage url passthrough", "https://storage.googleapis.com/engkids/video.mp4", "https://storage.googleapis.com/engkids/video.mp4"},
		{"garbage passthrough", "not a url at all", "not a url at all"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanVideoURL(tc.in)
			if got != tc.want {
				t.Fatalf("CleanVideoURL(%q): want=%q got=%q", tc.in, tc.want, got)
			}
			// canonicalization must be idempotent
			again := CleanVideoURL(got)
			if again != got {
				t.Fatalf("CleanVideoURL not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestDifficultyValue(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"Beginner", 1},
		{"cơ bản", 1},
		{"1", 1},
		{"Intermediate", 2},
		{"Trung bình", 2},
		{"Advanced", 3},
		{"nâng cao", 3},
		{"Professional", 4},
		{"Chuyên nghiệp", 4},
		{"4", 4},
		{"", 2},
		{"expert", 2},
		{"99", 2},
	}
	for _, tc := range cases {
		if got := DifficultyValue(tc.in); got != tc.want {
			t.Fatalf("DifficultyValue(%q): want=%d got=%d", tc.in, tc.want, got)
		}
	}
}
