package imaging

import "testing"

func TestDetectExtensionSignatures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		url  string
		want string
	}{
		{
			name: "png signature wins over url extension",
			data: []byte("\x89PNG\r\n\x1a\nrest-of-image"),
			url:  "https://cdn.example.org/picture.jpg",
			want: ".png",
		},
		{
			name: "jpeg jfif signature",
			data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01"),
			url:  "https://cdn.example.org/picture",
			want: ".jpg",
		},
		{
			name: "gif89a signature",
			data: []byte("GIF89a...."),
			url:  "https://cdn.example.org/picture",
			want: ".gif",
		},
		{
			name: "gif87a signature",
			data: []byte("GIF87a...."),
			url:  "https://cdn.example.org/picture",
			want: ".gif",
		},
		{
			name: "unknown signature falls back to url extension",
			data: []byte("RIFF....WEBPVP8 "),
			url:  "https://cdn.example.org/path/picture.webp",
			want: ".webp",
		},
		{
			name: "url extension ignores query string",
			data: []byte("no signature here"),
			url:  "https://cdn.example.org/picture.jpeg?width=800",
			want: ".jpeg",
		},
		{
			name: "no signature and no url extension",
			data: []byte("plain data"),
			url:  "https://cdn.example.org/picture",
			want: ".dat",
		},
		{
			name: "empty data",
			data: nil,
			url:  "https://cdn.example.org/noext",
			want: ".dat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectExtension(tt.data, tt.url); got != tt.want {
				t.Errorf("Expected extension %s, got %s", tt.want, got)
			}
		})
	}
}
