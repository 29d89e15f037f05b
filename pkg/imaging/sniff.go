package imaging

import (
	"bytes"
	"net/url"
	"path"
)

// DefaultExtension is used when neither the byte signature nor the source
// URL reveal the image format.
const DefaultExtension = ".dat"

// sniffLimit is how many leading bytes the signatures are matched against.
const sniffLimit = 32

var signatures = []struct {
	prefix []byte
	ext    string
}{
	{[]byte("\x89PNG"), ".png"},
	{[]byte("\xff\xd8\xff\xe0\x00\x10JFIF"), ".jpg"},
	{[]byte("GIF87a"), ".gif"},
	{[]byte("GIF89a"), ".gif"},
}

// DetectExtension determines the file extension for downloaded image data.
// The byte signature wins over whatever extension the URL suggests; with no
// recognized signature the URL path extension is used, and failing that the
// generic placeholder.
func DetectExtension(data []byte, sourceURL string) string {
	head := data
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(head, sig.prefix) {
			return sig.ext
		}
	}

	if parsed, err := url.Parse(sourceURL); err == nil {
		if ext := path.Ext(parsed.Path); ext != "" {
			return ext
		}
	}

	return DefaultExtension
}
