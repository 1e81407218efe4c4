package llm

import (
	"encoding/base64"
	"testing"
)

func TestParseDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello"))

	att, err := ParseDataURI("data:image/png;base64," + payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if att.MIMEType != "image/png" {
		t.Errorf("mime = %q", att.MIMEType)
	}
	if att.Data != payload {
		t.Errorf("data = %q", att.Data)
	}

	raw, err := att.decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != "hello" {
		t.Errorf("decoded = %q", raw)
	}

	if got := att.dataURI(); got != "data:image/png;base64,"+payload {
		t.Errorf("dataURI = %q", got)
	}
}

func TestParseDataURIRejects(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"not a data uri", "https://example.com/image.png"},
		{"no payload", "data:image/png;base64"},
		{"not base64 encoded", "data:text/plain,hello"},
		{"missing mime", "data:;base64,aGVsbG8="},
		{"invalid base64", "data:image/png;base64,!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDataURI(tt.uri); err == nil {
				t.Errorf("ParseDataURI(%q) succeeded, want error", tt.uri)
			}
		})
	}
}
