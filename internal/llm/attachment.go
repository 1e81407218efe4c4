package llm

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// decode returns the attachment's raw bytes.
func (a *Attachment) decode() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, fmt.Errorf("decode attachment: %w", err)
	}
	return data, nil
}

// dataURI renders the attachment as a data URI for providers that take
// file content by URL.
func (a *Attachment) dataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIMEType, a.Data)
}

// ParseDataURI splits a "data:<mime>;base64,<data>" URI into an Attachment.
// Uploads arrive from the client in this form.
func ParseDataURI(uri string) (*Attachment, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: no payload")
	}
	mime, encoded := strings.CutSuffix(meta, ";base64")
	if !encoded {
		return nil, fmt.Errorf("data URI must be base64-encoded")
	}
	if mime == "" {
		return nil, fmt.Errorf("data URI has no MIME type")
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return &Attachment{MIMEType: mime, Data: data}, nil
}
