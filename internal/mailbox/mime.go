package mailbox

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// bodyParts walks a raw RFC822 message and returns its plain-text and HTML
// bodies. Multipart messages keep the largest part of each type; nested
// multiparts are walked recursively.
func bodyParts(raw []byte) (plain, html string) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		// Headerless payload; treat the whole thing as a single text body.
		return string(raw), ""
	}

	body, err := io.ReadAll(io.LimitReader(msg.Body, 5<<20))
	if err != nil {
		return "", ""
	}
	return textParts(msg.Header.Get("Content-Type"),
		msg.Header.Get("Content-Transfer-Encoding"), body)
}

func textParts(contentType, transferEnc string, body []byte) (plain, html string) {
	cte := strings.ToLower(strings.TrimSpace(transferEnc))

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(decodeTransferEncoding(body, cte)), ""
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return string(decodeTransferEncoding(body, cte)), ""
		}

		mr := multipart.NewReader(bytes.NewReader(body), boundary)
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}

			partType := p.Header.Get("Content-Type")
			partCTE := strings.ToLower(strings.TrimSpace(p.Header.Get("Content-Transfer-Encoding")))
			b, _ := io.ReadAll(io.LimitReader(p, 3<<20))
			b = decodeTransferEncoding(b, partCTE)

			pMedia, _, _ := mime.ParseMediaType(partType)
			pMedia = strings.ToLower(pMedia)

			switch {
			case strings.HasPrefix(pMedia, "multipart/"):
				pl, ht := textParts(partType, "", b)
				if len(ht) > len(html) {
					html = ht
				}
				if len(pl) > len(plain) {
					plain = pl
				}
			case strings.HasPrefix(pMedia, "text/html"):
				if len(b) > len(html) {
					html = string(b)
				}
			case strings.HasPrefix(pMedia, "text/plain"):
				if len(b) > len(plain) {
					plain = string(b)
				}
			}
		}
		return plain, html
	}

	s := decodeTransferEncoding(body, cte)
	if strings.HasPrefix(mediaType, "text/html") {
		return "", string(s)
	}
	return string(s), ""
}

func decodeTransferEncoding(b []byte, cte string) []byte {
	switch cte {
	case "base64":
		dec := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 5<<20))
		return out
	case "quoted-printable":
		dec := quotedprintable.NewReader(bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 5<<20))
		return out
	default:
		return b
	}
}
