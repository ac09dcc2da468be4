package validator

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

var (
	ErrInvalidJSON      = errors.New("invalid json")
	ErrBodyTooLarge     = errors.New("request body too large")
	ErrUnsupportedMedia = errors.New("content type must be application/json")
)

// JSON decodes request bodies strictly: one object, no unknown fields. A
// client that sends fields the endpoint does not accept, such as an amount,
// gets a 400 instead of having them silently dropped.
type JSON struct {
	MaxBytes int64
}

func NewJSON() *JSON {
	return &JSON{MaxBytes: 64 << 10}
}

func (v *JSON) Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return ErrUnsupportedMedia
		}
	}

	body := http.MaxBytesReader(w, r.Body, v.MaxBytes)
	defer func() { _ = body.Close() }()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return errors.Join(ErrInvalidJSON, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrInvalidJSON
	}
	return nil
}
