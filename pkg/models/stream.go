package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Stream is one named entry of the go2rtc GET /api/streams response. Info is
// kept raw because go2rtc versions disagree on its shape.
type Stream struct {
	Name string
	Info json.RawMessage
}

// StreamList is the go2rtc stream map decoded in document order.
type StreamList []Stream

// UnmarshalJSON walks the object token by token so the order of the streams
// survives decoding.
func (l *StreamList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("stream list: expected JSON object")
	}

	var out StreamList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("stream list: unexpected key %v", keyTok)
		}

		var info json.RawMessage
		if err := dec.Decode(&info); err != nil {
			return fmt.Errorf("stream list: stream %q: %w", name, err)
		}
		out = append(out, Stream{Name: name, Info: info})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

type streamInfo struct {
	Producers []json.RawMessage `json:"producers"`
}

type producer struct {
	URL any `json:"url"`
}

// ProducerURLs returns the string url of every producer record, in order.
// Records that are not objects or carry no string url are skipped.
func (s Stream) ProducerURLs() []string {
	var info streamInfo
	if err := json.Unmarshal(s.Info, &info); err != nil {
		return nil
	}

	urls := make([]string, 0, len(info.Producers))
	for _, raw := range info.Producers {
		var p producer
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		if u, ok := p.URL.(string); ok && u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
