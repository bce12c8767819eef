// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/MKhiriev/go-live-sync/models"
)

// payloadMargin is reserved on every platform for envelope fields the
// transport adds around the fragment.
const payloadMargin = 400

const (
	androidPayloadLimit = 4096 - payloadMargin
	iosPayloadLimit     = 2048 - payloadMargin
)

func platformLimit(p models.Platform) int {
	if p == models.PlatformIOS {
		return iosPayloadLimit
	}
	return androidPayloadLimit
}

// fragmentLimit is the number of payload characters one envelope may carry
// on p once overhead bytes of notification are accounted for.
func fragmentLimit(p models.Platform, overhead int) (int, error) {
	limit := platformLimit(p) - overhead
	if limit <= 0 {
		return 0, fmt.Errorf("%w: %s limit is %d after %d bytes of notification",
			ErrConfigurationInvalid, p, limit, overhead)
	}
	return limit, nil
}

// validateLimits fails when any platform would be left without room for
// payload.
func validateLimits(n models.Notification) error {
	overhead := n.Size()
	for _, p := range models.Platforms {
		if _, err := fragmentLimit(p, overhead); err != nil {
			return err
		}
	}
	return nil
}

// Fragment encodes doc and splits it into the ordered pieces sent to devices
// on platform p. An unchanged diff yields no fragments.
func Fragment(doc models.DiffDocument, changed bool, p models.Platform, overhead int) ([]string, error) {
	if !changed {
		return nil, nil
	}

	limit, err := fragmentLimit(p, overhead)
	if err != nil {
		return nil, err
	}

	payload, err := encodePayload(doc)
	if err != nil {
		return nil, err
	}
	return splitPayload(payload, limit), nil
}

// encodePayload serializes doc as ASCII-only JSON and hex-encodes every
// character as two lowercase digits.
func encodePayload(doc models.DiffDocument) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode diff: %w", err)
	}
	text := asciiJSON(bytes.TrimRight(buf.Bytes(), "\n"))

	const digits = "0123456789abcdef"
	out := make([]byte, 0, 2*len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		out = append(out, digits[c>>4], digits[c&0x0f])
	}
	return string(out), nil
}

// asciiJSON rewrites non-ASCII runes of valid JSON as \uXXXX escapes. Non
// ASCII can only occur inside strings, where the escape is equivalent.
func asciiJSON(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, r := range string(b) {
		if r < 0x80 {
			sb.WriteByte(byte(r))
			continue
		}
		for _, unit := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&sb, `\u%04x`, unit)
		}
	}
	return sb.String()
}

func splitPayload(payload string, limit int) []string {
	if payload == "" {
		return nil
	}
	if len(payload) <= limit {
		return []string{payload}
	}

	parts := make([]string, 0, (len(payload)+limit-1)/limit)
	for start := 0; start < len(payload); start += limit {
		end := min(start+limit, len(payload))
		parts = append(parts, payload[start:end])
	}
	return parts
}
