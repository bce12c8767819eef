// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// Device is a push target: an opaque registration token and the platform it
// belongs to.
type Device struct {
	Token    string   `json:"token"`
	Platform Platform `json:"os"`
}

// Notification is the user-visible notification block forwarded verbatim to
// the push transport next to every envelope.
type Notification map[string]any

// Size returns the length in bytes of the JSON form of n. This is the
// overhead subtracted from a platform limit before fragmenting. An empty
// notification costs nothing.
func (n Notification) Size() int {
	if len(n) == 0 {
		return 0
	}
	b, err := json.Marshal(n)
	if err != nil {
		return 0
	}
	return len(b)
}

// PushConfig describes who is told about changes and how.
// A PushConfig is never modified after being installed; installing a new one
// resets the announced baseline.
type PushConfig struct {
	// APIKey authenticates against the push transport. Empty or "0" disables
	// the transport.
	APIKey string `json:"api_key"`
	// ReferenceID is copied into every envelope as its id.
	ReferenceID string `json:"reference_id"`
	// Notification is sent alongside every envelope.
	Notification Notification `json:"notification,omitempty"`
	// Tag is copied into every envelope so clients can route updates.
	Tag string `json:"tag"`
	// Devices are the default targets of a notification cycle.
	Devices []Device `json:"devices"`
}

// TokensByPlatform groups device tokens per platform, preserving the order in
// which devices were listed.
func TokensByPlatform(devices []Device) map[Platform][]string {
	grouped := make(map[Platform][]string, len(Platforms))
	for _, d := range devices {
		grouped[d.Platform] = append(grouped[d.Platform], d.Token)
	}
	return grouped
}

// Envelope is the data block of one push message. Index is nil for
// [ActionNoUpdate]; Reference is empty for [ActionNoUpdate].
type Envelope struct {
	ID        string `json:"id"`
	Tag       string `json:"tag"`
	Action    Action `json:"action"`
	Index     *int   `json:"index,omitempty"`
	Size      int    `json:"size"`
	Reference string `json:"reference,omitempty"`
}

// AsMap returns the envelope in the shape placed under "data" in the wire
// message.
func (e Envelope) AsMap() map[string]any {
	m := map[string]any{
		"id":     e.ID,
		"tag":    e.Tag,
		"action": e.Action.String(),
		"size":   e.Size,
	}
	if e.Index != nil {
		m["index"] = *e.Index
	}
	if e.Action != ActionNoUpdate {
		m["reference"] = e.Reference
	}
	return m
}

func (e Envelope) String() string {
	idx := "-"
	if e.Index != nil {
		idx = fmt.Sprint(*e.Index)
	}
	return fmt.Sprintf("%s[%s/%d]", e.Action, idx, e.Size)
}

// Dispatch pairs an envelope with the tokens it is sent to.
type Dispatch struct {
	Platform Platform
	Envelope Envelope
	Tokens   []string
}

// PushMessage is the payload handed to the push transport.
type PushMessage struct {
	RegistrationIDs []string       `json:"registration_ids"`
	Data            map[string]any `json:"data"`
	Notification    Notification   `json:"notification,omitempty"`
}

// NewPushMessage builds the wire message for d.
func NewPushMessage(d Dispatch, n Notification) PushMessage {
	return PushMessage{
		RegistrationIDs: d.Tokens,
		Data:            d.Envelope.AsMap(),
		Notification:    n,
	}
}

// DeliveryResult is what the transport reports for one send attempt. It is
// not a delivery receipt.
type DeliveryResult struct {
	MulticastID int64            `json:"multicast_id"`
	Success     int              `json:"success"`
	Failure     int              `json:"failure"`
	Results     []DeliveryStatus `json:"results,omitempty"`
}

// DeliveryStatus is the per-token outcome of a send attempt.
type DeliveryStatus struct {
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
