package service

import "github.com/MKhiriev/go-live-sync/models"

// Plan builds the envelopes announcing fragments to tokens on platform p.
//
// No fragments produce a single no_update envelope, one fragment a
// simple_update, and several fragments one slice_update each, indexed in
// order. Every envelope goes to the same token list.
func Plan(p models.Platform, fragments []string, tokens []string, cycleID, tag string) []models.Dispatch {
	if len(tokens) == 0 {
		return nil
	}

	if len(fragments) == 0 {
		return []models.Dispatch{{
			Platform: p,
			Envelope: models.Envelope{ID: cycleID, Tag: tag, Action: models.ActionNoUpdate},
			Tokens:   tokens,
		}}
	}

	action := models.ActionSimpleUpdate
	if len(fragments) > 1 {
		action = models.ActionSliceUpdate
	}

	out := make([]models.Dispatch, 0, len(fragments))
	for i, fragment := range fragments {
		index := i
		out = append(out, models.Dispatch{
			Platform: p,
			Envelope: models.Envelope{
				ID:        cycleID,
				Tag:       tag,
				Action:    action,
				Index:     &index,
				Size:      len(fragments),
				Reference: fragment,
			},
			Tokens: tokens,
		})
	}
	return out
}
