package service

import (
	"encoding/json"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// Legacy payload field names, in resolution priority order. The journal has
// gone through several storage schemas; net P&L in particular has been stored
// under different keys and, in the oldest exports, inside a JSON blob in the
// notes field.
var (
	netPnlFields     = []string{"netPnl", "net_pnl"}
	genericPnlFields = []string{"pnl", "profitLoss", "profit_loss"}
	grossPnlFields   = []string{"grossPnl", "gross_pnl"}
	feeFields        = []string{"fees", "commissions", "commission"}
)

// NormalizeSession resolves a session's canonical daily figures from whatever
// schema the record was stored under.
//
// Net P&L resolution is an ordered-priority cascade:
//  1. explicit net-P&L column or payload field (netPnl, net_pnl)
//  2. generic P&L payload field (pnl, profitLoss)
//  3. notes-embedded pnl.net
//  4. notes-embedded pnl.gross minus notes-embedded fees and commissions
//  5. 0
//
// The function never fails: malformed numeric values coerce to 0 and
// malformed notes JSON is skipped. Every session therefore yields a usable
// NormalizedSession regardless of which schema generation it came from.
func NormalizeSession(session model.Session) model.NormalizedSession {
	notes := notesBlob(session)

	return model.NormalizedSession{
		ID:            session.ID,
		AccountID:     session.AccountID,
		Date:          truncateToDay(session.Date),
		NetPnl:        resolveNetPnl(session, notes),
		GrossPnl:      resolveGrossPnl(session, notes),
		Fees:          resolveFees(session, notes),
		Instrument:    session.Instrument,
		RespectedPlan: session.RespectedPlan,
	}
}

// NormalizeSessions normalizes a date-ordered slice of sessions, preserving order.
func NormalizeSessions(sessions []model.Session) []model.NormalizedSession {
	normalized := make([]model.NormalizedSession, len(sessions))
	for i, session := range sessions {
		normalized[i] = NormalizeSession(session)
	}
	return normalized
}

func resolveNetPnl(session model.Session, notes map[string]any) float64 {
	// Modern schema: explicit column wins outright.
	if session.NetPnl != nil {
		return *session.NetPnl
	}

	if value, ok := firstPayloadField(session.Payload, netPnlFields); ok {
		return value
	}

	if value, ok := firstPayloadField(session.Payload, genericPnlFields); ok {
		return value
	}

	if pnl, ok := notes["pnl"].(map[string]any); ok {
		if net, ok := toFloat(pnl["net"]); ok {
			return net
		}
		if gross, ok := toFloat(pnl["gross"]); ok {
			return gross - notesCosts(notes)
		}
	}

	return 0
}

func resolveGrossPnl(session model.Session, notes map[string]any) float64 {
	if session.GrossPnl != nil {
		return *session.GrossPnl
	}

	if value, ok := firstPayloadField(session.Payload, grossPnlFields); ok {
		return value
	}

	if pnl, ok := notes["pnl"].(map[string]any); ok {
		if gross, ok := toFloat(pnl["gross"]); ok {
			return gross
		}
	}

	// Without a gross figure anywhere, fall back to the resolved net.
	return resolveNetPnl(session, notes)
}

func resolveFees(session model.Session, notes map[string]any) float64 {
	if session.Fees != nil {
		return *session.Fees
	}

	if value, ok := firstPayloadField(session.Payload, feeFields); ok {
		return value
	}

	return notesCosts(notes)
}

// firstPayloadField returns the first resolvable numeric value among the
// candidate keys, in order.
func firstPayloadField(payload map[string]any, keys []string) (float64, bool) {
	if payload == nil {
		return 0, false
	}
	for _, key := range keys {
		raw, present := payload[key]
		if !present {
			continue
		}
		if value, ok := toFloat(raw); ok {
			return value, true
		}
	}
	return 0, false
}

// notesBlob extracts the structured blob some legacy exports serialized into
// the notes field. The blob may appear as a JSON string in the notes column,
// as a JSON string under payload["notes"], or as an already-decoded object.
// Anything unparsable yields an empty map.
func notesBlob(session model.Session) map[string]any {
	if session.Payload != nil {
		switch notes := session.Payload["notes"].(type) {
		case map[string]any:
			return notes
		case string:
			if blob, ok := decodeNotesJSON(notes); ok {
				return blob
			}
		}
	}

	if blob, ok := decodeNotesJSON(session.Notes); ok {
		return blob
	}

	return map[string]any{}
}

func decodeNotesJSON(notes string) (map[string]any, bool) {
	if notes == "" {
		return nil, false
	}
	var blob map[string]any
	if err := json.Unmarshal([]byte(notes), &blob); err != nil {
		return nil, false
	}
	return blob, true
}

// notesCosts sums the fee and commission figures found in a notes blob.
func notesCosts(notes map[string]any) float64 {
	var total float64
	for _, key := range []string{"fees", "commissions"} {
		if value, ok := toFloat(notes[key]); ok {
			total += value
		}
	}
	return total
}
