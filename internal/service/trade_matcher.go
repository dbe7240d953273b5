package service

import (
	"sort"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// legGroup accumulates entry and exit legs sharing a composite matching key.
type legGroup struct {
	symbol         string
	instrumentKind string
	side           string

	entryQty      float64
	entryNotional float64 // Σ(price * qty) across entry legs
	exitQty       float64
	exitNotional  float64

	earliestEntry *int // Earliest parsable entry clock, minutes since midnight
	latestExit    *int // Latest parsable exit clock, minutes since midnight
}

// MatchSessionLegs nets a session's entry legs against its exit legs and
// returns the closed round-trip trades.
//
// Matching model: legs are grouped by (symbol, instrumentKind, side) and each
// group's entries and exits are collapsed into quantity-weighted average
// prices:
//
//	avgPrice = Σ(price_i × qty_i) / Σqty_i
//
// The closed quantity is min(Σentry_qty, Σexit_qty) and the realized P&L is
// (avgExit − avgEntry) × closedQuantity, sign-inverted for shorts. This is an
// average-price matching model by design, not FIFO/LIFO lot accounting: the
// journal reports performance per round trip, not tax lots.
//
// A group with only entries or only exits represents an open position and
// produces no MatchedTrade row.
//
// Hold time is the latest parsable exit clock minus the earliest parsable
// entry clock. Legs whose time-of-day text cannot be parsed are excluded from
// the timing computation but still count toward quantities and P&L; trades
// without resolvable timing are tallied in UntimedCount for transparency.
func MatchSessionLegs(sessionDate time.Time, legs []model.TradeLeg) model.MatchResult {
	groups := make(map[string]*legGroup)
	order := []string{}

	for _, leg := range legs {
		if leg.Quantity <= 0 {
			continue
		}

		key := leg.Symbol + "|" + leg.InstrumentKind + "|" + leg.Side
		group, exists := groups[key]
		if !exists {
			group = &legGroup{
				symbol:         leg.Symbol,
				instrumentKind: leg.InstrumentKind,
				side:           leg.Side,
			}
			groups[key] = group
			order = append(order, key)
		}

		minutes, timed := parseClockMinutes(leg.TimeOfDay)

		switch leg.Role {
		case model.LegRoleEntry:
			group.entryQty += leg.Quantity
			group.entryNotional += leg.Price * leg.Quantity
			if timed && (group.earliestEntry == nil || minutes < *group.earliestEntry) {
				group.earliestEntry = &minutes
			}
		case model.LegRoleExit:
			group.exitQty += leg.Quantity
			group.exitNotional += leg.Price * leg.Quantity
			if timed && (group.latestExit == nil || minutes > *group.latestExit) {
				group.latestExit = &minutes
			}
		}
	}

	result := model.MatchResult{Trades: []model.MatchedTrade{}}

	for _, key := range order {
		group := groups[key]

		// Entry-only or exit-only groups are open positions, not trades.
		if group.entryQty <= 0 || group.exitQty <= 0 {
			continue
		}

		closedQty := min(group.entryQty, group.exitQty)
		avgEntry := group.entryNotional / group.entryQty
		avgExit := group.exitNotional / group.exitQty

		sign := 1.0
		if group.side == model.SideShort {
			sign = -1.0
		}
		realizedPnl := (avgExit - avgEntry) * closedQty * sign

		trade := model.MatchedTrade{
			SessionDate:    truncateToDay(sessionDate),
			Symbol:         group.symbol,
			InstrumentKind: group.instrumentKind,
			Side:           group.side,
			AvgEntryPrice:  round(avgEntry),
			AvgExitPrice:   round(avgExit),
			ClosedQuantity: closedQty,
			RealizedPnl:    round(realizedPnl),
		}

		if group.earliestEntry != nil && group.latestExit != nil {
			hold := *group.latestExit - *group.earliestEntry
			trade.EntryMinutes = group.earliestEntry
			trade.ExitMinutes = group.latestExit
			trade.HoldMinutes = &hold
			result.TimedCount++
		} else {
			result.UntimedCount++
		}

		result.Trades = append(result.Trades, trade)
	}

	return result
}

// MatchAllSessions runs the matcher over every session's legs and returns the
// combined trades ordered by session date, with aggregate timing counters.
func MatchAllSessions(sessions []model.NormalizedSession, legsBySession map[string][]model.TradeLeg) model.MatchResult {
	combined := model.MatchResult{Trades: []model.MatchedTrade{}}

	for _, session := range sessions {
		legs, exists := legsBySession[session.ID]
		if !exists {
			continue
		}

		matched := MatchSessionLegs(session.Date, legs)
		combined.Trades = append(combined.Trades, matched.Trades...)
		combined.TimedCount += matched.TimedCount
		combined.UntimedCount += matched.UntimedCount
	}

	sort.SliceStable(combined.Trades, func(i, j int) bool {
		return combined.Trades[i].SessionDate.Before(combined.Trades[j].SessionDate)
	})

	return combined
}
