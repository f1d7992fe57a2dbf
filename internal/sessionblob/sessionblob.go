// Package sessionblob encodes cart state into the blob kept by session backends and
// decodes blobs written by any earlier version of the storefront.
//
// Version 0 blobs carry no version field; they are the objects the browser used to
// keep in local storage. They are migrated on read. Every decoded line is checked
// against the line invariants and dropped when it fails them.
package sessionblob

import (
	"errors"
	"fmt"

	"agrimarket-cart/internal/domain"
	"github.com/goccy/go-json"
)

// CurrentVersion is written by Encode.
const CurrentVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported session blob version")

// Report describes what Decode had to do to produce a valid state.
type Report struct {
	FromVersion int
	Dropped     []string
	Merged      int
}

func (r Report) Clean() bool {
	return len(r.Dropped) == 0 && r.Merged == 0
}

type envelope struct {
	Version int               `json:"version"`
	Items   []json.RawMessage `json:"items"`
	IsOpen  bool              `json:"isOpen"`
}

type currentBlob struct {
	Version int               `json:"version"`
	Items   []domain.LineItem `json:"items"`
	IsOpen  bool              `json:"isOpen"`
}

// Encode serializes state at CurrentVersion.
func Encode(state domain.CartState) ([]byte, error) {
	items := state.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	b, err := json.Marshal(currentBlob{Version: CurrentVersion, Items: items, IsOpen: state.IsOpen})
	if err != nil {
		return nil, fmt.Errorf("encode session blob: %w", err)
	}
	return b, nil
}

// Decode parses raw, migrating older versions. A blob that is not valid JSON, or
// that was written by a newer version, is an error; individual bad lines are not.
func Decode(raw []byte) (domain.CartState, Report, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.CartState{}, Report{}, fmt.Errorf("decode session blob: %w", err)
	}

	report := Report{FromVersion: env.Version}
	var items []domain.LineItem
	switch env.Version {
	case 0:
		items = migrateLegacy(env.Items, &report)
	case CurrentVersion:
		items = decodeCurrent(env.Items, &report)
	default:
		return domain.CartState{}, report, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	return domain.CartState{Items: dedupe(items, &report), IsOpen: env.IsOpen}, report, nil
}

func decodeCurrent(raw []json.RawMessage, report *Report) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(raw))
	for i, r := range raw {
		var item domain.LineItem
		if err := json.Unmarshal(r, &item); err != nil {
			report.Dropped = append(report.Dropped, fmt.Sprintf("#%d", i))
			continue
		}
		if !validLine(item) {
			report.Dropped = append(report.Dropped, dropLabel(item.ProductID, i))
			continue
		}
		items = append(items, item)
	}
	return items
}

func validLine(item domain.LineItem) bool {
	if !domain.ValidProductID(item.ProductID) || !item.Mode.Valid() {
		return false
	}
	if item.Quantity < 1 || item.Quantity > domain.MaxQuantity || item.RentalDays < 0 {
		return false
	}
	return !item.Price.IsNegative() && !item.DailyRate.IsNegative() && !item.Deposit.IsNegative()
}

// dedupe merges lines sharing a key into the first occurrence.
func dedupe(items []domain.LineItem, report *Report) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	seen := make(map[domain.LineKey]int, len(items))
	for _, item := range items {
		if idx, ok := seen[item.Key()]; ok {
			out[idx].Quantity = domain.AddQuantities(out[idx].Quantity, item.Quantity)
			report.Merged++
			continue
		}
		seen[item.Key()] = len(out)
		out = append(out, item)
	}
	return out
}

func dropLabel(id string, idx int) string {
	if id == "" {
		return fmt.Sprintf("#%d", idx)
	}
	return id
}
