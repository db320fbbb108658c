package service

import (
	"fmt"
	"strings"

	"foodpos/pos-svc/internal/domain"
)

// priceLine resolves the selected options of one order line against the
// menu item and returns the unit price snapshot and the notes to persist.
// Repeated option ids count once.
func priceLine(index int, item domain.MenuItem, line CreateOrderItem) (domain.Money, string, error) {
	price := item.Price
	seen := make(map[int]bool, len(line.Options))
	labels := make([]string, 0, len(line.Options))

	for _, optionID := range line.Options {
		if seen[optionID] {
			continue
		}
		seen[optionID] = true

		option, ok := item.Option(optionID)
		if !ok {
			return domain.Money{}, "", domain.NewValidationError(
				fmt.Sprintf("items[%d].options", index),
				"option %d does not belong to menu item %d", optionID, item.ID,
			)
		}
		price = price.Add(option.AdditionalPrice)
		labels = append(labels, option.GroupName+": "+option.Name)
	}

	return price, renderNotes(labels, line.Notes), nil
}

// renderNotes joins option labels and the free-text note into the single
// string stored with the order item, e.g. "Size: Large, Sugar: Less; no ice".
func renderNotes(labels []string, notes string) string {
	notes = strings.TrimSpace(notes)
	joined := strings.Join(labels, ", ")
	switch {
	case joined == "":
		return notes
	case notes == "":
		return joined
	}
	return joined + "; " + notes
}
