package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Selectors are pinned to the current page structure. They break when the
// site ships different markup, which is what the re-fetch budget is for: a
// transient render variant may resolve on a fresh fetch.
const (
	priceSelector = "span#size_name_0_price p"
	titleSelector = "span#productTitle"
)

// Extract pulls the product name and price out of a product page. Both
// fields must come from the same document; a page yielding only one of them
// produces no snapshot.
func Extract(markup string) (Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Snapshot{}, &ParseError{Err: err}
	}

	priceNode := doc.Find(priceSelector)
	if priceNode.Length() == 0 {
		return Snapshot{}, &MissingFieldError{Field: "price"}
	}
	price, err := parsePrice(priceNode.First().Text())
	if err != nil {
		// malformed price text is indistinguishable from a missing one
		return Snapshot{}, &MissingFieldError{Field: "price"}
	}

	titleNode := doc.Find(titleSelector)
	if titleNode.Length() == 0 {
		return Snapshot{}, &MissingFieldError{Field: "name"}
	}

	return Snapshot{
		Name:  collapseWhitespace(titleNode.First().Text()),
		Price: price,
	}, nil
}

// parsePrice strips surrounding whitespace and the currency symbol before
// parsing, e.g. "  $42.50\r\n" -> 42.5.
func parsePrice(text string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Trim(text, " \r\n\t$"))
}

// collapseWhitespace trims the ends and squeezes internal whitespace runs
// down to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
