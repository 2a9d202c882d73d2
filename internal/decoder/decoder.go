package decoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
)

// Decoder decodes catalog search responses into listings.
// Listings are read from "mods.listItems" array, every other field is skipped.
type Decoder struct{}

// Decode decodes listings from catalog and returns each listing with decoding error into output channel.
// Malformed items are reported as results with error, malformed json stops decoding.
func (d Decoder) Decode(ctx context.Context, catalog io.Reader, output chan<- models.ParsingResult) error {
	dec := json.NewDecoder(catalog)
	dec.UseNumber()

	found, err := enterPath(dec, "mods", "listItems")
	if err != nil || !found {
		return err
	}

	if err := expectDelim(dec, '['); err != nil {
		return err
	}

	for dec.More() {
		var item Item
		err := dec.Decode(&item)

		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case output <- models.ParsingResult{
			Listing: item.toListing(),
			Error:   err,
		}:
		}
	}

	return expectDelim(dec, ']')
}

// enterPath moves decoder to the value of nested object keys.
// It returns false when any of keys is missing.
func enterPath(dec *json.Decoder, keys ...string) (bool, error) {
	for _, key := range keys {
		found, err := enterKey(dec, key)
		if err != nil || !found {
			return false, err
		}
	}

	return true, nil
}

func enterKey(dec *json.Decoder, key string) (bool, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return false, err
	}

	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return false, err
		}

		if token == key {
			return true, nil
		}

		var skipped json.RawMessage
		if err := dec.Decode(&skipped); err != nil {
			return false, err
		}
	}

	return false, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	token, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := token.(json.Delim); !ok || delim != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrUnexpectedToken, want, token)
	}

	return nil
}
