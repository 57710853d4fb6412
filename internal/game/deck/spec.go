package deck

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/primus-game/primus/internal/game/cards"
)

// ErrMalformedSpec is wrapped by every SpecError.
var ErrMalformedSpec = errors.New("malformed deck spec")

// Entry is one weighted line of a deck specification.
type Entry struct {
	Color    cards.Color
	Rank     cards.Rank
	Quantity int
	Effects  cards.Effects
	// Penalty overrides the rank's default draw penalty when set.
	Penalty *int
}

// Card builds the card this entry describes.
func (e Entry) Card() cards.Card {
	opts := []cards.Option{cards.WithEffects(e.Effects.List()...)}
	if e.Penalty != nil {
		opts = append(opts, cards.WithPenalty(*e.Penalty))
	}
	return cards.New(e.Color, e.Rank, opts...)
}

// Spec is an ordered deck specification.
type Spec []Entry

// Cards expands the spec into its card list, in spec order.
func (s Spec) Cards() []cards.Card {
	var out []cards.Card
	for _, e := range s {
		c := e.Card()
		for i := 0; i < e.Quantity; i++ {
			out = append(out, c)
		}
	}
	return out
}

// SpecError reports a malformed record.
type SpecError struct {
	Source string
	Line   int
	Err    error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("deck spec %s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *SpecError) Unwrap() []error {
	return []error{ErrMalformedSpec, e.Err}
}

const (
	fieldColor = iota
	fieldRank
	fieldQuantity
	fieldEffects
	fieldPenalty

	minFields = fieldQuantity + 1
	maxFields = fieldPenalty + 1
)

// ParseSpec reads records of the form
//
//	color,rank,quantity[,effect|effect...][,penalty]
//
// Blank lines and lines whose first non-blank character is '#' are
// skipped. Effects come only from the effects column. The first malformed
// record aborts the load.
func ParseSpec(r io.Reader, source string) (Spec, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var spec Spec
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &SpecError{Source: source, Line: parseErr.Line, Err: parseErr.Err}
			}
			return nil, fmt.Errorf("read deck spec %s: %w", source, err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		// Comment only catches '#' in the first column.
		if strings.HasPrefix(strings.TrimSpace(record[0]), "#") {
			continue
		}

		entry, err := parseEntry(record)
		if err != nil {
			return nil, &SpecError{Source: source, Line: line, Err: err}
		}
		spec = append(spec, entry)
	}
	return spec, nil
}

// LoadSpecFile parses the deck specification stored at path.
func LoadSpecFile(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck spec: %w", err)
	}
	defer f.Close()

	return ParseSpec(f, path)
}

func parseEntry(record []string) (Entry, error) {
	if len(record) < minFields || len(record) > maxFields {
		return Entry{}, fmt.Errorf("expected %d to %d fields, got %d", minFields, maxFields, len(record))
	}

	color, err := cards.ParseColor(record[fieldColor])
	if err != nil {
		return Entry{}, err
	}
	rank, err := cards.ParseRank(record[fieldRank])
	if err != nil {
		return Entry{}, err
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(record[fieldQuantity]))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid quantity %q", record[fieldQuantity])
	}
	if quantity <= 0 {
		return Entry{}, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	entry := Entry{Color: color, Rank: rank, Quantity: quantity}

	if len(record) > fieldEffects {
		for _, name := range strings.Split(record[fieldEffects], "|") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			effect, err := cards.ParseEffect(name)
			if err != nil {
				return Entry{}, err
			}
			entry.Effects = entry.Effects.With(effect)
		}
	}

	if len(record) > fieldPenalty && strings.TrimSpace(record[fieldPenalty]) != "" {
		penalty, err := strconv.Atoi(strings.TrimSpace(record[fieldPenalty]))
		if err != nil {
			return Entry{}, fmt.Errorf("invalid penalty %q", record[fieldPenalty])
		}
		if penalty < 0 {
			return Entry{}, fmt.Errorf("penalty must not be negative, got %d", penalty)
		}
		entry.Penalty = &penalty
	}

	return entry, nil
}
