package marketdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/utils"
)

// DefaultFaceValue is used when a quote record omits face_value.
const DefaultFaceValue = 100.0

// Input formats accepted by DecodeQuotes.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// quoteRecord is the on-disk quote shape. Either maturity (years) or tenor
// ("6M", "1.5Y") must be given.
type quoteRecord struct {
	Tenor      string   `json:"tenor,omitempty" yaml:"tenor,omitempty"`
	Maturity   *float64 `json:"maturity,omitempty" yaml:"maturity,omitempty"`
	CouponRate float64  `json:"coupon_rate" yaml:"coupon_rate"`
	Price      float64  `json:"price" yaml:"price"`
	FaceValue  *float64 `json:"face_value,omitempty" yaml:"face_value,omitempty"`
}

type quoteDocument struct {
	Quotes []quoteRecord `json:"quotes" yaml:"quotes"`
}

// FormatFromPath picks the decoder from a file extension, defaulting to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeQuotes reads a quote set. JSON input may be a single quote object,
// an array of quotes, or {"quotes": [...]}; YAML input may be a list or a
// mapping with a quotes key.
func DecodeQuotes(r io.Reader, format string) ([]bond.BondQuote, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read quotes: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	var records []quoteRecord
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		records, err = decodeYAML(trimmed)
	case FormatJSON, "":
		records, err = decodeJSON(trimmed)
	default:
		return nil, fmt.Errorf("unsupported quote format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no quotes in input")
	}

	quotes := make([]bond.BondQuote, 0, len(records))
	for i, rec := range records {
		q, err := rec.toQuote()
		if err != nil {
			return nil, fmt.Errorf("quote %d: %w", i, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func decodeJSON(raw []byte) ([]quoteRecord, error) {
	switch raw[0] {
	case '[':
		var records []quoteRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("parse JSON quotes: %w", err)
		}
		return records, nil
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("parse JSON quotes: %w", err)
		}
		if _, ok := probe["quotes"]; ok {
			var doc quoteDocument
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("parse JSON quotes: %w", err)
			}
			return doc.Quotes, nil
		}
		var rec quoteRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("parse JSON quote: %w", err)
		}
		return []quoteRecord{rec}, nil
	default:
		return nil, fmt.Errorf("parse JSON quotes: unexpected leading %q", raw[0])
	}
}

func decodeYAML(raw []byte) ([]quoteRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("parse YAML quotes: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var records []quoteRecord
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("parse YAML quotes: %w", err)
		}
		return records, nil
	case yaml.MappingNode:
		var doc quoteDocument
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse YAML quotes: %w", err)
		}
		return doc.Quotes, nil
	default:
		return nil, fmt.Errorf("parse YAML quotes: expected a list or a mapping")
	}
}

func (rec quoteRecord) toQuote() (bond.BondQuote, error) {
	q := bond.BondQuote{
		CouponRate: rec.CouponRate,
		Price:      rec.Price,
		FaceValue:  DefaultFaceValue,
	}
	if rec.FaceValue != nil {
		q.FaceValue = *rec.FaceValue
	}

	switch {
	case rec.Maturity != nil && rec.Tenor != "":
		return bond.BondQuote{}, fmt.Errorf("set either maturity or tenor, not both")
	case rec.Maturity != nil:
		q.Maturity = *rec.Maturity
	case rec.Tenor != "":
		years, err := utils.TenorToYears(rec.Tenor)
		if err != nil {
			return bond.BondQuote{}, err
		}
		q.Maturity = years
	default:
		return bond.BondQuote{}, fmt.Errorf("maturity or tenor is required")
	}
	return q, nil
}
