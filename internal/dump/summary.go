package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nodech/hsw-wallet-utils/internal/jsonarr"
)

// MissingKey groups elements that lack the grouping field.
const MissingKey = "(none)"

// Group is one bucket of a Summary.
type Group struct {
	Key    string
	Count  int
	Weight float64
}

// Summary aggregates a dump by one field.
type Summary struct {
	By       string
	WeightBy string // empty: weight is the element count
	Total    float64
	Count    int
	Groups   []Group // heaviest first, ties by key
}

// SummaryOptions names the dotted fields to group and weigh by.
type SummaryOptions struct {
	By     string
	Weight string
}

// OpenArray opens a dump file for element-wise reading. With auto set the
// framing is detected from the first bytes, otherwise streamed selects it.
func OpenArray(path string, streamed, auto bool) (*jsonarr.Decoder, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if auto {
		return jsonarr.NewAutoDecoder(f), f, nil
	}
	return jsonarr.NewDecoder(f, streamed), f, nil
}

// Summarize reads every element of dec and groups it by opts.By. Elements
// must be JSON objects. Weights must be non-negative numbers (or numeric
// strings, as hsd writes amounts in some endpoints).
func Summarize(dec *jsonarr.Decoder, opts SummaryOptions) (*Summary, error) {
	if opts.By == "" {
		return nil, fmt.Errorf("no field to group by")
	}

	byKey := make(map[string]*Group)
	s := &Summary{By: opts.By, WeightBy: opts.Weight}

	err := jsonarr.DecodeEach(dec, func(el map[string]any) error {
		key := MissingKey
		if v, ok := Field(el, opts.By); ok {
			key = formatKey(v)
		}

		weight := 1.0
		if opts.Weight != "" {
			v, ok := Field(el, opts.Weight)
			if !ok {
				return fmt.Errorf("element %d has no %q field", s.Count, opts.Weight)
			}
			w, err := toNumber(v)
			if err != nil || w < 0 {
				return fmt.Errorf("element %d: %q is not a non-negative number", s.Count, opts.Weight)
			}
			weight = w
		}

		g, ok := byKey[key]
		if !ok {
			g = &Group{Key: key}
			byKey[key] = g
		}
		g.Count++
		g.Weight += weight
		s.Total += weight
		s.Count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Groups = make([]Group, 0, len(byKey))
	for _, g := range byKey {
		s.Groups = append(s.Groups, *g)
	}
	sort.Slice(s.Groups, func(i, j int) bool {
		a, b := s.Groups[i], s.Groups[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Key < b.Key
	})

	return s, nil
}

// Top keeps the n heaviest groups and folds the rest into one "other" group.
func (s *Summary) Top(n int) []Group {
	if n <= 0 || len(s.Groups) <= n {
		return s.Groups
	}
	top := make([]Group, n, n+1)
	copy(top, s.Groups[:n])

	other := Group{Key: "other"}
	for _, g := range s.Groups[n:] {
		other.Count += g.Count
		other.Weight += g.Weight
	}
	return append(top, other)
}

// Field follows a dotted path ("covenant.type") through nested objects.
func Field(el map[string]any, path string) (any, bool) {
	var cur any = el
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func formatKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}

func toNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
