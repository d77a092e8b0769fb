package menu

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Columns of a POS category export.
const (
	colID        = "pos_id"
	colName      = "item_name"
	colBasePrice = "base_price"
	colDesc      = "description"
	colAvailable = "available"
	colModifiers = "modifiers_json"
)

var maxSelectionsRe = regexp.MustCompile(`Choose Up To (\d+)`)

// categoryOverrides fixes names that title-casing a file stem mangles.
// Matching is by substring, first hit wins.
var categoryOverrides = []struct{ match, name string }{
	{"Pastriesmuffinsdonuts", "Pastries, Muffins & Donuts"},
	{"Omelets Breakfast", "Omelets & Breakfast"},
	{"Bagels Sandwiches", "Bagels & Sandwiches"},
	{"Paninis Wraps", "Paninis & Wraps"},
	{"Soup Farina", "Soup & Farina"},
	{"Spreads Vegetables", "Spreads & Vegetables"},
	{"Grab N Go", "Grab & Go"},
	{"Patis Pastries", "Pati's Pastries"},
	{"Patis Savory", "Pati's Savory"},
	{"Chefs Specialties Sandwiches", "Chef's Specialties Sandwiches"},
}

// CategoryName derives a display category from an export file name.
func CategoryName(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := titleCase(strings.ReplaceAll(stem, "_", " "))

	for _, o := range categoryOverrides {
		if strings.Contains(name, o.match) {
			return o.name
		}
	}
	return name
}

// titleCase upper-cases a letter that follows a non-letter and lower-cases
// the rest.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LoadCSVDir builds a catalog from a directory holding one CSV per
// category. Files are read in name order; menu_summary files are skipped.
func LoadCSVDir(dir string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no CSV files found in %q", dir)
	}
	sort.Strings(paths)

	var (
		items      []Item
		categories []Category
	)

	for _, path := range paths {
		if strings.Contains(strings.ToLower(filepath.Base(path)), "menu_summary") {
			continue
		}

		category := CategoryName(path)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		fileItems, err := ReadCSV(f, category, logger.With("file", filepath.Base(path)))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}

		cat := Category{Name: category}
		for _, item := range fileItems {
			cat.ItemIDs = append(cat.ItemIDs, item.ID)
		}
		items = append(items, fileItems...)
		categories = append(categories, cat)

		logger.Debug("processed category", "category", category, "items", len(fileItems))
	}

	return New(items, categories)
}

// ReadCSV parses one category export.
func ReadCSV(r io.Reader, category string, logger *slog.Logger) ([]Item, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{colID, colName, colBasePrice} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var items []Item
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		price, err := decimal.NewFromString(field(rec, colBasePrice))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid base_price %q", line, field(rec, colBasePrice))
		}

		modifiers, err := ParseModifiers(field(rec, colModifiers))
		if err != nil {
			logger.Warn("error parsing modifiers", "line", line, "error", err)
		}

		desc := field(rec, colDesc)
		if strings.EqualFold(desc, "nan") {
			desc = ""
		}

		items = append(items, Item{
			ID:          field(rec, colID),
			Name:        field(rec, colName),
			Category:    category,
			BasePrice:   price,
			Description: desc,
			Available:   field(rec, colAvailable) == "Yes",
			Modifiers:   modifiers,
		})
	}

	return items, nil
}

type exportGroup struct {
	GroupName string           `json:"group_name"`
	Required  bool             `json:"required"`
	Modifiers []exportModifier `json:"modifiers"`
}

type exportModifier struct {
	ModifierID exportID            `json:"modifier_id"`
	Name       string              `json:"name"`
	Price      decimal.NullDecimal `json:"price"`
}

// exportID accepts ids written either as strings or as bare numbers.
type exportID string

func (id *exportID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = exportID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = exportID(n.String())
	return nil
}

// ParseModifiers converts the export's modifiers_json column. An empty
// cell or "[]" means no modifiers. A null option price counts as zero.
func ParseModifiers(raw string) (Modifiers, error) {
	mods := Modifiers{Required: []ModifierGroup{}, Optional: []ModifierGroup{}}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" || strings.EqualFold(raw, "nan") {
		return mods, nil
	}

	var groups []exportGroup
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return mods, err
	}

	for _, g := range groups {
		group := ModifierGroup{Name: g.GroupName, Options: []ModifierOption{}}
		if m := maxSelectionsRe.FindStringSubmatch(g.GroupName); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				group.MaxSelections = n
			}
		}

		for _, m := range g.Modifiers {
			price := decimal.Zero
			if m.Price.Valid {
				price = m.Price.Decimal
			}
			group.Options = append(group.Options, ModifierOption{
				ID:    string(m.ModifierID),
				Name:  m.Name,
				Price: price,
			})
		}

		if g.Required {
			mods.Required = append(mods.Required, group)
		} else {
			mods.Optional = append(mods.Optional, group)
		}
	}

	return mods, nil
}
