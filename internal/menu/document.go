package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Document is the menu_data.json snapshot produced by menu-convert.
// Object keys of "items" and "categories" are read in file order.
type Document struct {
	Metadata   Metadata       `json:"metadata"`
	Categories orderedEntries `json:"categories"`
	Items      orderedEntries `json:"items"`
}

type documentCategory struct {
	Name      string   `json:"name"`
	ItemIDs   []string `json:"item_ids"`
	ItemCount int      `json:"item_count"`
}

// orderedEntries keeps a JSON object's members in the order they appear.
type orderedEntries struct {
	keys   []string
	values []json.RawMessage
}

func (o *orderedEntries) UnmarshalJSON(data []byte) error {
	o.keys, o.values = nil, nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		o.keys = append(o.keys, key)
		o.values = append(o.values, raw)
	}

	_, err = dec.Token()
	return err
}

func (o orderedEntries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(o.values[i])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *orderedEntries) add(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	o.keys = append(o.keys, key)
	o.values = append(o.values, raw)
	return nil
}

// Catalog validates the document and builds a catalog from it.
func (d *Document) Catalog() (*Catalog, error) {
	items := make([]Item, 0, len(d.Items.keys))
	for i, key := range d.Items.keys {
		var item Item
		if err := json.Unmarshal(d.Items.values[i], &item); err != nil {
			return nil, fmt.Errorf("item %q: %w", key, err)
		}
		if item.ID == "" {
			item.ID = key
		}
		if item.ID != key {
			return nil, fmt.Errorf("item key %q does not match id %q", key, item.ID)
		}
		items = append(items, item)
	}

	categories := make([]Category, 0, len(d.Categories.keys))
	for i, key := range d.Categories.keys {
		var cat documentCategory
		if err := json.Unmarshal(d.Categories.values[i], &cat); err != nil {
			return nil, fmt.Errorf("category %q: %w", key, err)
		}
		if cat.Name == "" {
			cat.Name = key
		}
		categories = append(categories, Category{Name: cat.Name, ItemIDs: cat.ItemIDs})
	}

	return New(items, categories)
}

// NewDocument renders a catalog into the snapshot format. Prices are
// written as plain JSON numbers.
func NewDocument(c *Catalog, generatedAt time.Time) (*Document, error) {
	d := &Document{
		Metadata: Metadata{
			TotalItems:      c.Len(),
			TotalCategories: len(c.categories),
			GeneratedAt:     generatedAt.Format(time.RFC3339),
		},
	}

	for _, cat := range c.categories {
		if err := d.Categories.add(cat.Name, documentCategory{
			Name:      cat.Name,
			ItemIDs:   cat.ItemIDs,
			ItemCount: len(cat.ItemIDs),
		}); err != nil {
			return nil, err
		}
	}
	for _, item := range c.Items() {
		if err := d.Items.add(item.ID, item.View()); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ReadDocument decodes a snapshot and builds the catalog.
func ReadDocument(r io.Reader) (*Catalog, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode menu document: %w", err)
	}
	return doc.Catalog()
}

// LoadFile reads a menu_data.json file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()

	return ReadDocument(f)
}

// WriteDocument encodes a catalog snapshot with indentation.
func WriteDocument(w io.Writer, c *Catalog, generatedAt time.Time) error {
	doc, err := NewDocument(c, generatedAt)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// SampleSize is how many items WriteSample includes.
const SampleSize = 5

type sampleDocument struct {
	SampleItems []ItemView `json:"sample_items"`
	Note        string     `json:"note"`
}

// WriteSample writes the first SampleSize items for quick inspection.
func WriteSample(w io.Writer, c *Catalog) error {
	items := make([]ItemView, 0, SampleSize)
	for _, item := range c.Items() {
		if len(items) == SampleSize {
			break
		}
		items = append(items, item.View())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(sampleDocument{
		SampleItems: items,
		Note:        fmt.Sprintf("This is a sample of %d items from the menu for inspection", SampleSize),
	})
}
