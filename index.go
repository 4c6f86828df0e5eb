package swiftdaddy

// ItemIndex holds every item of a site, ordered by date descending, and
// the set of tags in use. It is built once per publishing run.
type ItemIndex struct {
	items []Item
	tags  []Tag
}

// NewItemIndex builds an index over a copy of items.
func NewItemIndex(items []Item) *ItemIndex {
	sorted := append([]Item(nil), items...)
	SortItems(sorted)

	var tags []Tag
	seen := make(map[string]bool)
	for _, it := range sorted {
		for _, t := range it.Tags {
			key := normalizeTag(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, t)
		}
	}
	SortTags(tags)
	return &ItemIndex{items: sorted, tags: tags}
}

// ListItems returns items, newest first, optionally filtered by tag.
func (x *ItemIndex) ListItems(tag Tag) []Item {
	if tag == "" {
		return append([]Item(nil), x.items...)
	}
	normalized := normalizeTag(tag)
	var filtered []Item
	for _, it := range x.items {
		for _, t := range it.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, it)
				break
			}
		}
	}
	return filtered
}

// ListSection returns the items of section id, newest first.
func (x *ItemIndex) ListSection(id SectionID) []Item {
	var out []Item
	for _, it := range x.items {
		if it.SectionID == id {
			out = append(out, it)
		}
	}
	return out
}

// ListTags returns all tags in use, sorted alphabetically.
func (x *ItemIndex) ListTags() []Tag {
	return append([]Tag(nil), x.tags...)
}

// GetItem returns the item at path.
func (x *ItemIndex) GetItem(path string) (Item, error) {
	for _, it := range x.items {
		if it.Path == path {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

// Len returns the number of items.
func (x *ItemIndex) Len() int { return len(x.items) }

func normalizeTag(t Tag) string {
	return t.Slug()
}
