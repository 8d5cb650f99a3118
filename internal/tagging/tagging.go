// Package tagging manages tag types, their colours, and the tag items that
// belong to them
package tagging

import (
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/ggoeuh/DAL-sub000/internal/apperr"
	"github.com/ggoeuh/DAL-sub000/internal/models"
)

// OtherType is the label used when a schedule's tag type cannot be resolved.
const OtherType = "기타"

// DefaultColor is returned for tag types that have no Tag.
const DefaultColor = "#9E9E9E"

// Palette is the fixed set of colours handed out to new tag types.
var Palette = []string{
	"#4A90E2",
	"#E94E77",
	"#50C878",
	"#F5A623",
	"#9B59B6",
	"#1ABC9C",
	"#E67E22",
	"#34495E",
	"#FF6F61",
	"#6B8E23",
	"#00A8CC",
	"#C0392B",
}

var (
	errEmptyTagType = &apperr.Error{
		Message: "tag type cannot be empty",
	}

	errEmptyTagName = &apperr.Error{
		Message: "tag name cannot be empty",
	}

	// ErrDuplicateTagName is returned when a tag name is already used by
	// another tag item.
	ErrDuplicateTagName = &apperr.Error{
		Message: "tag %q already belongs to %q",
	}
)

// ColorFor returns the colour of tagType. Unknown tag types get the first
// palette colour not used by any tag, or a cyclic pick once the palette is
// exhausted.
func ColorFor(tags []models.Tag, tagType string) string {
	for _, t := range tags {
		if t.TagType == tagType {
			return t.Color
		}
	}

	used := make(map[string]bool, len(tags))
	for _, t := range tags {
		used[strings.ToUpper(t.Color)] = true
	}

	for _, c := range Palette {
		if !used[c] {
			return c
		}
	}

	return Palette[len(tags)%len(Palette)]
}

// DisplayColor returns the stored colour for tagType, or DefaultColor.
func DisplayColor(tags []models.Tag, tagType string) string {
	for _, t := range tags {
		if t.TagType == tagType && t.Color != "" {
			return t.Color
		}
	}

	return DefaultColor
}

// ResolveType returns the tag type for a schedule. The tag item lookup by
// name wins; the schedule's stored type is the fallback, then OtherType.
func ResolveType(tagName, storedType string, items []models.TagItem) string {
	if t, ok := TypeOf(tagName, items); ok {
		return t
	}

	if storedType != "" {
		return storedType
	}

	return OtherType
}

// TypeOf looks up the tag type of the item named tagName.
func TypeOf(tagName string, items []models.TagItem) (string, bool) {
	if tagName == "" {
		return "", false
	}

	for _, it := range items {
		if it.TagName == tagName && it.TagType != "" {
			return it.TagType, true
		}
	}

	return "", false
}

// ScheduleType resolves the tag type of s against items.
func ScheduleType(s *models.Schedule, items []models.TagItem) string {
	return ResolveType(s.Tag, s.TagType, items)
}

// AddTag registers tagType with a colour from the palette. It is a no-op if
// the tag type already exists.
func AddTag(b *models.Bundle, tagType string) (models.Tag, error) {
	tagType = strings.TrimSpace(tagType)
	if tagType == "" {
		return models.Tag{}, errEmptyTagType
	}

	for _, t := range b.Tags {
		if t.TagType == tagType {
			return t, nil
		}
	}

	tag := models.Tag{
		TagType: tagType,
		Color:   ColorFor(b.Tags, tagType),
	}

	b.Tags = append(b.Tags, tag)

	return tag, nil
}

// AddTagItem adds tagName under tagType, creating the tag type if needed.
// Tag names are unique across all tag types so that schedules resolve to
// exactly one item.
func AddTagItem(b *models.Bundle, tagType, tagName string) (models.TagItem, error) {
	tagName = strings.TrimSpace(tagName)
	if tagName == "" {
		return models.TagItem{}, errEmptyTagName
	}

	tagType = strings.TrimSpace(tagType)

	for _, it := range b.TagItems {
		if it.TagName != tagName {
			continue
		}

		if it.TagType == tagType {
			return it, nil
		}

		return models.TagItem{}, ErrDuplicateTagName.Fmt(tagName, it.TagType)
	}

	tag, err := AddTag(b, tagType)
	if err != nil {
		return models.TagItem{}, err
	}

	item := models.TagItem{TagType: tag.TagType, TagName: tagName}

	b.TagItems = append(b.TagItems, item)

	return item, nil
}

// RemoveTagItem deletes the tag item named tagName. Schedules keep their
// cached tag type.
func RemoveTagItem(b *models.Bundle, tagName string) bool {
	n := len(b.TagItems)

	b.TagItems = slices.DeleteFunc(b.TagItems, func(it models.TagItem) bool {
		return it.TagName == tagName
	})

	return len(b.TagItems) != n
}

// RemoveTag deletes tagType together with all of its tag items.
func RemoveTag(b *models.Bundle, tagType string) bool {
	n := len(b.Tags)

	b.Tags = slices.DeleteFunc(b.Tags, func(t models.Tag) bool {
		return t.TagType == tagType
	})

	b.TagItems = slices.DeleteFunc(b.TagItems, func(it models.TagItem) bool {
		return it.TagType == tagType
	})

	return len(b.Tags) != n
}

// Names returns the tag names under tagType in natural order. An empty
// tagType returns every name.
func Names(items []models.TagItem, tagType string) []string {
	var names []string

	for _, it := range items {
		if tagType == "" || it.TagType == tagType {
			names = append(names, it.TagName)
		}
	}

	SortNatural(names)

	return names
}

// SortNatural sorts s so that "Study 2" comes before "Study 10".
func SortNatural(s []string) {
	sort.Sort(natural.StringSlice(s))
}
