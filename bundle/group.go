package bundle

import "strings"

// Group names in display order.
const (
	GroupConfig  = "Config"
	GroupScripts = "Scripts"
	GroupViews   = "Views"
	GroupStyles  = "Styles"
	GroupImages  = "Images"
	GroupMisc    = "Misc"
)

var groupOrder = []string{GroupConfig, GroupScripts, GroupViews, GroupStyles, GroupImages, GroupMisc}

// FileGroup is a named run of files, in bundle order.
type FileGroup struct {
	Name  string       `json:"name"`
	Files []SourceFile `json:"files"`
}

// Group sorts files into display groups by extension. Groups come in a
// fixed order and empty groups are omitted.
func Group(files []SourceFile) []FileGroup {
	byName := make(map[string][]SourceFile, len(groupOrder))
	for _, f := range files {
		g := groupOf(f.Path)
		byName[g] = append(byName[g], f)
	}

	var groups []FileGroup
	for _, name := range groupOrder {
		if fs := byName[name]; len(fs) > 0 {
			groups = append(groups, FileGroup{Name: name, Files: fs})
		}
	}
	return groups
}

func groupOf(p string) string {
	p = strings.ToLower(p)
	switch {
	case strings.HasSuffix(p, ".json"):
		return GroupConfig
	case strings.HasSuffix(p, ".js"), strings.HasSuffix(p, ".ts"), strings.HasSuffix(p, ".jsx"):
		return GroupScripts
	case strings.HasSuffix(p, ".html"):
		return GroupViews
	case strings.HasSuffix(p, ".css"):
		return GroupStyles
	case strings.HasSuffix(p, ".png"), strings.HasSuffix(p, ".ico"), strings.HasSuffix(p, ".jpg"):
		return GroupImages
	}
	return GroupMisc
}
