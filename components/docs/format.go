package docs

import (
	"fmt"
	"strings"

	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

// FormatResults renders search results as markdown, one section per
// snippet with its tech stack, source link and content.
func FormatResults(records []vectordb.Record) string {
	if len(records) == 0 {
		return "No documentation snippets found matching your query."
	}
	var sb strings.Builder
	sb.WriteString("# Documentation Snippets\n\n")
	for i, record := range records {
		meta := record.Embedding.Meta
		title := meta["title"]
		if title == "" {
			title = "Documentation Snippet"
		}
		description := meta["description"]
		if description == "" {
			description = "No description available"
		}
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, title)
		fmt.Fprintf(&sb, "*%s*\n\n", description)
		fmt.Fprintf(&sb, "**Tech Stack**: %s\n\n", strings.Join(techStack(meta), " | "))
		if url := meta["source_url"]; url != "" {
			fmt.Fprintf(&sb, "**Source**: [%s](%s)\n\n", url, url)
		}
		fmt.Fprintf(&sb, "```\n%s\n```\n\n", record.Embedding.Object)
		if i < len(records)-1 {
			sb.WriteString("---\n\n")
		}
	}
	return sb.String()
}

// techStack lists the technology lines for a snippet based on its
// category, mirroring the metadata layout written by Documentation.Meta.
func techStack(meta map[string]string) []string {
	var lines []string
	add := func(label, key string) {
		if meta[key] == "" {
			return
		}
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s: %s %s", label, meta[key], meta[key+"_version"])))
	}
	switch Category(meta["category"]) {
	case CategoryLanguage:
		add("Language", "language")
	case CategoryFramework:
		add("Framework", "framework")
		add("Language", "language")
	case CategoryLibrary:
		add("Library", "library")
		add("Language", "language")
		add("Framework", "framework")
	}
	return lines
}

// FormatComponents renders a component listing as a markdown bullet list.
func FormatComponents(items []TechComponent, category Category) string {
	if len(items) == 0 {
		return fmt.Sprintf("No documentation components found for category: %s.", category)
	}
	label := strings.ToUpper(string(category[0])) + string(category[1:])
	var sb strings.Builder
	fmt.Fprintf(&sb, "Available %s Components:\n\n", label)
	for _, item := range items {
		sb.WriteString("- " + item.Name)
		if item.Version != "" {
			fmt.Fprintf(&sb, " (Version: %s)", item.Version)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
