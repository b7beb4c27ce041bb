package extraction

import (
	"fmt"
	"strings"

	"intake-backend/internal/schema"
)

// BuildPrompt renders the extraction instruction for a document type. The
// field lists and rules come straight from the schema registry so the model
// is told exactly which keys to produce.
func BuildPrompt(s schema.DocumentTypeSchema) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Extract structured information from this %s document image.\n\n",
		strings.ReplaceAll(string(s.DocType), "_", " "))

	b.WriteString("CRITICAL INSTRUCTIONS:\n")
	b.WriteString("1. Return ONLY valid JSON, no explanations or markdown\n")
	b.WriteString("2. Use exact field names as specified\n")
	b.WriteString("3. Use null for missing information, don't make up data\n")
	b.WriteString("4. Follow validation rules exactly\n\n")

	b.WriteString("REQUIRED FIELDS (must extract):\n")
	for _, f := range s.Required {
		writeFieldLine(&b, f)
	}

	b.WriteString("\nOPTIONAL FIELDS (extract if available):\n")
	for _, f := range s.Optional {
		writeFieldLine(&b, f)
	}

	b.WriteString("\nEXAMPLE OUTPUT FORMAT:\n{\n")
	for i, f := range s.Required {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  %q: \"extracted value or null\"", primaryAlias(f))
	}
	b.WriteString("\n}\n\nExtract the data now:")

	return b.String()
}

func writeFieldLine(b *strings.Builder, f schema.Field) {
	fmt.Fprintf(b, "- %s", primaryAlias(f))
	if f.Rule != "" {
		fmt.Fprintf(b, " (%s)", f.Rule)
	}
	if len(f.Allowed) > 0 {
		fmt.Fprintf(b, " [one of: %s]", strings.Join(f.Allowed, ", "))
	}
	b.WriteString("\n")
}

// primaryAlias is the key name asked of the model: the highest-priority
// alias, matching what the original documents actually label the field.
func primaryAlias(f schema.Field) string {
	if len(f.Aliases) > 0 {
		return f.Aliases[0]
	}
	return f.Name
}
