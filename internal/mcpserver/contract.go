package mcpserver

// JournalFormatContract describes the Markdown layout the journal vault
// imports.
const JournalFormatContract = `# Daybook Journal Format

Each journal file holds one day's entry. At most one entry exists per day;
when two files name the same day, the one whose path sorts first wins.

## Structure

` + "```" + `markdown
---
date: 2025-01-15        # REQUIRED unless the file is named 2025-01-15.md
title: A quiet Wednesday # OPTIONAL, falls back to the first "# " heading
locked: false            # OPTIONAL
access: private          # OPTIONAL, private (default) or public
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. Dates are calendar days written YYYY-MM-DD. Impossible days such as
   2025-02-30 are rejected and the file is skipped.
2. The frontmatter fences must open the file. Invalid YAML is treated as
   plain body text, so the date must then come from the file name.
3. Files end in ` + "`" + `.md` + "`" + `. Hidden files and directories are ignored.
4. Editing a file replaces that day's entry, including one typed in the app.
   Deleting the file deletes the entry.
5. Encoding is UTF-8.

## Example

` + "```" + `markdown
---
date: 2025-01-20
title: Standup and a long run
---

Ran 10k before work. Standup ran long.
` + "```" + `
`
