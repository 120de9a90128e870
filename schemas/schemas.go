// Package schemas embeds the JSON Schemas for request bodies accepted by the careers page.
package schemas

import _ "embed"

// Candidate is the JSON Schema for the candidate payload relayed to the ATS.
//
//go:embed candidate.schema.json
var Candidate string
