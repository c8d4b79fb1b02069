package contextterms

// stopWords filters common English words that add noise when mining shared
// vocabulary between a job and a resume.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "such": true,
	"able": true, "get": true, "set": true, "other": true, "some": true,
	"any": true, "may": true, "must": true, "should": true, "would": true,
	"could": true, "these": true, "those": true, "there": true, "where": true,
	"when": true, "while": true, "via": true, "per": true, "within": true,
	"across": true, "between": true, "both": true, "most": true, "very": true,
}
