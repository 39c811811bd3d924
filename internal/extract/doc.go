// Package extract turns careers pages into normalized job postings.
// Each supported company has a dedicated extractor with site-specific
// selectors and pagination; everything else goes through a heuristic
// extractor that probes common listing markup.
package extract
