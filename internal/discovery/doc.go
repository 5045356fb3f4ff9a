// Package discovery scans markdown trees for documents carrying YAML
// front matter and builds the documentation index.
//
// A document is discoverable only if it starts with a "---" line and
// closes the block with a second "---", and the block provides both
// `summary` and `read_when`. Only the header lines are ever parsed;
// document bodies are not read into memory during a scan.
package discovery
