// Package pubmed looks up literature citations in NCBI PubMed.
//
// [Client.FetchCitation] queries the E-utilities esummary endpoint and turns
// the summary into an [ihm.Citation]:
//
//   - title, journal (source) and volume are copied
//   - pages "211-218" become the first and last page
//   - the year is the first word of pubdate
//   - authors are those with authtype "Author", in order
//   - the DOI comes from the article ids
//
// Summaries are cached per PubMed id. Set an API key to raise NCBI's rate
// limit from three to ten requests per second.
//
// [ihm.Citation]: github.com/matzehuels/ihmgraph/pkg/ihm.Citation
package pubmed
