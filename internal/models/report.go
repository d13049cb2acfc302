package models

// Report describes the outcome of parsing one document.
type Report struct {
	Index  int    // 1-based position among all documents
	Label  string // where the document came from, e.g. "arg 2" or "line 7"
	Source string
	Value  Value
	Result Result
	Offset int // byte offset in Source where parsing stopped
}

// OK reports whether the document parsed successfully
func (r Report) OK() bool {
	return r.Result == ResultOK
}

// Summary tallies a set of reports.
type Summary struct {
	Total    int
	OK       int
	Failed   int
	ByType   map[Type]int   // successful documents only
	ByResult map[Result]int // every document
}

// AnalysisResult is everything produced by one run
type AnalysisResult struct {
	Reports []Report
	Summary Summary
}
