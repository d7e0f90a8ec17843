package scanner

// Vulnerability is one advisory a file scanner attached to a scanned file.
type Vulnerability struct {
	Source   string  `json:"source"`
	Name     string  `json:"name"`
	Severity string  `json:"severity"`
	CVSS     float64 `json:"cvss"`
}

// Finding groups the vulnerabilities reported against one scanned file. The
// file name doubles as the subject identifier the engine prefix-matches
// dependency names against.
type Finding struct {
	FileName        string          `json:"fileName"`
	FilePath        string          `json:"filePath"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}
