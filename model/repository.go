package model

// RepositoryRecord is the projection of a GitHub repository we need to aggregate languages
type RepositoryRecord struct {
	NameWithOwner string         `json:"nameWithOwner"`
	Languages     []LanguageSize `json:"languages"`
}

type LanguageSize struct {
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
}

// PageInfo carries the continuation of a paginated listing
// EndCursor is opaque, nil on input means first page
type PageInfo struct {
	HasNextPage bool
	EndCursor   *string
}

type RepositoryPage struct {
	Repositories []RepositoryRecord
	PageInfo     PageInfo
}
