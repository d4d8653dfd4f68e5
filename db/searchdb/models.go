package searchdb

type Document struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReferenceDocuments is the fixed collection served by the search endpoint.
var ReferenceDocuments = []Document{
	{ID: 1, Title: "Beautiful Night Sky", Content: "Stars were twinkling in the night sky"},
	{ID: 2, Title: "Astronomy Guide", Content: "The sky contains many stars"},
	{ID: 3, Title: "Poetry", Content: "Lovely stars sparkle in the dark night"},
}
