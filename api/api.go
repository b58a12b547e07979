// Package api defines the JSON types exchanged with clients.
package api

type Status struct {
	Status string `json:"status"`
}

type Error struct {
	Error string `json:"error"`
}

type Store struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	CreateTime  string `json:"create_time,omitempty"`
	UpdateTime  string `json:"update_time,omitempty"`
}

type Stores struct {
	Stores []Store `json:"stores"`
}

type StoreEnvelope struct {
	Store Store `json:"store"`
}

type CreateStoreRequest struct {
	DisplayName string `json:"display_name"`
}

type Document struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	State       string `json:"state"`
	SizeBytes   string `json:"size_bytes"`
	ChunkCount  string `json:"chunk_count"`
	CreateTime  string `json:"create_time"`
	UpdateTime  string `json:"update_time"`
}

type Documents struct {
	Files []Document `json:"files"`
}

type Operation struct {
	Operation    string  `json:"operation"`
	DocumentName *string `json:"document_name"`
	DisplayName  *string `json:"display_name"`
	Store        *string `json:"store"`
	Done         bool    `json:"done"`
	Error        *string `json:"error"`
}

type Uploaded struct {
	Uploaded []Operation `json:"uploaded"`
}

type UploadURLRequest struct {
	URL         string `json:"url"`
	DisplayName string `json:"display_name,omitempty"`
}

type OperationStatus struct {
	Done         bool    `json:"done"`
	Error        *string `json:"error"`
	DocumentName *string `json:"document_name"`
	DisplayName  *string `json:"display_name"`
	Store        *string `json:"store"`
}

type AskRequest struct {
	Question    string   `json:"question"`
	MaxChunks   *int     `json:"max_chunks,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	StoreID     string   `json:"store_id,omitempty"`
}

type Citation struct {
	ID                  *string `json:"id"`
	Title               *string `json:"title"`
	URI                 *string `json:"uri"`
	Snippet             *string `json:"snippet"`
	ChunkReference      *string `json:"chunk_reference"`
	DocumentPath        *string `json:"document_path"`
	DocumentDisplayName *string `json:"document_display_name"`
	DocumentURI         *string `json:"document_uri"`
	DocumentError       *string `json:"document_error"`
}

type AskResponse struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

func String(v string) *string {
	return &v
}

// OptString maps an empty string onto a JSON null.
func OptString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
