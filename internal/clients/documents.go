package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// UploadFile is one document sent to the index service.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// DocumentList is the parsed listing of indexed documents together with the upstream status.
type DocumentList struct {
	StatusCode int
	Documents  []string
}

// DocumentIndex talks to the document indexing service.
type DocumentIndex struct {
	client *Client
}

func NewDocumentIndex(client *Client) *DocumentIndex {
	return &DocumentIndex{client: client}
}

// Upload sends files as a multipart form, one "files" part per document.
func (d *DocumentIndex) Upload(ctx context.Context, files []UploadFile) (*Relay, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := form.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode upload: %w", err)
	}

	return d.client.Do(ctx, "POST", "/subir_documentos", &body, form.FormDataContentType())
}

func (d *DocumentIndex) BuildIndex(ctx context.Context) (*Relay, error) {
	return d.client.Post(ctx, "/crear_indice")
}

func (d *DocumentIndex) IndexStatus(ctx context.Context) (*Relay, error) {
	return d.client.Get(ctx, "/estado_indice")
}

func (d *DocumentIndex) Clear(ctx context.Context) (*Relay, error) {
	return d.client.Post(ctx, "/limpiar_documentos")
}

type questionRequest struct {
	Question string `json:"question"`
}

// Ask asks a question against the index.
func (d *DocumentIndex) Ask(ctx context.Context, question string) (*Relay, error) {
	return d.client.PostJSON(ctx, "/preguntar_documentos", questionRequest{Question: question})
}

// AskSimple asks a question against the index without the extended answer pipeline.
func (d *DocumentIndex) AskSimple(ctx context.Context, question string) (*Relay, error) {
	return d.client.PostJSON(ctx, "/preguntar_documentos_simple", questionRequest{Question: question})
}

func (d *DocumentIndex) DeleteDocument(ctx context.Context, filename string) (*Relay, error) {
	return d.client.PostJSON(ctx, "/eliminar_documento", map[string]string{"filename": filename})
}

// ListDocuments returns the indexed file names. A non-2xx upstream answer, or one whose documentos
// is not a list of names, yields an empty list with the upstream status; a 2xx answer that is not
// valid JSON is an error.
func (d *DocumentIndex) ListDocuments(ctx context.Context) (*DocumentList, error) {
	relay, err := d.client.Get(ctx, "/listar_documentos")
	if err != nil {
		return nil, err
	}

	list := &DocumentList{StatusCode: relay.StatusCode, Documents: []string{}}
	if !relay.OK() {
		return list, nil
	}

	var parsed struct {
		Documentos json.RawMessage `json:"documentos"`
	}
	if err := json.Unmarshal(relay.Body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse document list: %w", err)
	}

	var names []string
	if err := json.Unmarshal(parsed.Documentos, &names); err == nil && names != nil {
		list.Documents = names
	}
	return list, nil
}

