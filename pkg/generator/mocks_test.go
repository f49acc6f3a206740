package generator

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockContentClient struct {
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	resp         *genai.GenerateContentResponse
	err          error
}

func (m *mockContentClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	return m.resp, m.err
}

type mockImagesClient struct {
	calls      int
	lastModel  string
	lastPrompt string
	lastConfig *genai.GenerateImagesConfig
	resp       *genai.GenerateImagesResponse
	err        error
}

func (m *mockImagesClient) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastPrompt = prompt
	m.lastConfig = config
	return m.resp, m.err
}

// mockFactory はクライアント生成の呼び出しを記録します。
type mockFactory struct {
	content    *mockContentClient
	images     *mockImagesClient
	apiKeys    []string
	factoryErr error
}

func newMockFactory() *mockFactory {
	return &mockFactory{
		content: &mockContentClient{resp: imageContentResponse("image/png", []byte("gemini-png"))},
		images:  &mockImagesClient{resp: imagenResponse([]byte("imagen-png"))},
	}
}

func (m *mockFactory) NewContentGenerator(ctx context.Context, apiKey string) (ContentGenerator, error) {
	m.apiKeys = append(m.apiKeys, apiKey)
	if m.factoryErr != nil {
		return nil, m.factoryErr
	}
	return m.content, nil
}

func (m *mockFactory) NewImagesGenerator(ctx context.Context, apiKey string) (ImagesGenerator, error) {
	m.apiKeys = append(m.apiKeys, apiKey)
	if m.factoryErr != nil {
		return nil, m.factoryErr
	}
	return m.images, nil
}

// mockReader は remoteio.InputReader のうち Open のみを実装します。
type mockReader struct {
	remoteio.InputReader
	files map[string][]byte
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	data, ok := m.files[uri]
	if !ok {
		return nil, errors.New("object not found: " + uri)
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

// mockHTTPClient は httpkit.ClientInterface のうち FetchBytes のみを実装します。
type mockHTTPClient struct {
	httpkit.ClientInterface
	data    []byte
	err     error
	fetched []string
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.fetched = append(m.fetched, url)
	return m.data, m.err
}

// --- Fixtures ---

func imageContentResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "here is your image"},
					{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
				},
			},
		}},
	}
}

func imagenResponse(data []byte) *genai.GenerateImagesResponse {
	return &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{{
			Image: &genai.Image{ImageBytes: data, MIMEType: "image/png"},
		}},
	}
}
