// Package config loads medrag configuration from a TOML file,
// falling back to built-in defaults when no file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all medrag settings.
type Config struct {
	Ollama     OllamaConfig     `toml:"ollama"`
	Qdrant     QdrantConfig     `toml:"qdrant"`
	Processing ProcessingConfig `toml:"processing"`
	Retrieval  RetrievalConfig  `toml:"retrieval"`
	Storage    StorageConfig    `toml:"storage"`
}

// OllamaConfig configures the Ollama server and models.
type OllamaConfig struct {
	// BaseURL is the Ollama API base URL.
	BaseURL string `toml:"base_url"`

	// EmbeddingModel is the model used for embeddings.
	EmbeddingModel string `toml:"embedding_model"`

	// EmbeddingDimensions is the embedding vector size for the model.
	EmbeddingDimensions int `toml:"embedding_dimensions"`

	// ChatModel is the model used for answer generation.
	ChatModel string `toml:"chat_model"`

	// Temperature controls generation randomness. Kept low so medical
	// answers stay close to the retrieved context.
	Temperature float64 `toml:"temperature"`

	// MaxTokens caps the generated answer length.
	MaxTokens int `toml:"max_tokens"`
}

// QdrantConfig configures the Qdrant vector store.
type QdrantConfig struct {
	// Address is the Qdrant gRPC address.
	Address string `toml:"address"`

	// Collection is the collection name.
	Collection string `toml:"collection"`
}

// ProcessingConfig configures document processing.
type ProcessingConfig struct {
	// ChunkSize is the maximum chunk size in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the overlap between adjacent chunks in characters.
	ChunkOverlap int `toml:"chunk_overlap"`
}

// RetrievalConfig configures similarity search.
type RetrievalConfig struct {
	// TopK is the number of passages retrieved per query.
	TopK int `toml:"top_k"`
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	// DataDir is where the evaluation database lives. Empty means
	// ~/.medrag/data.
	DataDir string `toml:"data_dir"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Ollama: OllamaConfig{
			BaseURL:             "http://localhost:11434",
			EmbeddingModel:      "nomic-embed-text",
			EmbeddingDimensions: 768,
			ChatModel:           "llama3.2",
			Temperature:         0.1,
			MaxTokens:           1000,
		},
		Qdrant: QdrantConfig{
			Address:    "localhost:6334",
			Collection: "medical_documents",
		},
		Processing: ProcessingConfig{
			ChunkSize:    500,
			ChunkOverlap: 50,
		},
		Retrieval: RetrievalConfig{
			TopK: 5,
		},
	}
}

// DefaultPath returns the default configuration file location,
// ~/.medrag/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".medrag", "config.toml"), nil
}

// Load reads the configuration file at path, applying defaults for any
// missing value. A missing file is not an error; the defaults are
// returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}
