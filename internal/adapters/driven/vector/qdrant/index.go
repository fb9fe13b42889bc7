// Package qdrant provides a vector index adapter backed by a Qdrant
// server, accessed over its gRPC API.
package qdrant

import (
	"context"
	"encoding/json"
	"fmt"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// Default configuration values.
const (
	DefaultAddress    = "localhost:6334"
	DefaultCollection = "medical_documents"
)

// Config holds configuration for the Qdrant vector index.
type Config struct {
	// Address is the Qdrant gRPC address (default: localhost:6334).
	Address string

	// Collection is the collection name (default: medical_documents).
	Collection string
}

// VectorIndex stores and searches document embeddings in Qdrant.
type VectorIndex struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
}

// NewVectorIndex connects to Qdrant and returns a vector index.
func NewVectorIndex(cfg Config) (*VectorIndex, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	conn, err := grpc.NewClient(cfg.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant at %s: %w", cfg.Address, err)
	}

	return &VectorIndex{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  cfg.Collection,
	}, nil
}

// CollectionName returns the name of the collection being used.
func (v *VectorIndex) CollectionName() string {
	return v.collection
}

// EnsureCollection creates the collection with cosine distance if it
// does not already exist.
func (v *VectorIndex) EnsureCollection(ctx context.Context, dimensions int) error {
	exists, err := v.collectionExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = v.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: v.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimensions),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create collection %q: %w", v.collection, err)
	}
	return nil
}

// Drop deletes the collection. Dropping a collection that does not
// exist is not an error.
func (v *VectorIndex) Drop(ctx context.Context) error {
	exists, err := v.collectionExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	_, err = v.collections.Delete(ctx, &qdrantclient.DeleteCollection{
		CollectionName: v.collection,
	})
	if err != nil {
		return fmt.Errorf("delete collection %q: %w", v.collection, err)
	}
	return nil
}

// Upsert stores points in the collection, overwriting any with the
// same ID.
func (v *VectorIndex) Upsert(ctx context.Context, points []driven.VectorPoint) error {
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrantclient.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{
					Uuid: p.ID,
				},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{
						Data: p.Vector,
					},
				},
			},
			Payload: pointPayload(p),
		}
	}

	_, err := v.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: v.collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		return fmt.Errorf("upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search returns the k nearest points to the given vector, most
// similar first.
func (v *VectorIndex) Search(ctx context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	resp, err := v.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: v.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
				Include: &qdrantclient.PayloadIncludeSelector{
					Fields: []string{"text", "source", "chunk"},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("search collection %q: %w", v.collection, err)
	}

	hits := make([]driven.VectorHit, 0, len(resp.Result))
	for _, point := range resp.Result {
		hit := driven.VectorHit{Score: float64(point.GetScore())}
		if val, ok := point.Payload["text"]; ok {
			hit.Content = val.GetStringValue()
		}
		if val, ok := point.Payload["source"]; ok {
			hit.Source = val.GetStringValue()
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Close closes the gRPC connection.
func (v *VectorIndex) Close() error {
	return v.conn.Close()
}

// pointPayload builds the payload for one point: the fixed text,
// source and chunk fields plus the point's metadata. Metadata keys
// that collide with the fixed fields keep the fixed value.
func pointPayload(p driven.VectorPoint) map[string]*qdrantclient.Value {
	payload := map[string]*qdrantclient.Value{
		"text":   {Kind: &qdrantclient.Value_StringValue{StringValue: p.Content}},
		"source": {Kind: &qdrantclient.Value_StringValue{StringValue: p.Source}},
		"chunk":  {Kind: &qdrantclient.Value_IntegerValue{IntegerValue: int64(p.ChunkIndex)}},
	}
	for key, value := range p.Metadata {
		if _, fixed := payload[key]; fixed {
			continue
		}
		payload[key] = payloadValue(value)
	}
	return payload
}

// payloadValue converts a metadata value to a qdrant payload value.
// Structured values (entity sets, nested maps) round-trip through
// JSON so they land as proper qdrant structs rather than opaque
// strings.
func payloadValue(v any) *qdrantclient.Value {
	switch val := v.(type) {
	case nil:
		return &qdrantclient.Value{Kind: &qdrantclient.Value_NullValue{NullValue: qdrantclient.NullValue_NULL_VALUE}}
	case string:
		return &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: val}}
	case bool:
		return &qdrantclient.Value{Kind: &qdrantclient.Value_BoolValue{BoolValue: val}}
	case int:
		return &qdrantclient.Value{Kind: &qdrantclient.Value_IntegerValue{IntegerValue: int64(val)}}
	case int64:
		return &qdrantclient.Value{Kind: &qdrantclient.Value_IntegerValue{IntegerValue: val}}
	case float64:
		return &qdrantclient.Value{Kind: &qdrantclient.Value_DoubleValue{DoubleValue: val}}
	case []string:
		values := make([]*qdrantclient.Value, len(val))
		for i, s := range val {
			values[i] = payloadValue(s)
		}
		return &qdrantclient.Value{Kind: &qdrantclient.Value_ListValue{ListValue: &qdrantclient.ListValue{Values: values}}}
	case []any:
		values := make([]*qdrantclient.Value, len(val))
		for i, item := range val {
			values[i] = payloadValue(item)
		}
		return &qdrantclient.Value{Kind: &qdrantclient.Value_ListValue{ListValue: &qdrantclient.ListValue{Values: values}}}
	case map[string]any:
		fields := make(map[string]*qdrantclient.Value, len(val))
		for k, item := range val {
			fields[k] = payloadValue(item)
		}
		return &qdrantclient.Value{Kind: &qdrantclient.Value_StructValue{StructValue: &qdrantclient.Struct{Fields: fields}}}
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: fmt.Sprintf("%v", v)}}
		}
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: string(data)}}
		}
		return payloadValue(decoded)
	}
}

func (v *VectorIndex) collectionExists(ctx context.Context) (bool, error) {
	resp, err := v.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return false, fmt.Errorf("list collections: %w", err)
	}
	for _, col := range resp.GetCollections() {
		if col.GetName() == v.collection {
			return true, nil
		}
	}
	return false, nil
}
