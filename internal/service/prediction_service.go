package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"fitfans/internal/cache"
	"fitfans/internal/classifier"
	"fitfans/internal/storage"
)

const predictionCacheTTL = time.Hour

// PredictionService classifies uploaded images, persisting each upload and
// caching results by content hash. The model is deterministic and read-only,
// so identical bytes always classify identically.
type PredictionService interface {
	Predict(ctx context.Context, filename string, data []byte) (*classifier.Result, error)
}

type predictionService struct {
	clf   *classifier.Classifier
	store *storage.Store
	cache *cache.Client
}

// NewPredictionService builds a PredictionService.
func NewPredictionService(clf *classifier.Classifier, store *storage.Store, cache *cache.Client) PredictionService {
	return &predictionService{clf: clf, store: store, cache: cache}
}

func (s *predictionService) cacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "prediction:" + hex.EncodeToString(sum[:])
}

func (s *predictionService) Predict(ctx context.Context, filename string, data []byte) (*classifier.Result, error) {
	// Uploads are kept on disk regardless of the classification outcome.
	if _, err := s.store.Save(data, filename); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	key := s.cacheKey(data)
	if payload, _ := s.cache.Get(ctx, key); payload != nil {
		var cached classifier.Result
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.clf.Classify(ctx, data)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, predictionCacheTTL)
	}
	return result, nil
}
