package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Tushar-web474/ImageForge/config"
	"github.com/Tushar-web474/ImageForge/database"
	"github.com/Tushar-web474/ImageForge/database/model"
	"github.com/Tushar-web474/ImageForge/logger"
	"github.com/Tushar-web474/ImageForge/stability"
)

// Generation parameters are fixed for reproducibility; they match the
// sampler and sizing the service has always used.
const (
	generationSeed     = 42
	generationSteps    = 30
	generationCfgScale = 8.0
	generationWidth    = 512
	generationHeight   = 512
	generationSamples  = 1

	// A hung collaborator fails the request after this bound instead of
	// blocking it forever.
	generationTimeout = 2 * time.Minute
)

// GenerationService orchestrates one external text-to-image call and
// persists the result as a file plus a history row.
type GenerationService struct {
	// BaseURL overrides the API endpoint when non-empty. Tests point it at
	// a local server.
	BaseURL string
}

// Generate runs one generation for the given user. The file is written
// before the row is inserted; files that never got a row are reclaimed by
// the orphan sweep job.
func (s *GenerationService) Generate(ctx context.Context, userID int, prompt string) (*model.ImageRecord, error) {
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt must not be empty", ErrValidation)
	}

	apiKey := config.GetStabilityAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%w: STABILITY_API_KEY is not set", ErrConfiguration)
	}

	opts := []stability.Option{}
	if s.BaseURL != "" {
		opts = append(opts, stability.WithBaseURL(s.BaseURL))
	}
	client := stability.NewClient(apiKey, opts...)

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	artifacts, err := client.Generate(ctx, stability.GenerateRequest{
		TextPrompts: []stability.TextPrompt{{Text: prompt}},
		Seed:        generationSeed,
		Steps:       generationSteps,
		CfgScale:    generationCfgScale,
		Width:       generationWidth,
		Height:      generationHeight,
		Samples:     generationSamples,
		Sampler:     stability.SamplerKDPMPP2M,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	for _, artifact := range artifacts {
		if artifact.FinishReason == stability.FinishFiltered {
			return nil, fmt.Errorf("%w: the request activated the API safety filters", ErrFiltered)
		}
		if artifact.Type != stability.ArtifactImage {
			continue
		}

		data, err := artifact.Image()
		if err != nil {
			return nil, fmt.Errorf("%w: decoding artifact payload: %v", ErrGeneration, err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: artifact is not a valid PNG: %v", ErrGeneration, err)
		}

		record, err := s.persist(userID, prompt, data)
		if err != nil {
			return nil, err
		}
		return record, nil
	}

	return nil, fmt.Errorf("%w: the API returned no image artifact", ErrGeneration)
}

func (s *GenerationService) persist(userID int, prompt string, data []byte) (*model.ImageRecord, error) {
	folder := config.GetImageFolderPath()
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating image folder: %v", ErrGeneration, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("img_%d_%s.png", userID, timestamp)
	imagePath := filepath.Join(folder, filename)

	if err := os.WriteFile(imagePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing image file: %v", ErrGeneration, err)
	}

	record := &model.ImageRecord{
		UserId:    userID,
		Prompt:    prompt,
		ImagePath: imagePath,
	}
	db := database.GetDB()
	if err := db.Create(record).Error; err != nil {
		logger.Warningf("image %s written but history insert failed: %v", imagePath, err)
		return nil, fmt.Errorf("%w: recording image history: %v", ErrGeneration, err)
	}
	return record, nil
}
